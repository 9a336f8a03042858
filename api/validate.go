package api

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Validate checks that every slide carries the payload its kind needs.
func (d Deck) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("deck has no name")
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck %s has no slides", d.Name)
	}
	if d.Theme != "" {
		if _, ok := Themes[d.Theme]; !ok {
			return fmt.Errorf("deck %s: unknown theme '%s'", d.Name, d.Theme)
		}
	}

	var errs []error
	for i, s := range d.Slides {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slide %d (%q): %w", i+1, s.Title, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("deck %s is invalid: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

func (s Slide) Validate() error {
	if !lo.Contains(Kinds, s.Kind) {
		return fmt.Errorf("unknown kind '%s'", s.Kind)
	}
	if s.Title == "" && s.Kind != KindClosing {
		return fmt.Errorf("%s slide has no title", s.Kind)
	}
	if s.Insight != "" && lo.Contains([]Kind{KindTitle, KindSection, KindClosing}, s.Kind) {
		return fmt.Errorf("%s slide cannot carry an insight", s.Kind)
	}

	switch s.Kind {
	case KindBullets:
		if len(s.Bullets) == 0 {
			return fmt.Errorf("bullets slide has no bullets")
		}
	case KindText:
		if s.Text == "" {
			return fmt.Errorf("text slide has no text")
		}
	case KindTable:
		return s.Table.validate()
	case KindChart:
		return s.Chart.Validate()
	case KindTimeline:
		if len(s.Phases) == 0 {
			return fmt.Errorf("timeline has no phases")
		}
	case KindCards:
		if len(s.Cards) == 0 {
			return fmt.Errorf("cards slide has no cards")
		}
	case KindLayers:
		if len(s.Layers) == 0 {
			return fmt.Errorf("layers slide has no layers")
		}
	case KindAgenda:
		if len(s.Agenda) == 0 {
			return fmt.Errorf("agenda has no items")
		}
	case KindGantt:
		return s.Gantt.validate()
	case KindClosing:
		if s.Title == "" && s.Subtitle == "" {
			return fmt.Errorf("closing slide has no message")
		}
	}
	return nil
}

func (t *Table) validate() error {
	if t == nil || len(t.Rows) == 0 {
		return fmt.Errorf("table has no rows")
	}
	if len(t.Headers) == 0 {
		return fmt.Errorf("table has no headers")
	}
	for i, row := range t.Rows {
		if len(row) > len(t.Headers) {
			return fmt.Errorf("table row %d has %d cells, header has %d", i+1, len(row), len(t.Headers))
		}
	}
	if len(t.Widths) > 0 && len(t.Widths) != len(t.Headers) {
		return fmt.Errorf("table has %d widths for %d columns", len(t.Widths), len(t.Headers))
	}
	return nil
}

// Validate checks that every series has one finite, non-negative value per
// category.
func (c *Chart) Validate() error {
	if c == nil || len(c.Series) == 0 {
		return fmt.Errorf("chart has no series")
	}
	switch c.Type {
	case ChartColumn, ChartLine, ChartPie, ChartRadar:
	default:
		return fmt.Errorf("unknown chart type '%s'", c.Type)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("chart has no categories")
	}
	if c.Type == ChartPie && len(c.Series) != 1 {
		return fmt.Errorf("pie chart needs exactly one series, got %d", len(c.Series))
	}
	for _, series := range c.Series {
		if len(series.Values) != len(c.Categories) {
			return fmt.Errorf("series %q has %d values for %d categories", series.Name, len(series.Values), len(c.Categories))
		}
		for _, v := range series.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("series %q has non-finite value %v", series.Name, v)
			}
			if v < 0 {
				return fmt.Errorf("series %q has negative value %v", series.Name, v)
			}
		}
	}
	return nil
}

func (g *Gantt) validate() error {
	if g == nil || len(g.Tasks) == 0 {
		return fmt.Errorf("gantt has no tasks")
	}
	if len(g.Months) == 0 {
		return fmt.Errorf("gantt has no months")
	}
	for _, t := range g.Tasks {
		if t.Start < 0 || t.Duration <= 0 || t.Start+t.Duration > len(g.Months) {
			return fmt.Errorf("task %q spans months %d..%d outside 0..%d", t.Name, t.Start, t.Start+t.Duration, len(g.Months))
		}
	}
	return nil
}
