package api

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindTitle    Kind = "title"
	KindSection  Kind = "section"
	KindAgenda   Kind = "agenda"
	KindBullets  Kind = "bullets"
	KindText     Kind = "text"
	KindTable    Kind = "table"
	KindChart    Kind = "chart"
	KindTimeline Kind = "timeline"
	KindCards    Kind = "cards"
	KindLayers   Kind = "layers"
	KindGantt    Kind = "gantt"
	KindClosing  Kind = "closing"
)

var Kinds = []Kind{
	KindTitle, KindSection, KindAgenda, KindBullets, KindText, KindTable,
	KindChart, KindTimeline, KindCards, KindLayers, KindGantt, KindClosing,
}

// Deck is an ordered list of slides written to a single presentation file.
type Deck struct {
	Name         string `yaml:"name" json:"name"`
	Title        string `yaml:"title" json:"title"`
	Subtitle     string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Author       string `yaml:"author,omitempty" json:"author,omitempty"`
	Output       string `yaml:"output" json:"output"`
	Theme        string `yaml:"theme,omitempty" json:"theme,omitempty"`
	SlideNumbers bool   `yaml:"slideNumbers,omitempty" json:"slideNumbers,omitempty"`
	// Legacy names an existing presentation this deck revises
	Legacy string  `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Slides []Slide `yaml:"slides" json:"slides"`
}

type Slide struct {
	Kind     Kind   `yaml:"kind" json:"kind"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	// Date is an extra line on title slides
	Date string `yaml:"date,omitempty" json:"date,omitempty"`
	// Number is the section number, rendered as %02d
	Number  int          `yaml:"number,omitempty" json:"number,omitempty"`
	Bullets []Bullet     `yaml:"bullets,omitempty" json:"bullets,omitempty"`
	Text    string       `yaml:"text,omitempty" json:"text,omitempty"`
	Mono    bool         `yaml:"mono,omitempty" json:"mono,omitempty"`
	Table   *Table       `yaml:"table,omitempty" json:"table,omitempty"`
	Chart   *Chart       `yaml:"chart,omitempty" json:"chart,omitempty"`
	Phases  []Phase      `yaml:"phases,omitempty" json:"phases,omitempty"`
	Cards   []Card       `yaml:"cards,omitempty" json:"cards,omitempty"`
	Columns int          `yaml:"columns,omitempty" json:"columns,omitempty"`
	Layers  []Layer      `yaml:"layers,omitempty" json:"layers,omitempty"`
	Agenda  []AgendaItem `yaml:"agenda,omitempty" json:"agenda,omitempty"`
	Gantt   *Gantt       `yaml:"gantt,omitempty" json:"gantt,omitempty"`
	// Insight is a highlighted line under charts and tables
	Insight string `yaml:"insight,omitempty" json:"insight,omitempty"`
}

// Bullet is either a plain line or a bold main point with indented sub points.
type Bullet struct {
	Text string   `yaml:"text" json:"text"`
	Sub  []string `yaml:"sub,omitempty" json:"sub,omitempty"`
}

func (b *Bullet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Text = node.Value
		return nil
	}
	type plain Bullet
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("failed to decode bullet at line %d: %w", node.Line, err)
	}
	*b = Bullet(p)
	return nil
}

type Table struct {
	Headers []string   `yaml:"headers" json:"headers"`
	Rows    [][]string `yaml:"rows" json:"rows"`
	// Widths are relative column widths, equal when empty
	Widths []float64 `yaml:"widths,omitempty" json:"widths,omitempty"`
}

type ChartType string

const (
	ChartColumn ChartType = "column"
	ChartLine   ChartType = "line"
	ChartPie    ChartType = "pie"
	ChartRadar  ChartType = "radar"
)

type Series struct {
	Name   string    `yaml:"name" json:"name"`
	Values []float64 `yaml:"values" json:"values"`
}

type Chart struct {
	Type       ChartType `yaml:"type" json:"type"`
	Categories []string  `yaml:"categories" json:"categories"`
	Series     []Series  `yaml:"series" json:"series"`
}

type Phase struct {
	Phase   string   `yaml:"phase" json:"phase"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Details []string `yaml:"details,omitempty" json:"details,omitempty"`
}

type Card struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	Note  string `yaml:"note,omitempty" json:"note,omitempty"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

type Layer struct {
	Name   string `yaml:"name" json:"name"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	Color  string `yaml:"color,omitempty" json:"color,omitempty"`
}

type AgendaItem struct {
	Title  string `yaml:"title" json:"title"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

type GanttTask struct {
	Name     string `yaml:"name" json:"name"`
	Start    int    `yaml:"start" json:"start"`
	Duration int    `yaml:"duration" json:"duration"`
	Color    string `yaml:"color,omitempty" json:"color,omitempty"`
}

type Gantt struct {
	Months []string    `yaml:"months" json:"months"`
	Tasks  []GanttTask `yaml:"tasks" json:"tasks"`
}

func (s Slide) SectionLabel() string {
	return fmt.Sprintf("%02d", s.Number)
}

// Texts returns the lines a slide carries, title first, in the order they are
// laid out. Blank lines are dropped.
func (s Slide) Texts() []string {
	var out []string
	add := func(values ...string) {
		for _, v := range values {
			out = append(out, Lines(v)...)
		}
	}

	add(s.Title)
	switch s.Kind {
	case KindTitle, KindClosing:
		add(s.Subtitle, s.Date)
	case KindSection:
		add(s.SectionLabel(), s.Subtitle)
	case KindBullets:
		for _, b := range s.Bullets {
			add(b.Text)
			add(b.Sub...)
		}
	case KindText:
		add(s.Text)
	case KindTable:
		if s.Table != nil {
			add(s.Table.Headers...)
			for _, row := range s.Table.Rows {
				add(row...)
			}
		}
	case KindChart:
		if s.Chart != nil && s.Chart.Type == ChartPie {
			add(s.Chart.Categories...)
		} else if s.Chart != nil {
			for _, series := range s.Chart.Series {
				add(series.Name)
			}
		}
	case KindTimeline:
		for _, p := range s.Phases {
			add(p.Phase, p.Title)
			add(p.Details...)
		}
	case KindCards:
		for _, c := range s.Cards {
			add(c.Title, c.Value, c.Note)
		}
	case KindLayers:
		for _, l := range s.Layers {
			add(l.Name, l.Detail)
		}
	case KindAgenda:
		for _, a := range s.Agenda {
			add(a.Title, a.Detail)
		}
	case KindGantt:
		if s.Gantt != nil {
			add(s.Gantt.Months...)
			for _, t := range s.Gantt.Tasks {
				add(t.Name)
			}
		}
	}
	add(s.Insight)
	return out
}

// Lines splits text into lines, dropping blank ones.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// Outline is a flattened, printable view of a deck.
type Outline struct {
	Name   string         `json:"name" yaml:"name"`
	Title  string         `json:"title" yaml:"title"`
	Output string         `json:"output" yaml:"output"`
	Slides []SlideOutline `json:"slides" yaml:"slides"`
}

type SlideOutline struct {
	Number int      `json:"number" yaml:"number"`
	Kind   Kind     `json:"kind" yaml:"kind"`
	Title  string   `json:"title" yaml:"title"`
	Body   []string `json:"body,omitempty" yaml:"body,omitempty"`
}

func (d Deck) Outline() Outline {
	o := Outline{Name: d.Name, Title: d.Title, Output: d.Output}
	for i, s := range d.Slides {
		texts := s.Texts()
		so := SlideOutline{Number: i + 1, Kind: s.Kind, Title: s.Title}
		texts = texts[len(Lines(s.Title)):]
		so.Body = texts
		o.Slides = append(o.Slides, so)
	}
	return o
}

// TableSlide is a slide carrying a table with its 1-based number in the deck
type TableSlide struct {
	Number int
	Slide
}

// TableSlides returns the slides carrying a table, used by spreadsheet exports.
func (d Deck) TableSlides() []TableSlide {
	var out []TableSlide
	for i, s := range d.Slides {
		if s.Kind == KindTable && s.Table != nil {
			out = append(out, TableSlide{Number: i + 1, Slide: s})
		}
	}
	return out
}
