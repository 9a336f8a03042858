package pptx

import (
	"fmt"
	"math"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/api/tailwind"
	"github.com/flanksource/decks/chart"
)

// header draws the slide title and the accent rule under it. It must be the
// first text on a content slide, readers take the first paragraph as title.
func (w *Writer) header(slide *ppt.Slide, title string) {
	textBox(slide, box{marginLeft, 0.25, contentWidth, 0.6}, "", api.Lines(title),
		font{size: fontHeading, bold: true, color: w.theme.Primary}, alignLeft)
	shape(slide, box{marginLeft, 0.88, contentWidth, 0.04}, w.theme.Secondary)
}

func (w *Writer) insight(slide *ppt.Slide, text string) {
	if text == "" {
		return
	}
	textBox(slide, box{marginLeft, 4.85, contentWidth, 0.4}, tailwind.Lighten(w.theme.Accent, 0.8), api.Lines(text),
		font{size: fontSmall, bold: true, color: w.theme.Primary}, alignCenter)
}

// bottom is where the content of a slide ends, above its insight when it has one.
func (w *Writer) bottom(s *api.Slide) float64 {
	if s.Insight != "" {
		return 4.75
	}
	return contentBottom
}

func (w *Writer) slideNumber(slide *ppt.Slide) {
	textBox(slide, box{8.6, 5.25, 1.0, 0.3}, "", []string{fmt.Sprintf("%d", w.count)},
		font{size: fontFooter, color: w.theme.Muted}, alignRight)
}

func (w *Writer) titleSlide(slide *ppt.Slide, s *api.Slide) {
	shape(slide, box{0, 0, slideWidth, slideHeight}, w.theme.Primary)
	textBox(slide, box{marginLeft, 1.1, contentWidth, 1.6}, "", api.Lines(s.Title),
		font{size: fontTitle, bold: true, color: white}, alignCenter)
	shape(slide, box{4.0, 2.85, 2.0, 0.05}, w.theme.Accent)
	if s.Subtitle != "" {
		textBox(slide, box{marginLeft, 3.0, contentWidth, 1.0}, "", api.Lines(s.Subtitle),
			font{size: fontSubtitle, color: tailwind.Lighten(w.theme.Secondary, 0.6)}, alignCenter)
	}
	if s.Date != "" {
		textBox(slide, box{marginLeft, 4.4, contentWidth, 0.6}, "", api.Lines(s.Date),
			font{size: fontSmall, color: tailwind.Lighten(w.theme.Muted, 0.6)}, alignCenter)
	}
}

func (w *Writer) sectionSlide(slide *ppt.Slide, s *api.Slide) {
	shape(slide, box{0, 0, slideWidth, slideHeight}, w.theme.Secondary)
	textBox(slide, box{marginLeft, 2.35, contentWidth, 0.9}, "", api.Lines(s.Title),
		font{size: 32, bold: true, color: white}, alignCenter)
	textBox(slide, box{marginLeft, 1.2, contentWidth, 1.0}, "", []string{s.SectionLabel()},
		font{size: 54, bold: true, color: w.theme.Accent}, alignCenter)
	if s.Subtitle != "" {
		textBox(slide, box{marginLeft, 3.35, contentWidth, 0.8}, "", api.Lines(s.Subtitle),
			font{size: fontBody + 2, color: tailwind.Lighten(w.theme.Secondary, 0.7)}, alignCenter)
	}
}

func (w *Writer) closingSlide(slide *ppt.Slide, s *api.Slide) {
	shape(slide, box{0, 0, slideWidth, slideHeight}, w.theme.Primary)
	if s.Title != "" {
		textBox(slide, box{marginLeft, 1.3, contentWidth, 1.5}, "", api.Lines(s.Title),
			font{size: 40, bold: true, color: white}, alignCenter)
	}
	if s.Subtitle != "" {
		textBox(slide, box{marginLeft, 3.0, contentWidth, 1.2}, "", api.Lines(s.Subtitle),
			font{size: fontSubtitle, color: w.theme.Accent}, alignCenter)
	}
}

func (w *Writer) agendaSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	cols := 1
	if len(s.Agenda) > 5 {
		cols = 2
	}
	perCol := int(math.Ceil(float64(len(s.Agenda)) / float64(cols)))
	colW := contentWidth / float64(cols)
	rowH := math.Min(0.75, (w.bottom(s)-contentTop)/float64(perCol))

	for i, item := range s.Agenda {
		x := marginLeft + float64(i/perCol)*colW
		y := contentTop + 0.1 + float64(i%perCol)*rowH
		textBox(slide, box{x, y, 0.55, rowH - 0.12}, w.theme.Secondary, []string{fmt.Sprintf("%02d", i+1)},
			font{size: fontBody, bold: true, color: white}, alignCenter)

		entry := frame{s: shape(slide, box{x + 0.65, y, colW - 0.8, rowH - 0.1}, "")}
		entry.add(item.Title, font{size: fontBody + 2, bold: true, color: w.theme.Text}, alignLeft)
		entry.add(item.Detail, font{size: fontSmall - 1, color: w.theme.Muted}, alignLeft)
	}
	w.insight(slide, s.Insight)
}

func (w *Writer) bulletsSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	lines := 0
	nested := false
	for _, b := range s.Bullets {
		lines += len(api.Lines(b.Text))
		for _, sub := range b.Sub {
			lines += len(api.Lines(sub))
		}
		nested = nested || len(b.Sub) > 0
	}
	mainSize, subSize := 18, 14
	switch {
	case lines > 14:
		mainSize, subSize = 12, 11
	case lines > 9:
		mainSize, subSize = 14, 12
	}

	body := frame{s: shape(slide, box{marginLeft, contentTop + 0.1, contentWidth, w.bottom(s) - contentTop - 0.2}, "")}
	for _, b := range s.Bullets {
		body.marked(BulletMain, "  ", b.Text, font{size: mainSize, bold: nested, color: w.theme.Text}, alignLeft)
		for _, sub := range b.Sub {
			body.marked(BulletSub, "        ", sub, font{size: subSize, color: w.theme.Muted}, alignLeft)
		}
	}
	w.insight(slide, s.Insight)
}

func (w *Writer) textSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	lines := strings.Split(strings.TrimRight(s.Text, "\n"), "\n")
	size := fontBody
	if s.Mono || len(lines) > 12 {
		size = fontSmall - 1
	}
	if len(lines) > 18 {
		size = fontTableCell - 1
	}
	fill := ""
	if s.Mono {
		fill = w.theme.Stripe
	}
	textBox(slide, box{marginLeft, contentTop + 0.1, contentWidth, w.bottom(s) - contentTop - 0.1}, fill, lines,
		font{size: size, color: w.theme.Text}, alignLeft)
	w.insight(slide, s.Insight)
}

func (w *Writer) tableSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)
	t := s.Table

	widths := t.Widths
	if len(widths) == 0 {
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = 1
		}
	}
	total := 0.0
	for _, v := range widths {
		total += v
	}

	rowH := math.Min(0.42, (w.bottom(s)-contentTop-0.1)/float64(len(t.Rows)+1))
	cellSize := fontTableCell
	if rowH < 0.3 {
		cellSize = fontFooter
	}

	y := contentTop + 0.1
	drawRow := func(cells []string, fill string, f font) {
		x := marginLeft
		for i := range t.Headers {
			cw := contentWidth * widths[i] / total
			cell := shape(slide, box{x, y, cw, rowH}, fill)
			if i < len(cells) && cells[i] != "" {
				cf := f
				if strings.Contains(cells[i], "●") && f.color != white {
					cf.color = w.theme.Secondary
				}
				paragraphs(cell, api.Lines(cells[i]), cf, alignCenter)
			}
			x += cw
		}
		y += rowH
	}

	drawRow(t.Headers, w.theme.Secondary, font{size: fontTableHead, bold: true, color: white})
	for r, row := range t.Rows {
		fill := white
		if r%2 == 1 {
			fill = w.theme.Stripe
		}
		drawRow(row, fill, font{size: cellSize, color: w.theme.Text})
	}
	w.insight(slide, s.Insight)
}

// chart image size in pixels, 100px per inch
const (
	chartX  = 0.6
	chartY  = 1.05
	chartW  = 8.8
	chartH  = 3.75
	chartPx = 100
)

func (w *Writer) chartSlide(slide *ppt.Slide, s *api.Slide) error {
	w.header(slide, s.Title)

	pxW, pxH := int(chartW*chartPx), int(chartH*chartPx)
	img, labels, err := chart.Image(*s.Chart, w.theme, pxW, pxH)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	pic := slide.CreateDrawingShape()
	pic.SetImageData(img, "image/png")
	pic.SetOffsetX(inch(chartX)).SetOffsetY(inch(chartY))
	pic.SetWidth(inch(chartW)).SetHeight(inch(chartH))

	for _, l := range labels {
		w.chartLabel(slide, l)
	}
	w.insight(slide, s.Insight)
	return nil
}

// chartLabel places a chart label as a text shape over the chart image.
// Label coordinates are the SVG text baseline.
func (w *Writer) chartLabel(slide *ppt.Slide, l chart.Label) {
	const labelW, labelH = 1.6, 0.26
	x := chartX + float64(l.X)/chartPx
	y := chartY + float64(l.Y)/chartPx - labelH + 0.04

	a := alignLeft
	switch l.Anchor {
	case chart.AnchorMiddle:
		x -= labelW / 2
		a = alignCenter
	case chart.AnchorEnd:
		x -= labelW
		a = alignRight
	}
	pt := int(math.Max(7, math.Round(float64(l.Size)*72/chartPx)))
	textBox(slide, box{x, y, labelW, labelH}, "", api.Lines(l.Text), font{size: pt, color: l.Color}, a)
}

func (w *Writer) timelineSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	n := len(s.Phases)
	colW := contentWidth / float64(n)
	shape(slide, box{marginLeft, 1.6, contentWidth, 0.05}, w.theme.Muted)

	for i, p := range s.Phases {
		c := w.theme.Series(i)
		x := marginLeft + float64(i)*colW
		shape(slide, box{x + colW/2 - 0.15, 1.475, 0.3, 0.3}, c)

		head := frame{s: shape(slide, box{x + 0.05, 1.9, colW - 0.1, 0.75}, "")}
		head.add(p.Phase, font{size: fontBody + 2, bold: true, color: c}, alignCenter)
		head.add(p.Title, font{size: fontSmall + 1, bold: true, color: w.theme.Text}, alignCenter)

		if len(p.Details) > 0 {
			details := frame{s: shape(slide, box{x + 0.1, 2.75, colW - 0.2, w.bottom(s) - 2.8}, tailwind.Lighten(c, 0.88))}
			for _, d := range p.Details {
				details.add(d, font{size: fontSmall - 1, color: w.theme.Text}, alignLeft)
			}
		}
	}
	w.insight(slide, s.Insight)
}

func (w *Writer) cardsSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	n := len(s.Cards)
	cols := s.Columns
	if cols <= 0 {
		switch {
		case n == 4:
			cols = 2
		case n <= 3:
			cols = n
		default:
			cols = 3
		}
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))
	bottom := w.bottom(s)
	const gap = 0.15
	cardW := (contentWidth - gap*float64(cols-1)) / float64(cols)
	cardH := (bottom - contentTop - 0.1 - gap*float64(rows-1)) / float64(rows)

	for i, c := range s.Cards {
		col := w.theme.ColorOr(c.Color, w.theme.Series(i))
		x := marginLeft + float64(i%cols)*(cardW+gap)
		y := contentTop + 0.1 + float64(i/cols)*(cardH+gap)

		shape(slide, box{x, y, cardW, 0.08}, col)
		card := frame{s: shape(slide, box{x, y + 0.08, cardW, cardH - 0.08}, tailwind.Lighten(col, 0.9))}
		card.add(c.Title, font{size: fontBody + 1, bold: true, color: col}, alignCenter)
		card.add(c.Value, font{size: 24, bold: true, color: w.theme.Text}, alignCenter)
		card.add(c.Note, font{size: fontSmall - 1, color: w.theme.Muted}, alignCenter)
	}
	w.insight(slide, s.Insight)
}

func (w *Writer) layersSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)

	n := len(s.Layers)
	const gap = 0.08
	rowH := math.Min(0.8, (w.bottom(s)-contentTop-0.1)/float64(n)) - gap
	for i, l := range s.Layers {
		c := w.theme.ColorOr(l.Color, w.theme.Series(i))
		y := contentTop + 0.1 + float64(i)*(rowH+gap)
		textBox(slide, box{marginLeft, y, 2.8, rowH}, c, api.Lines(l.Name),
			font{size: fontBody, bold: true, color: white}, alignCenter)
		if l.Detail != "" {
			textBox(slide, box{marginLeft + 2.9, y, contentWidth - 2.9, rowH}, tailwind.Lighten(c, 0.85), api.Lines(l.Detail),
				font{size: fontSmall, color: w.theme.Text}, alignLeft)
		}
	}
	w.insight(slide, s.Insight)
}

func (w *Writer) ganttSlide(slide *ppt.Slide, s *api.Slide) {
	w.header(slide, s.Title)
	g := s.Gantt

	const labelW = 2.4
	monthW := (contentWidth - labelW) / float64(len(g.Months))
	y := contentTop + 0.1
	for i, m := range g.Months {
		textBox(slide, box{marginLeft + labelW + float64(i)*monthW, y, monthW, 0.35}, w.theme.Secondary, api.Lines(m),
			font{size: fontTableHead, bold: true, color: white}, alignCenter)
	}
	y += 0.45

	rowH := math.Min(0.5, (w.bottom(s)-y)/float64(len(g.Tasks)))
	for i, t := range g.Tasks {
		c := w.theme.ColorOr(t.Color, w.theme.Series(i))
		ry := y + float64(i)*rowH
		if i%2 == 1 {
			shape(slide, box{marginLeft, ry, contentWidth, rowH}, w.theme.Stripe)
		}
		textBox(slide, box{marginLeft, ry, labelW, rowH}, "", api.Lines(t.Name),
			font{size: fontSmall - 1, bold: true, color: w.theme.Text}, alignLeft)
		shape(slide, box{marginLeft + labelW + float64(t.Start)*monthW + 0.03, ry + rowH*0.2, float64(t.Duration)*monthW - 0.06, rowH * 0.6}, c)
	}
	w.insight(slide, s.Insight)
}
