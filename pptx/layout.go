package pptx

import (
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/api/tailwind"
)

// 16:9 canvas, all positions in inches converted to EMU
const (
	emuPerInch = 914400

	slideWidth    = 10.0
	slideHeight   = 5.625
	marginLeft    = 0.4
	contentWidth  = 9.2
	contentTop    = 1.05
	contentBottom = 5.15

	fontTitle     = 36
	fontSubtitle  = 20
	fontHeading   = 28
	fontBody      = 14
	fontSmall     = 12
	fontTableHead = 11
	fontTableCell = 10
	fontFooter    = 9

	white = "#ffffff"
)

func inch(v float64) int64 {
	return int64(v * emuPerInch)
}

func color(ref string) ppt.Color {
	return ppt.NewColor(tailwind.ARGB(ref))
}

func solidFill(ref string) *ppt.Fill {
	return ppt.NewFill().SetSolid(color(ref))
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) apply(p *ppt.Paragraph) {
	switch a {
	case alignCenter:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case alignRight:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}

type box struct {
	x, y, w, h float64
}

// font describes a run; an empty color means the theme text colour.
type font struct {
	size  int
	bold  bool
	color string
}

// shape places an empty rich text shape, filled when fill is set.
func shape(slide *ppt.Slide, b box, fill string) *ppt.RichTextShape {
	s := slide.CreateRichTextShape()
	s.SetOffsetX(inch(b.x)).SetOffsetY(inch(b.y))
	s.SetWidth(inch(b.w)).SetHeight(inch(b.h))
	if fill != "" {
		s.SetFill(solidFill(fill))
	}
	return s
}

// paragraphs writes one paragraph per line into a fresh shape.
func paragraphs(s *ppt.RichTextShape, lines []string, f font, a align) {
	for i, line := range lines {
		if i > 0 {
			s.CreateParagraph()
		}
		if strings.TrimSpace(line) == "" {
			run(s, " ", font{size: 6, color: f.color})
			continue
		}
		run(s, line, f)
		a.apply(s.GetActiveParagraph())
	}
}

func run(s *ppt.RichTextShape, text string, f font) {
	tr := s.CreateTextRun(text)
	tr.GetFont().SetSize(f.size).SetBold(f.bold).SetColor(color(f.color))
}

// frame appends paragraphs to a shape, one per non-blank line of text.
type frame struct {
	s       *ppt.RichTextShape
	started bool
}

func (f *frame) add(text string, ft font, a align) {
	f.marked("", "", text, ft, a)
}

// marked prefixes the first line of text with first and the others with next.
func (f *frame) marked(first, next, text string, ft font, a align) {
	for i, line := range api.Lines(text) {
		if f.started {
			f.s.CreateParagraph()
		}
		f.started = true
		prefix := next
		if i == 0 {
			prefix = first
		}
		run(f.s, prefix+line, ft)
		a.apply(f.s.GetActiveParagraph())
	}
}

// textBox is shape + paragraphs.
func textBox(slide *ppt.Slide, b box, fill string, lines []string, f font, a align) *ppt.RichTextShape {
	s := shape(slide, b, fill)
	paragraphs(s, lines, f, a)
	return s
}
