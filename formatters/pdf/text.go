package pdf

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
)

// Text widget for rendering text in PDF, one row per line
type Text struct {
	Content string
	Size    float64
	Bold    bool
	Color   string
	// Indent in mm
	Indent float64
}

// Draw implements the Widget interface
func (t Text) Draw(b *Builder) error {
	size := t.Size
	if size == 0 {
		size = SizeBody
	}
	style := fontstyle.Normal
	if t.Bold {
		style = fontstyle.Bold
	}
	p := b.textProps(size, style, t.Color)
	p.Left = t.Indent

	for _, line := range strings.Split(t.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.AddRow(lineHeight(size), col.New(gridColumns).Add(text.New(line, p)))
	}
	return nil
}
