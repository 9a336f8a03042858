package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Image widget for rendering a PNG in PDF
type Image struct {
	PNG     []byte
	Caption string
	// Height in mm, 60 when zero
	Height float64
}

// Draw implements the Widget interface
func (i Image) Draw(b *Builder) error {
	if len(i.PNG) == 0 {
		return fmt.Errorf("image %q has no content", i.Caption)
	}
	height := i.Height
	if height == 0 {
		height = 60
	}
	b.AddRow(height, col.New(gridColumns).Add(
		image.NewFromBytes(i.PNG, extension.Png, props.Rect{Center: true, Percent: 100}),
	))

	if i.Caption != "" {
		p := b.textProps(SizeCaption, fontstyle.Italic, "#646464")
		p.Align = align.Center
		b.AddRow(lineHeight(SizeCaption), col.New(gridColumns).Add(text.New(i.Caption, p)))
	}
	return nil
}
