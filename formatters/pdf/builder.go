package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

// Widget interface for all PDF widgets
type Widget interface {
	// Draw draws the widget using the builder
	Draw(b *Builder) error
}

// Builder wraps Maroto for PDF generation
type Builder struct {
	maroto   core.Maroto
	fontFile string
	family   string
}

// BuilderOption is a function that configures a Builder
type BuilderOption func(*Builder)

// WithFont embeds a TrueType font used for every text. The built-in PDF fonts
// only cover Latin-1, so Hangul and Han text needs one.
func WithFont(file string) BuilderOption {
	return func(b *Builder) {
		b.fontFile = file
	}
}

// NewBuilder creates a new PDF builder using Maroto
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		WithBottomMargin(10)

	if b.fontFile != "" {
		b.family = "custom"
		fonts, err := repository.New().
			AddUTF8Font(b.family, fontstyle.Normal, b.fontFile).
			AddUTF8Font(b.family, fontstyle.Bold, b.fontFile).
			AddUTF8Font(b.family, fontstyle.Italic, b.fontFile).
			AddUTF8Font(b.family, fontstyle.BoldItalic, b.fontFile).
			Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", b.fontFile, err)
		}
		cfg = cfg.WithCustomFonts(fonts).WithDefaultFont(&props.Font{Family: b.family})
	}

	b.maroto = maroto.New(cfg.Build())
	return b, nil
}

// Draw draws a widget
func (b *Builder) Draw(widgets ...Widget) error {
	for _, w := range widgets {
		if err := w.Draw(b); err != nil {
			return err
		}
	}
	return nil
}

// AddRow adds a custom row to the PDF
func (b *Builder) AddRow(height float64, columns ...core.Col) {
	b.maroto.AddRow(height, columns...)
}

// Space adds vertical spacing in mm
func (b *Builder) Space(height float64) {
	b.maroto.AddRows(row.New(height))
}

// Output generates the final PDF content
func (b *Builder) Output() ([]byte, error) {
	document, err := b.maroto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

func (b *Builder) textProps(size float64, style fontstyle.Type, color string) props.Text {
	p := props.Text{Size: size, Style: style, Family: b.family}
	if color != "" {
		p.Color = rgb(color)
	}
	return p
}
