package formatters

import (
	"fmt"
	"strings"

	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/chart"
	"github.com/flanksource/decks/formatters/pdf"
)

// PDFFormatter writes a printable handout: slide headings, texts, tables and
// chart images.
type PDFFormatter struct {
	// Font is a TrueType font file, the built-in Latin-1 fonts when empty
	Font string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (f *PDFFormatter) Format(deck *api.Deck) ([]byte, error) {
	theme, err := api.GetTheme(deck.Theme)
	if err != nil {
		return nil, err
	}
	var opts []pdf.BuilderOption
	if f.Font != "" {
		opts = append(opts, pdf.WithFont(f.Font))
	}
	b, err := pdf.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	if err := b.Draw(
		pdf.Text{Content: deck.Title, Size: pdf.SizeTitle, Bold: true, Color: theme.Primary},
		pdf.Text{Content: fmt.Sprintf("%s, %d slides", deck.Output, len(deck.Slides)), Size: pdf.SizeCaption, Color: theme.Muted},
	); err != nil {
		return nil, err
	}

	for i, s := range deck.Slides {
		b.Space(4)
		title := strings.Join(api.Lines(s.Title), " ")
		if err := b.Draw(pdf.Text{
			Content: fmt.Sprintf("%d. %s", i+1, title),
			Size:    pdf.SizeHeading,
			Bold:    true,
			Color:   theme.Secondary,
		}); err != nil {
			return nil, err
		}

		var widget pdf.Widget
		switch {
		case s.Kind == api.KindTable && s.Table != nil:
			widget = pdf.Table{
				Headers:     s.Table.Headers,
				Rows:        s.Table.Rows,
				Widths:      s.Table.Widths,
				HeaderColor: theme.Secondary,
				StripeColor: theme.Stripe,
			}
		case s.Kind == api.KindChart && s.Chart != nil:
			img, _, err := chart.Image(*s.Chart, theme, 800, 400)
			if err != nil {
				return nil, fmt.Errorf("slide %d: %w", i+1, err)
			}
			widget = pdf.Image{PNG: img, Caption: strings.Join(seriesNames(s.Chart), ", "), Height: 80}
		default:
			body := s.Texts()[len(api.Lines(s.Title)):]
			widget = pdf.Text{Content: strings.Join(body, "\n"), Indent: 4, Color: theme.Text}
		}
		if err := b.Draw(widget); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if s.Insight != "" && (s.Kind == api.KindTable || s.Kind == api.KindChart) {
			if err := b.Draw(pdf.Text{Content: s.Insight, Size: pdf.SizeCaption, Bold: true, Color: theme.Primary}); err != nil {
				return nil, err
			}
		}
	}
	return b.Output()
}

func seriesNames(c *api.Chart) []string {
	if c.Type == api.ChartPie {
		return c.Categories
	}
	var names []string
	for _, s := range c.Series {
		names = append(names, s.Name)
	}
	return names
}
