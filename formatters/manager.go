package formatters

import (
	"fmt"

	"github.com/flanksource/decks/api"
)

type FormatManager struct {
	jsonFormatter     *JSONFormatter
	yamlFormatter     *YAMLFormatter
	csvFormatter      *CSVFormatter
	markdownFormatter *MarkdownFormatter
	htmlFormatter     *HTMLFormatter
	prettyFormatter   *PrettyFormatter
	xlsxFormatter     *XLSXFormatter
	pdfFormatter      *PDFFormatter
}

// NewFormatManager creates a new format manager with all formatters initialized
func NewFormatManager(options FormatOptions) *FormatManager {
	pretty := NewPrettyFormatter()
	pretty.NoColor = options.NoColor
	pdf := NewPDFFormatter()
	pdf.Font = options.Font
	return &FormatManager{
		jsonFormatter:     NewJSONFormatter(),
		yamlFormatter:     NewYAMLFormatter(),
		csvFormatter:      NewCSVFormatter(),
		markdownFormatter: NewMarkdownFormatter(),
		htmlFormatter:     NewHTMLFormatter(),
		prettyFormatter:   pretty,
		xlsxFormatter:     NewXLSXFormatter(),
		pdfFormatter:      pdf,
	}
}

// Format renders the outline of a deck
func (f *FormatManager) Format(format string, deck *api.Deck) ([]byte, error) {
	var out string
	var err error
	switch format {
	case "json":
		out, err = f.jsonFormatter.Format(deck.Outline())
	case "yaml", "yml":
		out, err = f.yamlFormatter.Format(deck.Outline())
	case "csv":
		out, err = f.csvFormatter.Format(deck.Outline())
	case "markdown", "md":
		out, err = f.markdownFormatter.Format(deck)
	case "html":
		out, err = f.htmlFormatter.Format(deck)
	case "pretty", "":
		out, err = f.prettyFormatter.Format(deck.Outline())
	case "xlsx":
		return f.xlsxFormatter.Format(deck)
	case "pdf":
		return f.pdfFormatter.Format(deck)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// FormatValue renders command results other than outlines: json and yaml
// marshal the value, pretty uses its PrettyMixin implementation.
func (f *FormatManager) FormatValue(format string, data interface{}) (string, error) {
	switch format {
	case "json":
		return f.jsonFormatter.Format(data)
	case "yaml", "yml":
		return f.yamlFormatter.Format(data)
	case "pretty", "":
		if p, ok := data.(PrettyMixin); ok {
			return p.Pretty(), nil
		}
		return f.yamlFormatter.Format(data)
	default:
		return "", fmt.Errorf("format %s is only supported for deck outlines", format)
	}
}

// Pretty returns the terminal formatter, for values rendering tables.
func (f *FormatManager) Pretty() *PrettyFormatter {
	return f.prettyFormatter
}
