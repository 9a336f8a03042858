package formatters

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/flanksource/decks/api"
)

// CSVFormatter writes one row per slide text: slide, kind, title, text.
type CSVFormatter struct {
	Separator rune
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{
		Separator: ',',
	}
}

func (f *CSVFormatter) Format(outline api.Outline) (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)
	writer.Comma = f.Separator

	if err := writer.Write([]string{"slide", "kind", "title", "text"}); err != nil {
		return "", err
	}
	for _, s := range outline.Slides {
		prefix := []string{strconv.Itoa(s.Number), string(s.Kind), s.Title}
		if len(s.Body) == 0 {
			if err := writer.Write(append(prefix, "")); err != nil {
				return "", err
			}
			continue
		}
		for _, text := range s.Body {
			if err := writer.Write(append(prefix, text)); err != nil {
				return "", err
			}
		}
	}
	writer.Flush()
	return output.String(), writer.Error()
}
