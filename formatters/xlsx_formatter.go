package formatters

import (
	"fmt"
	"strings"

	"github.com/flanksource/decks/api"
	"github.com/xuri/excelize/v2"
)

const outlineSheet = "Outline"

// XLSXFormatter writes an outline sheet plus one sheet per table slide.
type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

func (f *XLSXFormatter) Format(deck *api.Deck) ([]byte, error) {
	theme, err := api.GetTheme(deck.Theme)
	if err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", outlineSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	header, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(theme.Secondary, "#")}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	stripe, err := book.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(theme.Stripe, "#")}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe style: %w", err)
	}

	rows := [][]string{{"Slide", "Kind", "Title", "Text"}}
	for _, s := range deck.Outline().Slides {
		rows = append(rows, []string{fmt.Sprint(s.Number), string(s.Kind), s.Title, strings.Join(s.Body, "\n")})
	}
	if err := writeSheet(book, outlineSheet, rows, header, stripe); err != nil {
		return nil, err
	}
	for col, width := range map[string]float64{"A": 7, "B": 10, "C": 40, "D": 80} {
		if err := book.SetColWidth(outlineSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	for _, s := range deck.TableSlides() {
		name := fmt.Sprintf("Slide %d", s.Number)
		if _, err := book.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		rows := append([][]string{s.Table.Headers}, s.Table.Rows...)
		if err := writeSheet(book, name, rows, header, stripe); err != nil {
			return nil, err
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet writes rows from A1, the first row with the header style and
// every second data row striped.
func writeSheet(book *excelize.File, sheet string, rows [][]string, header, stripe int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := book.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
		if len(row) == 0 || (i > 0 && i%2 == 1) {
			continue
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), i+1)
		if err != nil {
			return err
		}
		style := stripe
		if i == 0 {
			style = header
		}
		if err := book.SetCellStyle(sheet, cell, last, style); err != nil {
			return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
