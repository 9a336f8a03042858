package formatters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/decks/api"
)

// PrettyMixin is implemented by values that render themselves for terminals.
type PrettyMixin interface {
	Pretty() string
}

// PrettyFormatter handles formatting of deck outlines to styled terminal output
type PrettyFormatter struct {
	Theme   api.Theme
	NoColor bool
}

// NewPrettyFormatter creates a new formatter with default theme
func NewPrettyFormatter() *PrettyFormatter {
	theme, _ := api.GetTheme(api.DefaultTheme)
	return &PrettyFormatter{Theme: theme}
}

// kindColors groups slide kinds by what they carry.
var kindColors = map[api.Kind]string{
	api.KindTitle:    "#003366",
	api.KindSection:  "#0070c0",
	api.KindClosing:  "#003366",
	api.KindChart:    "#059669",
	api.KindTable:    "#059669",
	api.KindGantt:    "#059669",
	api.KindCards:    "#9333ea",
	api.KindLayers:   "#9333ea",
	api.KindTimeline: "#9333ea",
}

// Format formats a deck outline into styled output
func (f *PrettyFormatter) Format(outline api.Outline) (string, error) {
	var sb strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(f.Theme.Primary))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Theme.Muted))

	sb.WriteString(f.applyStyle(outline.Title, title))
	sb.WriteString(f.applyStyle(fmt.Sprintf("  %s, %d slides", outline.Output, len(outline.Slides)), muted))
	sb.WriteString("\n")

	for _, s := range outline.Slides {
		kind := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(f.kindColor(s.Kind)))
		heading := strings.Join(api.Lines(s.Title), " / ")
		fmt.Fprintf(&sb, "\n%3d %s %s\n", s.Number, f.applyStyle(fmt.Sprintf("%-8s", s.Kind), kind), heading)
		for _, text := range s.Body {
			sb.WriteString("             ")
			sb.WriteString(f.applyStyle(strings.TrimSpace(text), muted))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func (f *PrettyFormatter) kindColor(k api.Kind) string {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return f.Theme.Text
}

// Table renders rows in a box drawn table; the first row is the header.
func (f *PrettyFormatter) Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	colWidths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range colWidths {
		// 1 space before, 1 after
		colWidths[i] += 2
	}

	borderStyle := lipgloss.NewStyle()
	if !f.NoColor {
		borderStyle = borderStyle.Foreground(lipgloss.Color(f.Theme.Muted))
	}
	header := lipgloss.NewStyle().Bold(true)

	var result strings.Builder
	result.WriteString(f.createTableBorder(colWidths, "┌", "┬", "┐", "─", borderStyle))
	result.WriteString("\n")
	for i, row := range rows {
		if i == 0 {
			styled := make([]string, len(row))
			for j, cell := range row {
				styled[j] = f.applyStyle(cell, header)
			}
			row = styled
		}
		result.WriteString(f.formatTableRow(row, colWidths, borderStyle))
		result.WriteString("\n")
		if i == 0 && len(rows) > 1 {
			result.WriteString(f.createTableBorder(colWidths, "├", "┼", "┤", "─", borderStyle))
			result.WriteString("\n")
		}
	}
	result.WriteString(f.createTableBorder(colWidths, "└", "┴", "┘", "─", borderStyle))
	return result.String()
}

// formatTableRow formats a single table row
func (f *PrettyFormatter) formatTableRow(row []string, colWidths []int, borderStyle lipgloss.Style) string {
	var result strings.Builder

	result.WriteString(f.applyStyle("│", borderStyle))
	for i, width := range colWidths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		result.WriteString(" ")
		result.WriteString(cell)
		if pad := width - lipgloss.Width(cell) - 1; pad > 0 {
			result.WriteString(strings.Repeat(" ", pad))
		}
		result.WriteString(f.applyStyle("│", borderStyle))
	}
	return result.String()
}

// createTableBorder creates a table border line
func (f *PrettyFormatter) createTableBorder(colWidths []int, left, mid, right, fill string, style lipgloss.Style) string {
	var result strings.Builder

	result.WriteString(f.applyStyle(left, style))
	for i, width := range colWidths {
		result.WriteString(f.applyStyle(strings.Repeat(fill, width), style))
		if i < len(colWidths)-1 {
			result.WriteString(f.applyStyle(mid, style))
		}
	}
	result.WriteString(f.applyStyle(right, style))
	return result.String()
}

// applyStyle applies a lipgloss style if colors are enabled
func (f *PrettyFormatter) applyStyle(text string, style lipgloss.Style) string {
	if f.NoColor {
		return text
	}
	return style.Render(text)
}
