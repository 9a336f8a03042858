package formatters

import (
	"fmt"
	"strings"

	"github.com/flanksource/decks/api"
)

// MarkdownFormatter handles Markdown formatting
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes one section per slide. Table slides become GFM tables, every
// other slide lists its texts.
func (f *MarkdownFormatter) Format(deck *api.Deck) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(deck.Title))
	fmt.Fprintf(&sb, "_%d slides, %s_\n", len(deck.Slides), escapeMarkdown(deck.Output))

	for i, s := range deck.Slides {
		title := strings.Join(api.Lines(s.Title), " ")
		if title == "" {
			title = string(s.Kind)
		}
		fmt.Fprintf(&sb, "\n## %d. %s `%s`\n\n", i+1, escapeMarkdown(title), s.Kind)

		if s.Kind == api.KindTable && s.Table != nil {
			f.table(&sb, s.Table)
			if s.Insight != "" {
				fmt.Fprintf(&sb, "\n> %s\n", escapeMarkdown(s.Insight))
			}
			continue
		}
		if s.Mono {
			sb.WriteString("```\n" + s.Text + "\n```\n")
			continue
		}
		for _, text := range s.Texts()[len(api.Lines(s.Title)):] {
			fmt.Fprintf(&sb, "- %s\n", escapeMarkdown(strings.TrimSpace(text)))
		}
	}
	return sb.String(), nil
}

func (f *MarkdownFormatter) table(sb *strings.Builder, t *api.Table) {
	row := func(cells []string) {
		sb.WriteString("|")
		for i := range t.Headers {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(escapeMarkdown(cells[i]), "\n", " ")
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	row(t.Headers)
	sb.WriteString("|" + strings.Repeat(" --- |", len(t.Headers)) + "\n")
	for _, r := range t.Rows {
		row(r)
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
