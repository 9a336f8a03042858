package formatters

import (
	"bytes"
	"fmt"
	"html"

	"github.com/flanksource/decks/api"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the Markdown outline to a standalone page
type HTMLFormatter struct {
	IncludeCSS bool
	markdown   *MarkdownFormatter
	md         goldmark.Markdown
}

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		IncludeCSS: true,
		markdown:   NewMarkdownFormatter(),
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// getCSS returns the page header with Tailwind CSS CDN styling
func (f *HTMLFormatter) getCSS(title string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <script src="https://cdn.tailwindcss.com?plugins=typography"></script>
</head>
<body class="bg-gray-100 min-h-screen p-6">
    <article class="prose max-w-5xl mx-auto bg-white rounded-lg shadow p-8">
`, html.EscapeString(title))
}

func (f *HTMLFormatter) Format(deck *api.Deck) (string, error) {
	source, err := f.markdown.Format(deck)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := f.md.Convert([]byte(source), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	if !f.IncludeCSS {
		return body.String(), nil
	}
	return f.getCSS(deck.Title) + body.String() + "    </article>\n</body>\n</html>\n", nil
}
