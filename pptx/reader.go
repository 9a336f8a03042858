package pptx

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/decks/api"
)

// Bullet markers prefixed to bullet paragraphs, stripped again by Normalize.
const (
	BulletMain = "• "
	BulletSub  = "    – "
)

// SlideInfo is the text found on one slide of an existing presentation.
type SlideInfo struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	// Content holds the text of every other shape, paragraphs joined by newlines
	Content []string `json:"content,omitempty" yaml:"content,omitempty"`
	// Paragraphs holds every non-empty paragraph on the slide, title included
	Paragraphs []string `json:"-" yaml:"-"`
}

type Inspection struct {
	Path   string      `json:"path" yaml:"path"`
	Slides []SlideInfo `json:"slides" yaml:"slides"`
}

// Pretty prints each slide title with previews of its first two text shapes.
func (i Inspection) Pretty() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total slides: %d\n", len(i.Slides))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	for _, s := range i.Slides {
		fmt.Fprintf(&sb, "Slide %d: %s\n", s.Number, s.Title)
		for j, content := range s.Content {
			if j == 2 {
				break
			}
			if preview := Preview(content, 100); preview != "" {
				fmt.Fprintf(&sb, "  - %s...\n", preview)
			}
		}
		sb.WriteString(strings.Repeat("-", 40) + "\n")
	}
	return sb.String()
}

func readPresentation(path string) (*ppt.Presentation, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPT file %s: %w", path, err)
	}
	return pres, nil
}

// Inspect reads every text shape of a presentation. The title of a slide is
// the text of its first shape that carries any.
func Inspect(path string) (*Inspection, error) {
	pres, err := readPresentation(path)
	if err != nil {
		return nil, err
	}

	result := &Inspection{Path: path}
	for i, slide := range pres.GetAllSlides() {
		info := SlideInfo{Number: i + 1}
		for _, s := range slide.GetShapes() {
			rts, ok := s.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			var lines []string
			for _, para := range rts.GetParagraphs() {
				var text string
				for _, elem := range para.GetElements() {
					if tr, ok := elem.(*ppt.TextRun); ok {
						text += tr.GetText()
					}
				}
				if strings.TrimSpace(text) == "" {
					continue
				}
				lines = append(lines, text)
				info.Paragraphs = append(info.Paragraphs, text)
			}
			if len(lines) == 0 {
				continue
			}
			if info.Title == "" {
				info.Title = strings.Join(lines, "\n")
			} else {
				info.Content = append(info.Content, strings.Join(lines, "\n"))
			}
		}
		result.Slides = append(result.Slides, info)
	}
	return result, nil
}

// Preview flattens newlines and cuts text to n runes.
func Preview(text string, n int) string {
	flat := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(flat) > n {
		flat = flat[:n]
	}
	return string(flat)
}

// Normalize trims whitespace and bullet markers so written and read text compare equal.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	for _, marker := range []string{BulletMain, BulletSub} {
		text = strings.TrimPrefix(text, strings.TrimSpace(marker))
	}
	return strings.TrimSpace(text)
}

// Verify reopens a written presentation and checks that it holds one slide per
// definition and that every slide's texts survive the round trip.
func Verify(deck *api.Deck, path string) error {
	inspection, err := Inspect(path)
	if err != nil {
		return err
	}
	if len(inspection.Slides) != len(deck.Slides) {
		return fmt.Errorf("%s has %d slides, expected %d", path, len(inspection.Slides), len(deck.Slides))
	}

	for i, s := range deck.Slides {
		info := inspection.Slides[i]
		texts := s.Texts()
		if len(texts) > 0 {
			title := Normalize(strings.SplitN(info.Title, "\n", 2)[0])
			if title != Normalize(texts[0]) {
				return fmt.Errorf("slide %d: title %q, expected %q", i+1, title, texts[0])
			}
		}

		found := map[string]int{}
		for _, p := range info.Paragraphs {
			found[Normalize(p)]++
		}
		for _, text := range texts {
			key := Normalize(text)
			if found[key] == 0 {
				return fmt.Errorf("slide %d (%s): text %q not found", i+1, s.Title, text)
			}
			found[key]--
		}
	}
	return nil
}
