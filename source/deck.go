package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flanksource/decks/api"
)

const (
	// Output is the file name of a PDF sourced deck.
	Output = "SDV_Presentation.pptx"

	koreanTitle  = "SDV 개념 및 중독일 표준화 동향"
	koreanAuthor = "최동근"
	specsTitle   = "SDV Service Interface Specifications"

	maxSections   = 10
	maxTitleRunes = 100
	maxLines      = 10
	maxBodyRunes  = 500
	previewRunes  = 500
)

var specPart = regexp.MustCompile(`Part (\d+) (.+?) Interface`)

// SpecTitles derives the short and full title of a specification document
// from its file name, e.g. "Part 1: Atomic Service API".
func SpecTitles(path string) (short, full string) {
	full = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	full = strings.TrimSpace(strings.TrimSuffix(full, "(중국어)"))
	if m := specPart.FindStringSubmatch(full); m != nil {
		return fmt.Sprintf("Part %s: %s", m[1], m[2]), full
	}
	return full, full
}

// Deck lays out the review of the Korean standardisation document followed by
// one slide per interface specification.
func Deck(korean *Document, specs []*Document) *api.Deck {
	deck := &api.Deck{
		Name:   "from-pdf",
		Title:  "SDV (Software-Defined Vehicle)",
		Author: koreanAuthor,
		Output: Output,
		Theme:  "professional",
	}
	add := func(s api.Slide) { deck.Slides = append(deck.Slides, s) }

	add(api.Slide{
		Kind:     api.KindTitle,
		Title:    "SDV (Software-Defined Vehicle)",
		Subtitle: "개념 및 표준화 동향 분석\n중독일 표준 문서 리뷰",
	})

	overview := []string{
		"포함된 문서:",
		"",
		fmt.Sprintf("1. %s (작성: %s)", koreanTitle, koreanAuthor),
		fmt.Sprintf("   - 총 %d페이지", korean.Pages),
		"",
		"2. SDV Intelligent Connected Vehicle Service Interface Specification",
	}
	for _, spec := range specs {
		short, _ := SpecTitles(spec.Path)
		overview = append(overview, fmt.Sprintf("   - %s: %d페이지", short, spec.Pages))
	}
	add(api.Slide{Kind: api.KindText, Title: "문서 개요", Text: strings.Join(overview, "\n")})

	sections := SplitSections(korean.Text, DefaultSectionTitle)
	if len(sections) > 0 {
		add(api.Slide{Kind: api.KindSection, Number: 1, Title: koreanTitle})
		for _, section := range sections[:min(len(sections), maxSections)] {
			body := strings.Join(section.Lines[:min(len(section.Lines), maxLines)], "\n")
			if len([]rune(body)) > maxBodyRunes {
				body = truncate(body, maxBodyRunes) + "..."
			}
			add(api.Slide{Kind: api.KindText, Title: truncate(section.Title, maxTitleRunes), Text: body})
		}
	}

	add(api.Slide{Kind: api.KindSection, Number: 2, Title: specsTitle})
	for _, spec := range specs {
		short, full := SpecTitles(spec.Path)
		preview := truncate(spec.Text, previewRunes)
		if strings.TrimSpace(preview) == "" {
			preview = "Unable to extract content"
		}
		add(api.Slide{
			Kind:  api.KindText,
			Title: short,
			Text: fmt.Sprintf("Document: %s\n\nTotal Pages: %d\n\nContent Preview:\n%s",
				full, spec.Pages, preview),
		})
	}

	add(api.Slide{Kind: api.KindBullets, Title: "요약 및 결론", Bullets: []api.Bullet{
		{Text: "SDV는 소프트웨어 중심의 차량 아키텍처"},
		{Text: "중국, 독일, 일본의 표준화 동향 분석"},
		{Text: "Service Interface Specification 정의", Sub: []string{
			"Part 1: Atomic Service API",
			"Part 2: Device Abstraction API",
		}},
		{Text: "Version 4 Beta 1 사양 문서화"},
	}})
	return deck
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
