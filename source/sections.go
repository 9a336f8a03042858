package source

import (
	"regexp"
	"strings"
)

// DefaultSectionTitle names the text before the first numbered heading.
const DefaultSectionTitle = "SDV 개념 및 표준화 동향"

var heading = regexp.MustCompile(`^(\d+|[IVX]+)\.`)

type Section struct {
	Title string   `json:"title" yaml:"title"`
	Lines []string `json:"lines" yaml:"lines"`
}

// SplitSections starts a new section at every line numbered like "3." or
// "IV.". Blank lines are skipped and sections without content are dropped.
func SplitSections(text, defaultTitle string) []Section {
	var sections []Section
	current := Section{Title: defaultTitle}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if heading.MatchString(line) {
			if len(current.Lines) > 0 {
				sections = append(sections, current)
			}
			current = Section{Title: line}
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	if len(current.Lines) > 0 {
		sections = append(sections, current)
	}
	return sections
}
