package api

import (
	"fmt"
	"sort"

	"github.com/flanksource/decks/api/tailwind"
)

// Theme holds the colours a deck is drawn with, as "#rrggbb" values.
type Theme struct {
	Name      string   `yaml:"name" json:"name"`
	Primary   string   `yaml:"primary" json:"primary"`
	Secondary string   `yaml:"secondary" json:"secondary"`
	Accent    string   `yaml:"accent" json:"accent"`
	Text      string   `yaml:"text" json:"text"`
	Muted     string   `yaml:"muted" json:"muted"`
	Stripe    string   `yaml:"stripe" json:"stripe"`
	Palette   []string `yaml:"palette" json:"palette"`
}

var Themes = map[string]Theme{
	"professional": {
		Name:      "professional",
		Primary:   "rgb(0, 51, 102)",
		Secondary: "rgb(0, 112, 192)",
		Accent:    "rgb(255, 192, 0)",
		Text:      "rgb(51, 51, 51)",
		Muted:     "rgb(89, 89, 89)",
		Stripe:    "rgb(242, 242, 242)",
		Palette:   []string{"rgb(0, 112, 192)", "rgb(255, 192, 0)", "emerald-600", "red-500", "purple-600", "slate-500"},
	},
	"executive": {
		Name:      "executive",
		Primary:   "rgb(0, 51, 102)",
		Secondary: "rgb(0, 112, 192)",
		Accent:    "rgb(255, 192, 0)",
		Text:      "rgb(51, 51, 51)",
		Muted:     "rgb(89, 89, 89)",
		Stripe:    "rgb(242, 242, 242)",
		Palette:   []string{"rgb(0, 51, 102)", "rgb(255, 192, 0)", "rgb(0, 112, 192)", "emerald-600", "red-500"},
	},
	"advanced": {
		Name:      "advanced",
		Primary:   "rgb(0, 84, 159)",
		Secondary: "rgb(0, 112, 192)",
		Accent:    "orange-500",
		Text:      "gray-800",
		Muted:     "gray-500",
		Stripe:    "slate-100",
		Palette:   []string{"rgb(0, 84, 159)", "red-600", "emerald-600", "orange-500", "purple-600"},
	},
}

const DefaultTheme = "professional"

// GetTheme returns a built-in theme with every colour resolved to hex.
func GetTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	theme, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme '%s', available: %v", name, ThemeNames())
	}
	return theme.Resolve()
}

// Resolve converts every colour reference of the theme to "#rrggbb".
func (t Theme) Resolve() (Theme, error) {
	out := t
	out.Palette = make([]string, len(t.Palette))
	for _, c := range []*string{&out.Primary, &out.Secondary, &out.Accent, &out.Text, &out.Muted, &out.Stripe} {
		hex, err := tailwind.ParseColor(*c)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", t.Name, err)
		}
		*c = hex
	}
	for i, c := range t.Palette {
		hex, err := tailwind.ParseColor(c)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s palette: %w", t.Name, err)
		}
		out.Palette[i] = hex
	}
	if len(out.Palette) == 0 {
		out.Palette = []string{out.Secondary, out.Accent, out.Primary}
	}
	return out, nil
}

// Series returns the palette colour for the i-th series.
func (t Theme) Series(i int) string {
	return t.Palette[i%len(t.Palette)]
}

// ColorOr resolves ref, falling back to def when ref is empty or invalid.
func (t Theme) ColorOr(ref, def string) string {
	if ref == "" {
		return def
	}
	hex, err := tailwind.ParseColor(ref)
	if err != nil {
		return def
	}
	return hex
}

func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
