package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/pptx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = Options{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"advanced", "comprehensive", "executive", "keti-revision", "massive",
		"overview-2025", "professional", "technical", "ultimate", "ultimate-technical",
	}, Names())
}

func TestList(t *testing.T) {
	entries, err := List(fixed)
	require.NoError(t, err)
	require.Len(t, entries, len(Names()))

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	cases := map[string]struct {
		slides int
		output string
	}{
		"professional":       {27, "SDV_Professional_Presentation_16x9.pptx"},
		"executive":          {9, "SDV_Executive_Presentation_Premium.pptx"},
		"comprehensive":      {28, "SDV_종합분석_보고서.pptx"},
		"technical":          {4, "SDV_기술심화_분석.pptx"},
		"advanced":           {23, "SDV_Advanced_Presentation_Full.pptx"},
		"overview-2025":      {20, "SDV_Comprehensive_Presentation_2025.pptx"},
		"keti-revision":      {11, "중국SDV표준_소개_KETI_박부식0826_수정본.pptx"},
		"ultimate":           {230, "SDV_Ultimate_Comprehensive_200_Slides.pptx"},
		"ultimate-technical": {230, "SDV_Technical_Deep_Dive_200_Slides.pptx"},
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			e, ok := byName[name]
			require.True(t, ok)
			assert.Equal(t, want.slides, e.Slides)
			assert.Equal(t, want.output, e.Output)
		})
	}
	assert.True(t, byName["ultimate"].Generated)
	assert.False(t, byName["executive"].Generated)
}

func TestLoadRendersDate(t *testing.T) {
	deck, err := Load("professional", fixed)
	require.NoError(t, err)
	assert.Equal(t, api.KindTitle, deck.Slides[0].Kind)
	assert.Equal(t, "2025년 01월 15일", deck.Slides[0].Date)
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("nope", fixed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDeck))
	assert.Contains(t, err.Error(), "professional")
}

func TestKetiRevisionNamesLegacy(t *testing.T) {
	deck, err := Load("keti-revision", fixed)
	require.NoError(t, err)
	assert.Equal(t, "중국SDV표준 소개_KETI 박부식0826.pptx", deck.Legacy)
	assert.Equal(t, "중국 SDV 표준 소개", deck.Slides[0].Title)
	assert.Equal(t, api.KindClosing, deck.Slides[len(deck.Slides)-1].Kind)
}

func TestUltimateStructure(t *testing.T) {
	deck := Ultimate(fixed)
	require.Len(t, deck.Slides, 230)
	assert.Equal(t, "Opening Section - Slide 1", deck.Slides[0].Title)
	assert.Equal(t, "Opening Section - Slide 10", deck.Slides[9].Title)

	// market analysis alternates chart, table, text
	market := deck.Slides[10:40]
	assert.Equal(t, "Market Analysis: Global SDV Market Size Projection", market[0].Title)
	assert.Equal(t, "Market Analysis: Global SDV Market Size Projection", market[10].Title)
	assert.Equal(t, api.KindChart, market[0].Kind)
	assert.Equal(t, api.KindTable, market[1].Kind)
	assert.Equal(t, api.KindText, market[2].Kind)

	china := deck.Slides[40:80]
	assert.True(t, china[0].Mono)
	assert.False(t, china[1].Mono)

	assert.Equal(t, "Appendix: Additional Resources", deck.Slides[229].Title)
}

func TestUltimateIsReproducible(t *testing.T) {
	a, b := Ultimate(fixed), Ultimate(fixed)
	assert.Equal(t, a.Slides[10].Chart.Series, b.Slides[10].Chart.Series)

	other := UltimateTechnical(fixed)
	assert.NotEqual(t, a.Slides[10].Chart.Series, other.Slides[10].Chart.Series)

	for _, v := range a.Slides[10].Chart.Series[0].Values {
		assert.GreaterOrEqual(t, v, 100.0)
		assert.LessOrEqual(t, v, 1000.0)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mine.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: mine
title: Custom
slides:
  - kind: title
    title: Custom
    date: "{{ .Date }}"
  - kind: bullets
    title: Points
    bullets:
      - one
      - text: two
        sub: [a, b]
`), 0o600))

	deck, err := LoadFile(file, fixed)
	require.NoError(t, err)
	assert.Equal(t, "mine.pptx", deck.Output)
	assert.Equal(t, "2025년 01월 15일", deck.Slides[0].Date)
	assert.Equal(t, []string{"a", "b"}, deck.Slides[1].Bullets[1].Sub)
}

func TestLoadFileKeepsLiteralBraces(t *testing.T) {
	body := "name: x\nslides:\n  - kind: text\n    title: \"{{ .Date }}\"\n    mono: true\n    text: |\n      spec:\n        image: \"{{ .Values.image }}\"\n        args: [\"{{\"]\n"
	file := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))

	deck, err := LoadFile(file, fixed)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, "2025년 01월 15일", deck.Slides[0].Title)
	assert.Contains(t, deck.Slides[0].Text, `image: "{{ .Values.image }}"`)
	assert.Contains(t, deck.Slides[0].Text, `args: ["{{"]`)
}

func TestLoadFileRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "name: x\nslides:\n  - kind: text\n    title: a\n    body: b\n",
		"invalid slide":  "name: x\nslides:\n  - kind: chart\n    title: a\n",
		"no slides":      "name: x\nslides: []\n",
		"malformed yaml": "name: [x\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "deck.yaml")
			require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
			_, err := LoadFile(file, fixed)
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), fixed)
	assert.Error(t, err)
}

// Every catalog deck is written, reopened and checked slide by slide.
func TestBuildEveryDeck(t *testing.T) {
	if testing.Short() {
		t.Skip("writes every catalog deck")
	}
	dir := t.TempDir()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			deck, err := Load(name, fixed)
			require.NoError(t, err)

			path := filepath.Join(dir, deck.Output)
			result, err := pptx.WriteFile(deck, path)
			require.NoError(t, err)
			assert.Equal(t, len(deck.Slides), result.Slides)
			require.NoError(t, pptx.Verify(deck, path))
		})
	}
}
