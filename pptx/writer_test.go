package pptx

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// everyKind returns a deck with one slide of each kind.
func everyKind() *api.Deck {
	return &api.Deck{
		Name:         "kinds",
		Title:        "SDV",
		Output:       "kinds.pptx",
		Theme:        "executive",
		SlideNumbers: true,
		Slides: []api.Slide{
			{Kind: api.KindTitle, Title: "Software-Defined Vehicle (SDV)\n글로벌 표준화 동향", Subtitle: "중국 SDV 표준 심층 분석 | AUTOSAR 비교", Date: "2025년 01월 15일"},
			{Kind: api.KindAgenda, Title: "Agenda", Agenda: []api.AgendaItem{
				{Title: "Executive Summary", Detail: "핵심 요약"},
				{Title: "시장 분석", Detail: "Market Analysis"},
			}},
			{Kind: api.KindSection, Title: "SDV 개념 및 시장 전망", Number: 1},
			{Kind: api.KindBullets, Title: "Executive Summary", Bullets: []api.Bullet{
				{Text: "SDV 시장 급성장", Sub: []string{"2030년 시장 규모 $3,500억", "연평균 성장률 32%"}},
				{Text: "중국 표준의 부상"},
			}},
			{Kind: api.KindText, Title: "API 아키텍처", Mono: true, Text: "┌──────────┐\n│ App      │\n└──────────┘\n\n  Atomic Service API"},
			{Kind: api.KindTable, Title: "SDV 시장 전망", Table: &api.Table{
				Headers: []string{"구분", "2024년", "2030년", "CAGR"},
				Rows: [][]string{
					{"시장 규모", "$650억", "$3,500억", "32%"},
					{"SDV 비중", "15%", "60%", "-"},
					{"표준 성숙도", "●●●", "", ""},
				},
			}, Insight: "2030년까지 5배 성장"},
			{Kind: api.KindChart, Title: "시장 전망", Chart: &api.Chart{
				Type:       api.ChartColumn,
				Categories: []string{"2024", "2025", "2026"},
				Series: []api.Series{
					{Name: "시장 규모 (억 달러)", Values: []float64{650, 980, 1420}},
					{Name: "SDV 차량 (백만대)", Values: []float64{20, 45, 75}},
				},
			}},
			{Kind: api.KindChart, Title: "투자 배분 (%)", Chart: &api.Chart{
				Type:       api.ChartPie,
				Categories: []string{"R&D", "인프라"},
				Series:     []api.Series{{Name: "투자", Values: []float64{70, 30}}},
			}},
			{Kind: api.KindTimeline, Title: "실행 로드맵", Phases: []api.Phase{
				{Phase: "Phase 1", Title: "2024-2025", Details: []string{"기반 구축", "표준 분석"}},
				{Phase: "Phase 2", Title: "2026-2027", Details: []string{"확산"}},
			}},
			{Kind: api.KindCards, Title: "Key Messages", Cards: []api.Card{
				{Title: "SDV는 필수", Value: "$3,500억", Note: "2030 시장"},
				{Title: "중국의 도전", Color: "red-600"},
				{Title: "한국의 기회", Note: "line one\nline two"},
			}},
			{Kind: api.KindLayers, Title: "SDV 기술 아키텍처", Layers: []api.Layer{
				{Name: "Application Layer", Detail: "차량 서비스 및 앱"},
				{Name: "Hardware Layer", Detail: "ECU / HPC", Color: "slate-600"},
			}},
			{Kind: api.KindGantt, Title: "2025년 실행 계획", Gantt: &api.Gantt{
				Months: []string{"1월", "2월", "3월", "4월"},
				Tasks: []api.GanttTask{
					{Name: "표준 분석", Start: 0, Duration: 2},
					{Name: "PoC 개발", Start: 1, Duration: 3},
				},
			}},
			{Kind: api.KindClosing, Title: "The Future is Software-Defined", Subtitle: "Act Now or Be Left Behind"},
		},
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	deck := everyKind()
	path := filepath.Join(t.TempDir(), deck.Output)

	result, err := WriteFile(deck, path)
	require.NoError(t, err)
	assert.Equal(t, len(deck.Slides), result.Slides)
	assert.Len(t, result.SHA256, 64)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, result.Size, info.Size())

	require.NoError(t, Verify(deck, path))

	inspection, err := Inspect(path)
	require.NoError(t, err)
	require.Len(t, inspection.Slides, len(deck.Slides))
	assert.Equal(t, "Software-Defined Vehicle (SDV)\n글로벌 표준화 동향", inspection.Slides[0].Title)
	assert.Equal(t, "SDV 시장 전망", inspection.Slides[5].Title)
	assert.Equal(t, "The Future is Software-Defined", inspection.Slides[len(deck.Slides)-1].Title)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	deck := everyKind()
	path := filepath.Join(t.TempDir(), deck.Output)
	_, err := WriteFile(deck, path)
	require.NoError(t, err)

	changed := everyKind()
	changed.Slides[3].Bullets[0].Text = "다른 문장"
	err = Verify(changed, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "다른 문장")

	shorter := everyKind()
	shorter.Slides = shorter.Slides[:3]
	err = Verify(shorter, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3")
}

func TestWriteFileInvalidDeckLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	deck := &api.Deck{Name: "bad", Slides: []api.Slide{{Kind: api.KindTable, Title: "empty"}}}

	_, err := WriteFile(deck, filepath.Join(dir, "bad.pptx"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteIsZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(everyKind(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func TestPreviewAndNormalize(t *testing.T) {
	assert.Equal(t, "a b", Preview("a\nb", 100))
	assert.Equal(t, "가나", Preview("가나다", 2))
	assert.Equal(t, "main", Normalize(BulletMain+"main"))
	assert.Equal(t, "sub", Normalize(BulletSub+"sub "))
	assert.Equal(t, "│ App      │", Normalize("  │ App      │"))
}

func TestEveryKindRoundTripsLinesAndInsight(t *testing.T) {
	const insight = "2030년까지 5배 성장\n중국 표준 주도"
	slides := []api.Slide{
		{Kind: api.KindTitle, Title: "SDV\n표준화 동향", Subtitle: "중국 SDV 표준\nAUTOSAR 비교", Date: "2025년 01월 15일"},
		{Kind: api.KindSection, Title: "시장 전망\nMarket Outlook", Number: 2, Subtitle: "line one\nline two"},
		{Kind: api.KindAgenda, Title: "Agenda", Insight: insight, Agenda: []api.AgendaItem{
			{Title: "시장\n분석", Detail: "Market\nAnalysis"},
		}},
		{Kind: api.KindBullets, Title: "Executive Summary", Insight: insight, Bullets: []api.Bullet{
			{Text: "line one\nline two", Sub: []string{"sub one\nsub two"}},
		}},
		{Kind: api.KindText, Title: "API", Insight: insight, Text: "first\n\nsecond"},
		{Kind: api.KindTable, Title: "시장", Insight: insight, Table: &api.Table{
			Headers: []string{"구분\n(단위)", "값"},
			Rows:    [][]string{{"시장\n규모", "1"}},
		}},
		{Kind: api.KindChart, Title: "전망", Insight: insight, Chart: &api.Chart{
			Type:       api.ChartColumn,
			Categories: []string{"2024", "2025"},
			Series:     []api.Series{{Name: "시장\n규모", Values: []float64{1, 2}}},
		}},
		{Kind: api.KindTimeline, Title: "로드맵", Insight: insight, Phases: []api.Phase{
			{Phase: "Phase 1\n기반", Title: "2024\n2025", Details: []string{"기반\n구축", "표준 분석"}},
		}},
		{Kind: api.KindCards, Title: "Key Messages", Insight: insight, Cards: []api.Card{
			{Title: "SDV는\n필수", Value: "$3,500억\n2030", Note: "n1\nn2"},
		}},
		{Kind: api.KindLayers, Title: "아키텍처", Insight: insight, Layers: []api.Layer{
			{Name: "Application\nLayer", Detail: "차량 서비스\n앱"},
		}},
		{Kind: api.KindGantt, Title: "실행 계획", Insight: insight, Gantt: &api.Gantt{
			Months: []string{"1월\nJan", "2월"},
			Tasks:  []api.GanttTask{{Name: "표준\n분석", Start: 0, Duration: 2}},
		}},
		{Kind: api.KindClosing, Title: "감사합니다\nThank you", Subtitle: "Q&A\n문의"},
	}

	covered := map[api.Kind]bool{}
	for _, slide := range slides {
		covered[slide.Kind] = true
		t.Run(string(slide.Kind), func(t *testing.T) {
			deck := &api.Deck{Name: "kind", Output: "kind.pptx", Slides: []api.Slide{slide}}
			path := filepath.Join(t.TempDir(), deck.Output)
			_, err := WriteFile(deck, path)
			require.NoError(t, err)
			require.NoError(t, Verify(deck, path))
		})
	}
	for _, kind := range api.Kinds {
		assert.True(t, covered[kind], "no case for %s", kind)
	}
}

func TestBulletLinesArePrefixedOnce(t *testing.T) {
	deck := &api.Deck{Name: "bullets", Output: "bullets.pptx", Slides: []api.Slide{
		{Kind: api.KindBullets, Title: "Bullets", Bullets: []api.Bullet{{Text: "line one\nline two"}}},
	}}
	path := filepath.Join(t.TempDir(), deck.Output)
	_, err := WriteFile(deck, path)
	require.NoError(t, err)

	inspection, err := Inspect(path)
	require.NoError(t, err)
	paragraphs := inspection.Slides[0].Paragraphs
	require.Len(t, paragraphs, 3)
	assert.Equal(t, BulletMain+"line one", paragraphs[1])
	assert.Equal(t, "line two", strings.TrimSpace(paragraphs[2]))
}

func TestExportPDF(t *testing.T) {
	if _, err := exec.Which(OfficeBinaries...); err != nil {
		t.Skip("LibreOffice is not installed")
	}
	deck := everyKind()
	deck.Slides = deck.Slides[:3]
	dir := t.TempDir()
	path := filepath.Join(dir, "export.pptx")
	_, err := WriteFile(deck, path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	out, err := ExportPDF(ctx, path, filepath.Join(dir, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pdf", "export.pdf"), out)
	assert.FileExists(t, out)
}

func TestExportPDFWithoutOffice(t *testing.T) {
	saved := OfficeBinaries
	OfficeBinaries = []string{"definitely-not-libreoffice"}
	t.Cleanup(func() { OfficeBinaries = saved })

	_, err := ExportPDF(context.Background(), "deck.pptx", t.TempDir())
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExportPDFUsesPrivateProfile(t *testing.T) {
	bin := t.TempDir()
	office := filepath.Join(bin, "fake-office")
	script := "#!/bin/sh\nfor last; do :; done\nprintf '%s' \"$HOME\" > \"$(basename \"$last\" .pptx).pdf\"\n"
	require.NoError(t, os.WriteFile(office, []byte(script), 0o755))
	saved := OfficeBinaries
	OfficeBinaries = []string{office}
	t.Cleanup(func() { OfficeBinaries = saved })

	dir := t.TempDir()
	out, err := ExportPDF(context.Background(), filepath.Join(dir, "deck.pptx"), filepath.Join(dir, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pdf", "deck.pdf"), out)

	home, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(string(home)), "decks-office-")
	assert.NoDirExists(t, string(home))
}

func TestInspectionPretty(t *testing.T) {
	inspection := Inspection{Slides: []SlideInfo{
		{Number: 1, Title: "중국 SDV 표준 소개", Content: []string{"line one\nline two", "second", "third"}},
		{Number: 2, Title: "Q&A"},
	}}
	out := inspection.Pretty()
	assert.Contains(t, out, "Total slides: 2\n")
	assert.Contains(t, out, "Slide 1: 중국 SDV 표준 소개\n  - line one line two...\n  - second...\n")
	assert.NotContains(t, out, "third")
	assert.Contains(t, out, "Slide 2: Q&A\n"+strings.Repeat("-", 40))
}
