package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/flanksource/decks/api"
	"github.com/rustyoz/svg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTheme(t *testing.T) api.Theme {
	theme, err := api.GetTheme("executive")
	require.NoError(t, err)
	return theme
}

var market = api.Chart{
	Type:       api.ChartColumn,
	Categories: []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"},
	Series: []api.Series{
		{Name: "시장 규모 (억 달러)", Values: []float64{650, 980, 1420, 1800, 2200, 2800, 3500}},
		{Name: "SDV 차량 (백만대)", Values: []float64{20, 45, 75, 120, 180, 240, 300}},
	},
}

func countRects(t *testing.T, content []byte) int {
	parsed, err := svg.ParseSvg(string(content), "chart", 1.0)
	require.NoError(t, err)
	count := 0
	var walk func([]svg.DrawingInstructionParser)
	walk = func(elements []svg.DrawingInstructionParser) {
		for _, e := range elements {
			switch el := e.(type) {
			case *svg.Rect:
				count++
			case *svg.Group:
				walk(el.Elements)
			}
		}
	}
	walk(parsed.Elements)
	for _, g := range parsed.Groups {
		walk(g.Elements)
	}
	return count
}

func TestColumnChart(t *testing.T) {
	result, err := Render(market, testTheme(t), Options{Width: 800, Height: 400})
	require.NoError(t, err)

	// background + 2 legend swatches + 14 bars
	assert.Equal(t, 1+2+14, countRects(t, result.SVG))
	assert.NotContains(t, string(result.SVG), "<text")

	texts := map[string]bool{}
	for _, l := range result.Labels {
		texts[l.Text] = true
	}
	for _, want := range []string{"2024", "2030", "시장 규모 (억 달러)", "0", "5000"} {
		assert.True(t, texts[want], "missing label %q", want)
	}
}

func TestZeroValuesDrawAxesOnly(t *testing.T) {
	c := api.Chart{Type: api.ChartColumn, Categories: []string{"a", "b"}, Series: []api.Series{{Name: "s", Values: []float64{0, 0}}}}
	result, err := Render(c, testTheme(t), Options{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, 1+1, countRects(t, result.SVG))
}

func TestEmbeddedText(t *testing.T) {
	result, err := Render(market, testTheme(t), Options{Width: 800, Height: 400, Text: true})
	require.NoError(t, err)
	assert.Contains(t, string(result.SVG), "시장 규모 (억 달러)")
}

func TestChartTypes(t *testing.T) {
	charts := map[string]api.Chart{
		"line": {Type: api.ChartLine, Categories: []string{"2025", "2026", "2027"}, Series: []api.Series{
			{Name: "한국", Values: []float64{40, 55, 70}},
			{Name: "중국", Values: []float64{50, 65, 80}},
		}},
		"pie": {Type: api.ChartPie, Categories: []string{"R&D", "인프라", "인력", "표준화", "기타"}, Series: []api.Series{
			{Name: "투자", Values: []float64{45, 25, 15, 8, 7}},
		}},
		"pie single slice": {Type: api.ChartPie, Categories: []string{"all", "none"}, Series: []api.Series{
			{Name: "s", Values: []float64{1, 0}},
		}},
		"radar": {Type: api.ChartRadar, Categories: []string{"표준화", "생태계", "보안", "성능", "호환성"}, Series: []api.Series{
			{Name: "중국", Values: []float64{9, 8, 7, 8, 6}},
			{Name: "AUTOSAR", Values: []float64{8, 9, 9, 7, 9}},
		}},
	}
	for name, c := range charts {
		t.Run(name, func(t *testing.T) {
			img, labels, err := Image(c, testTheme(t), 640, 360)
			require.NoError(t, err)
			assert.NotEmpty(t, labels)

			decoded, err := png.Decode(bytes.NewReader(img))
			require.NoError(t, err)
			assert.Equal(t, 640, decoded.Bounds().Dx())
			assert.Equal(t, 360, decoded.Bounds().Dy())
		})
	}
}

func TestPieLabelsArePercentages(t *testing.T) {
	c := api.Chart{Type: api.ChartPie, Categories: []string{"a", "b"}, Series: []api.Series{{Values: []float64{3, 1}}}}
	result, err := Render(c, testTheme(t), Options{Width: 400, Height: 400})
	require.NoError(t, err)
	var texts []string
	for _, l := range result.Labels {
		texts = append(texts, l.Text)
	}
	assert.Contains(t, texts, "75%")
	assert.Contains(t, texts, "25%")
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(market, testTheme(t), Options{})
	assert.Error(t, err)

	size := Options{Width: 200, Height: 100}
	tests := map[string]api.Chart{
		"unknown type":  {Type: "bubble", Categories: []string{"a"}, Series: []api.Series{{Values: []float64{1}}}},
		"no categories": {Type: api.ChartColumn, Series: []api.Series{{Name: "s"}}},
		"short series":  {Type: api.ChartLine, Categories: []string{"a", "b"}, Series: []api.Series{{Name: "s", Values: []float64{1}}}},
		"NaN":           {Type: api.ChartColumn, Categories: []string{"a"}, Series: []api.Series{{Name: "s", Values: []float64{math.NaN()}}}},
		"infinite":      {Type: api.ChartRadar, Categories: []string{"a", "b", "c"}, Series: []api.Series{{Name: "s", Values: []float64{1, math.Inf(1), 2}}}},
	}
	for name, c := range tests {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Render(c, testTheme(t), size)
				assert.Error(t, err)
			})
		})
	}
}

func TestNiceScale(t *testing.T) {
	tests := []struct {
		max      float64
		wantTop  float64
		wantStep float64
	}{
		{3500, 5000, 1000},
		{100, 100, 20},
		{9, 10, 2},
		{0, 5, 1},
		{0.3, 0.5, 0.1},
	}
	for _, tt := range tests {
		top, step := NiceScale(tt.max, 5)
		assert.InDelta(t, tt.wantTop, top, 1e-9, "max %v", tt.max)
		assert.InDelta(t, tt.wantStep, step, 1e-9, "max %v", tt.max)
	}
}
