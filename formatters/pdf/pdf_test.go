package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidPDF parses the document with pdfcpu and returns its page count.
func assertValidPDF(t *testing.T, data []byte) int {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "missing %PDF header")
	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.NoError(t, api.ValidateContext(ctx))
	return ctx.PageCount
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{R: 0, G: 112, B: 192, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuilderWidgets(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	require.NoError(t, b.Draw(
		Text{Content: "SDV Executive Briefing", Size: SizeTitle, Bold: true, Color: "#003366"},
		Text{Content: "line one\n\nline two", Indent: 4},
		Table{
			Headers:     []string{"Area", "2024", "2030"},
			Rows:        [][]string{{"Market", "100", "500"}, {"Jobs", "1"}},
			HeaderColor: "#0070c0",
			StripeColor: "#f2f2f2",
		},
		Image{PNG: testPNG(t), Caption: "Figure 1", Height: 30},
	))
	b.Space(5)

	data, err := b.Output()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, assertValidPDF(t, data), 1)
}

func TestLongContentPaginates(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	for i := 0; i < 120; i++ {
		require.NoError(t, b.Draw(Text{Content: "a line of handout text"}))
	}
	data, err := b.Output()
	require.NoError(t, err)
	assert.Greater(t, assertValidPDF(t, data), 1)
}

func TestImageWithoutContent(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	assert.Error(t, b.Draw(Image{Caption: "empty"}))
}

func TestMissingFont(t *testing.T) {
	_, err := NewBuilder(WithFont("/nonexistent/font.ttf"))
	assert.Error(t, err)
}

func TestGridWidths(t *testing.T) {
	cases := []struct {
		name     string
		relative []float64
		n        int
		want     []int
	}{
		{"equal", nil, 3, []int{4, 4, 4}},
		{"remainder", nil, 5, []int{3, 3, 2, 2, 2}},
		{"weighted", []float64{2, 1, 1}, 3, []int{6, 3, 3}},
		{"narrow column keeps one", []float64{20, 1}, 2, []int{11, 1}},
		{"too many columns", nil, 14, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GridWidths(tc.relative, tc.n)
			assert.Equal(t, tc.want, got)
		})
	}
}
