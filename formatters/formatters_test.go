package formatters

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/flanksource/decks/api"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sample() *api.Deck {
	return &api.Deck{
		Name:   "sample",
		Title:  "SDV 표준화 동향",
		Output: "sample.pptx",
		Slides: []api.Slide{
			{Kind: api.KindTitle, Title: "SDV 표준화 동향", Subtitle: "중국 | 독일"},
			{Kind: api.KindBullets, Title: "핵심 메시지", Bullets: []api.Bullet{
				{Text: "SOA 전환"},
				{Text: "OTA", Sub: []string{"FOTA", "SOTA"}},
			}},
			{Kind: api.KindTable, Title: "시장 규모", Table: &api.Table{
				Headers: []string{"항목", "2024", "2030"},
				Rows:    [][]string{{"Global", "100", "500"}, {"China", "40", "220"}, {"Korea", "10"}},
			}, Insight: "5x growth"},
			{Kind: api.KindChart, Title: "Adoption", Chart: &api.Chart{
				Type:       api.ChartColumn,
				Categories: []string{"2024", "2030"},
				Series:     []api.Series{{Name: "SDV", Values: []float64{10, 95}}},
			}},
			{Kind: api.KindText, Title: "API", Mono: true, Text: "{\n  \"method\": \"setPowerMode\"\n}"},
		},
	}
}

func format(t *testing.T, format string) []byte {
	t.Helper()
	out, err := NewFormatManager(FormatOptions{NoColor: true}).Format(format, sample())
	require.NoError(t, err)
	return out
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		name    string
		opts    FormatOptions
		want    string
		wantErr bool
	}{
		{name: "default", opts: FormatOptions{}, want: "pretty"},
		{name: "format flag", opts: FormatOptions{Format: "csv"}, want: "csv"},
		{name: "boolean flag wins", opts: FormatOptions{Format: "pretty", XLSX: true}, want: "xlsx"},
		{name: "alias", opts: FormatOptions{Format: "md"}, want: "markdown"},
		{name: "yml alias", opts: FormatOptions{Format: "yml"}, want: "yaml"},
		{name: "two flags", opts: FormatOptions{JSON: true, PDF: true}, wantErr: true},
		{name: "unknown", opts: FormatOptions{Format: "docx"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.ResolveFormat()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.opts.Format)
		})
	}
	assert.True(t, FormatOptions{Format: "pdf"}.IsBinary())
	assert.False(t, FormatOptions{Format: "html"}.IsBinary())
}

func TestJSONAndYAML(t *testing.T) {
	var outline api.Outline
	require.NoError(t, json.Unmarshal(format(t, "json"), &outline))
	require.Len(t, outline.Slides, 5)
	assert.Equal(t, []string{"SOA 전환", "OTA", "FOTA", "SOTA"}, outline.Slides[1].Body)

	var fromYAML api.Outline
	require.NoError(t, yaml.Unmarshal(format(t, "yaml"), &fromYAML))
	assert.Equal(t, outline, fromYAML)
}

func TestCSV(t *testing.T) {
	records, err := csv.NewReader(bytes.NewReader(format(t, "csv"))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"slide", "kind", "title", "text"}, records[0])
	assert.Equal(t, []string{"1", "title", "SDV 표준화 동향", "중국 | 독일"}, records[1])
	assert.Equal(t, []string{"2", "bullets", "핵심 메시지", "SOA 전환"}, records[2])
}

func TestMarkdown(t *testing.T) {
	md := string(format(t, "markdown"))
	assert.Contains(t, md, "# SDV 표준화 동향\n")
	assert.Contains(t, md, "## 3. 시장 규모 `table`")
	assert.Contains(t, md, "| 항목 | 2024 | 2030 |")
	assert.Contains(t, md, "| Korea | 10 |  |")
	assert.Contains(t, md, "> 5x growth")
	assert.Contains(t, md, `- 중국 \| 독일`)
	assert.Contains(t, md, "```\n{\n  \"method\": \"setPowerMode\"\n}\n```")
}

func TestHTML(t *testing.T) {
	out := string(format(t, "html"))
	assert.Contains(t, out, "<title>SDV 표준화 동향</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>항목</th>")
	assert.Contains(t, out, "<h2>")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestPretty(t *testing.T) {
	out := string(format(t, "pretty"))
	assert.Contains(t, out, "SDV 표준화 동향  sample.pptx, 5 slides")
	assert.Contains(t, out, "  3 table    시장 규모\n")
	assert.Contains(t, out, "Global")
}

func TestPrettyTableAlignsWideRunes(t *testing.T) {
	f := NewPrettyFormatter()
	f.NoColor = true
	out := f.Table([][]string{{"Name", "Slides"}, {"종합분석", "28"}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "│ 종합분석 │ 28     │", lines[3])
	assert.Equal(t, "┌──────────┬────────┐", lines[0])
}

func TestXLSX(t *testing.T) {
	book, err := excelize.OpenReader(bytes.NewReader(format(t, "xlsx")))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Outline", "Slide 3"}, book.GetSheetList())

	rows, err := book.GetRows("Outline")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Slide", "Kind", "Title", "Text"}, rows[0])
	assert.Equal(t, "SOA 전환\nOTA\nFOTA\nSOTA", rows[2][3])

	table, err := book.GetRows("Slide 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"항목", "2024", "2030"}, table[0])
	assert.Equal(t, []string{"Korea", "10"}, table[3])
}

func TestPDF(t *testing.T) {
	out := format(t, "pdf")
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	ctx, err := pdfapi.ReadContext(bytes.NewReader(out), model.NewDefaultConfiguration())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ctx.PageCount, 1)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := NewFormatManager(FormatOptions{}).Format("docx", sample())
	assert.Error(t, err)
}

type prettyList []string

func (p prettyList) Pretty() string { return strings.Join(p, ";") }

func TestFormatValue(t *testing.T) {
	m := NewFormatManager(FormatOptions{NoColor: true})

	out, err := m.FormatValue("pretty", prettyList{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a;b", out)

	out, err = m.FormatValue("json", prettyList{"a"})
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, out)

	_, err = m.FormatValue("xlsx", prettyList{"a"})
	assert.Error(t, err)
}
