package pdf

import (
	"math"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Table widget for rendering tables in PDF
type Table struct {
	Headers []string
	Rows    [][]string
	// Widths are relative column widths, equal when empty
	Widths      []float64
	HeaderColor string
	StripeColor string
}

// Draw implements the Widget interface
func (t Table) Draw(b *Builder) error {
	columns := len(t.Headers)
	if columns == 0 {
		return nil
	}
	widths := GridWidths(t.Widths, columns)
	height := lineHeight(SizeBody) + 1

	header := b.textProps(SizeBody, fontstyle.Bold, "#ffffff")
	header.Left, header.Top = 1, 1
	var style *props.Cell
	if t.HeaderColor != "" {
		style = &props.Cell{BackgroundColor: rgb(t.HeaderColor)}
	}
	b.AddRow(height, t.cols(widths, t.Headers, header, style)...)

	cell := b.textProps(SizeBody, fontstyle.Normal, "")
	cell.Left, cell.Top = 1, 1
	for i, r := range t.Rows {
		var stripe *props.Cell
		if i%2 == 1 && t.StripeColor != "" {
			stripe = &props.Cell{BackgroundColor: rgb(t.StripeColor)}
		}
		b.AddRow(height, t.cols(widths, r, cell, stripe)...)
	}
	return nil
}

func (t Table) cols(widths []int, values []string, p props.Text, style *props.Cell) []core.Col {
	var cols []core.Col
	for i, w := range widths {
		if w == 0 {
			continue
		}
		c := col.New(w)
		if i < len(values) {
			c = c.Add(text.New(values[i], p))
		}
		if style != nil {
			c = c.WithStyle(style)
		}
		cols = append(cols, c)
	}
	return cols
}

// GridWidths spreads the 12 grid columns over n table columns in proportion to
// the relative widths. Columns beyond the twelfth get no space.
func GridWidths(relative []float64, n int) []int {
	out := make([]int, n)
	if n > gridColumns {
		for i := 0; i < gridColumns; i++ {
			out[i] = 1
		}
		return out
	}
	if len(relative) != n {
		relative = make([]float64, n)
		for i := range relative {
			relative[i] = 1
		}
	}
	var total float64
	for _, w := range relative {
		total += w
	}

	used := 0
	for i, w := range relative {
		out[i] = max(1, int(math.Floor(w/total*gridColumns)))
		used += out[i]
	}
	// hand out the rounding remainder to the widest columns first
	for used < gridColumns {
		widest := 0
		for i := range relative {
			if relative[i]/float64(out[i]) > relative[widest]/float64(out[widest]) {
				widest = i
			}
		}
		out[widest]++
		used++
	}
	for used > gridColumns {
		widest := 0
		for i := range out {
			if out[i] > out[widest] {
				widest = i
			}
		}
		out[widest]--
		used--
	}
	return out
}
