package chart

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/flanksource/decks/api"
)

type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Label is a piece of chart text positioned in pixel coordinates of the chart.
// The rasterizer does not draw SVG text, so slides place labels as text shapes.
type Label struct {
	X      int
	Y      int
	Text   string
	Anchor Anchor
	Color  string
	Size   int
}

type Options struct {
	Width  int
	Height int
	// Text embeds labels as <text> elements, for SVG consumers that render them
	Text bool
}

type Result struct {
	SVG    []byte
	Labels []Label
	Width  int
	Height int
}

const (
	gridLines   = 5
	marginLeft  = 56
	marginRight = 16
	marginTop   = 36
	marginBot   = 36
	fontSize    = 12
	gridStyle   = "stroke:#d9d9d9;stroke-width:1"
	axisStyle   = "stroke:#595959;stroke-width:1"
)

type plot struct {
	canvas *svg.SVG
	opts   Options
	theme  api.Theme
	labels []Label
}

// Render draws a chart as SVG and collects its labels.
func Render(c api.Chart, theme api.Theme, opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(theme.Palette) == 0 {
		return nil, fmt.Errorf("theme %s has no palette", theme.Name)
	}

	var buf bytes.Buffer
	p := &plot{canvas: svg.New(&buf), opts: opts, theme: theme}
	p.canvas.Start(opts.Width, opts.Height)
	p.canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	switch c.Type {
	case api.ChartColumn:
		p.column(c)
	case api.ChartLine:
		p.line(c)
	case api.ChartPie:
		p.pie(c)
	case api.ChartRadar:
		p.radar(c)
	default:
		return nil, fmt.Errorf("unsupported chart type '%s'", c.Type)
	}

	p.canvas.End()
	return &Result{SVG: buf.Bytes(), Labels: p.labels, Width: opts.Width, Height: opts.Height}, nil
}

func (p *plot) text(x, y int, s string, anchor Anchor, color string) {
	if s == "" {
		return
	}
	p.labels = append(p.labels, Label{X: x, Y: y, Text: s, Anchor: anchor, Color: color, Size: fontSize})
	if p.opts.Text {
		p.canvas.Text(x, y, s, fmt.Sprintf("text-anchor:%s;font-size:%dpx;fill:%s;font-family:sans-serif", anchor, fontSize, color))
	}
}

// legend draws one swatch per name in a row above the plot area.
func (p *plot) legend(names []string) {
	x := marginLeft
	for i, name := range names {
		p.canvas.Rect(x, 10, 12, 12, "fill:"+p.theme.Series(i))
		p.text(x+16, 21, name, AnchorStart, p.theme.Text)
		x += 28 + len([]rune(name))*fontSize*3/4
	}
}

func (p *plot) seriesNames(c api.Chart) []string {
	names := make([]string, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	return names
}

// area is the plot rectangle below the legend.
func (p *plot) area() (x, y, w, h int) {
	return marginLeft, marginTop, p.opts.Width - marginLeft - marginRight, p.opts.Height - marginTop - marginBot
}

// axes draws the value grid and returns the scale top.
func (p *plot) axes(c api.Chart) float64 {
	x, y, w, h := p.area()
	top, step := NiceScale(maxValue(c), gridLines)
	for i := 0; i <= gridLines; i++ {
		gy := y + h - i*h/gridLines
		p.canvas.Line(x, gy, x+w, gy, gridStyle)
		p.text(x-6, gy+4, FormatValue(float64(i)*step), AnchorEnd, p.theme.Muted)
	}
	p.canvas.Line(x, y, x, y+h, axisStyle)
	p.canvas.Line(x, y+h, x+w, y+h, axisStyle)

	slot := w / len(c.Categories)
	for i, cat := range c.Categories {
		p.text(x+i*slot+slot/2, y+h+18, cat, AnchorMiddle, p.theme.Text)
	}
	return top
}

func (p *plot) column(c api.Chart) {
	p.legend(p.seriesNames(c))
	top := p.axes(c)
	x, y, w, h := p.area()

	slot := w / len(c.Categories)
	barW := max(1, slot*8/10/len(c.Series))
	for ci := range c.Categories {
		groupX := x + ci*slot + (slot-barW*len(c.Series))/2
		for si, series := range c.Series {
			bh := int(series.Values[ci] / top * float64(h))
			if bh <= 0 {
				continue
			}
			p.canvas.Rect(groupX+si*barW, y+h-bh, barW, bh, "fill:"+p.theme.Series(si))
		}
	}
}

func (p *plot) line(c api.Chart) {
	p.legend(p.seriesNames(c))
	top := p.axes(c)
	x, y, w, h := p.area()

	slot := w / len(c.Categories)
	for si, series := range c.Series {
		xs := make([]int, len(series.Values))
		ys := make([]int, len(series.Values))
		for i, v := range series.Values {
			xs[i] = x + i*slot + slot/2
			ys[i] = y + h - int(v/top*float64(h))
		}
		color := p.theme.Series(si)
		p.canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:3", color))
		for i := range xs {
			p.canvas.Circle(xs[i], ys[i], 4, "fill:"+color)
		}
	}
}

func (p *plot) pie(c api.Chart) {
	p.legend(c.Categories)
	values := c.Series[0].Values
	total := 0.0
	for _, v := range values {
		total += v
	}

	_, y, w, h := p.area()
	cx, cy := p.opts.Width/2, y+h/2
	r := min(w, h) / 2
	if total <= 0 {
		p.canvas.Circle(cx, cy, r, axisStyle+";fill:none")
		return
	}

	angle := -math.Pi / 2
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		color := p.theme.Series(i)
		if sweep >= 2*math.Pi-1e-9 {
			p.canvas.Circle(cx, cy, r, "fill:"+color)
		} else {
			x1, y1 := polar(cx, cy, float64(r), angle)
			x2, y2 := polar(cx, cy, float64(r), angle+sweep)
			large := 0
			if sweep > math.Pi {
				large = 1
			}
			p.canvas.Path(fmt.Sprintf("M%d,%d L%d,%d A%d,%d 0 %d,1 %d,%d Z", cx, cy, x1, y1, r, r, large, x2, y2),
				fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:2", color))
		}
		lx, ly := polar(cx, cy, float64(r)*0.65, angle+sweep/2)
		p.text(lx, ly+4, fmt.Sprintf("%.0f%%", v/total*100), AnchorMiddle, "#ffffff")
		angle += sweep
	}
}

func (p *plot) radar(c api.Chart) {
	p.legend(p.seriesNames(c))
	top, _ := NiceScale(maxValue(c), gridLines)
	_, y, w, h := p.area()
	cx, cy := p.opts.Width/2, y+h/2
	r := float64(min(w, h))/2 - 20
	n := len(c.Categories)
	angleAt := func(i int) float64 { return -math.Pi/2 + float64(i)*2*math.Pi/float64(n) }

	for level := 1; level <= gridLines; level++ {
		rr := r * float64(level) / gridLines
		xs, ys := make([]int, n), make([]int, n)
		for i := range c.Categories {
			xs[i], ys[i] = polar(cx, cy, rr, angleAt(i))
		}
		p.canvas.Polygon(xs, ys, gridStyle+";fill:none")
	}
	for i, cat := range c.Categories {
		ax, ay := polar(cx, cy, r, angleAt(i))
		p.canvas.Line(cx, cy, ax, ay, gridStyle)
		lx, ly := polar(cx, cy, r+14, angleAt(i))
		p.text(lx, ly+4, cat, AnchorMiddle, p.theme.Text)
	}
	for si, series := range c.Series {
		xs, ys := make([]int, n), make([]int, n)
		for i, v := range series.Values {
			xs[i], ys[i] = polar(cx, cy, r*v/top, angleAt(i))
		}
		p.canvas.Polygon(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:3", p.theme.Series(si)))
	}
}

func polar(cx, cy int, r, angle float64) (int, int) {
	return cx + int(math.Round(r*math.Cos(angle))), cy + int(math.Round(r*math.Sin(angle)))
}

func maxValue(c api.Chart) float64 {
	m := 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			m = math.Max(m, v)
		}
	}
	return m
}

// NiceScale rounds limit up to ticks multiples of a 1/2/2.5/5 step.
// An empty range scales to 0..ticks.
func NiceScale(limit float64, ticks int) (top, step float64) {
	if limit <= 0 {
		return float64(ticks), 1
	}
	raw := limit / float64(ticks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}
	return step * float64(ticks), step
}

func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
