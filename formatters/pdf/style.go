package pdf

import (
	"github.com/flanksource/decks/api/tailwind"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Sizes in points; row heights are derived from them in mm.
const (
	SizeTitle   = 18.0
	SizeHeading = 13.0
	SizeBody    = 10.0
	SizeCaption = 8.0

	gridColumns = 12
)

// rgb converts a colour reference ("#rrggbb", "rgb(..)" or a tailwind name)
// to Maroto color
func rgb(ref string) *props.Color {
	r, g, b := tailwind.RGB(ref)
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}

// lineHeight is the row height in mm needed for one line at size points.
func lineHeight(size float64) float64 {
	return size*0.3528*1.3 + 1
}
