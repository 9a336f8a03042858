package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/flanksource/decks/api"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// PNG rasterizes SVG bytes at the given pixel size.
func PNG(svgBytes []byte, width, height int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgBytes), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return pngBuf.Bytes(), nil
}

// Image renders a chart without SVG text and rasterizes it. The labels are
// returned for placement on top of the image.
func Image(c api.Chart, theme api.Theme, width, height int) ([]byte, []Label, error) {
	result, err := Render(c, theme, Options{Width: width, Height: height})
	if err != nil {
		return nil, nil, err
	}
	img, err := PNG(result.SVG, width, height)
	if err != nil {
		return nil, nil, err
	}
	return img, result.Labels, nil
}
