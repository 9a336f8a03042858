package pptx

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/api"
)

// Writer lays out the slides of one deck into a presentation.
type Writer struct {
	deck  *api.Deck
	theme api.Theme
	pres  *ppt.Presentation
	count int
}

// Result describes a written presentation file.
type Result struct {
	Deck   string `json:"deck"`
	Path   string `json:"path"`
	Slides int    `json:"slides"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

func NewWriter(deck *api.Deck) (*Writer, error) {
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	theme, err := api.GetTheme(deck.Theme)
	if err != nil {
		return nil, err
	}
	return &Writer{deck: deck, theme: theme}, nil
}

// Presentation builds every slide and returns the in-memory presentation.
func (w *Writer) Presentation() (*ppt.Presentation, error) {
	if w.pres != nil {
		return w.pres, nil
	}
	w.pres = ppt.New()
	w.pres.GetDocumentProperties().Title = w.deck.Title
	w.pres.GetDocumentProperties().Creator = w.deck.Author
	if w.deck.Author == "" {
		w.pres.GetDocumentProperties().Creator = "decks"
	}

	for i := range w.deck.Slides {
		s := &w.deck.Slides[i]
		if err := w.addSlide(s); err != nil {
			return nil, fmt.Errorf("failed to render slide %d (%s): %w", i+1, s.Title, err)
		}
	}
	return w.pres, nil
}

func (w *Writer) newSlide() *ppt.Slide {
	w.count++
	if w.count == 1 {
		return w.pres.GetActiveSlide()
	}
	return w.pres.CreateSlide()
}

func (w *Writer) addSlide(s *api.Slide) error {
	slide := w.newSlide()
	var err error
	switch s.Kind {
	case api.KindTitle:
		w.titleSlide(slide, s)
	case api.KindSection:
		w.sectionSlide(slide, s)
	case api.KindAgenda:
		w.agendaSlide(slide, s)
	case api.KindBullets:
		w.bulletsSlide(slide, s)
	case api.KindText:
		w.textSlide(slide, s)
	case api.KindTable:
		w.tableSlide(slide, s)
	case api.KindChart:
		err = w.chartSlide(slide, s)
	case api.KindTimeline:
		w.timelineSlide(slide, s)
	case api.KindCards:
		w.cardsSlide(slide, s)
	case api.KindLayers:
		w.layersSlide(slide, s)
	case api.KindGantt:
		w.ganttSlide(slide, s)
	case api.KindClosing:
		w.closingSlide(slide, s)
	default:
		err = fmt.Errorf("unsupported slide kind %s", s.Kind)
	}
	if err != nil {
		return err
	}
	if w.deck.SlideNumbers {
		w.slideNumber(slide)
	}
	return nil
}

// Write serializes the deck once into out.
func Write(deck *api.Deck, out io.Writer) error {
	w, err := NewWriter(deck)
	if err != nil {
		return err
	}
	pres, err := w.Presentation()
	if err != nil {
		return err
	}

	pw, err := ppt.NewWriter(pres, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("failed to create PPT writer: %w", err)
	}
	if err := pw.(*ppt.PPTXWriter).WriteTo(out); err != nil {
		return fmt.Errorf("failed to save PPT: %w", err)
	}
	return nil
}

// TempPattern matches the files WriteFile stages presentations in.
const TempPattern = ".decks-*.pptx"

// WriteFile writes the deck to path through a temporary file in the same
// directory, so a failed build never leaves a partial presentation behind.
func WriteFile(deck *api.Deck, path string) (*Result, error) {
	var buf bytes.Buffer
	if err := Write(deck, &buf); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to move presentation into place: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	logger.Debugf("wrote %s (%d slides, %d bytes)", path, len(deck.Slides), buf.Len())
	return &Result{
		Deck:   deck.Name,
		Path:   path,
		Slides: len(deck.Slides),
		Size:   int64(buf.Len()),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}
