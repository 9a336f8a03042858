package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/pptx"
	"github.com/google/uuid"
)

const (
	ManifestName     = "manifest.json"
	PresentationMIME = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Sink receives published files.
type Sink interface {
	// Name identifies the sink in logs
	Name() string
	// Upload stores rc under fileName and returns where it ended up
	Upload(ctx context.Context, rc io.ReadCloser, fileName, contentType string) (string, error)
}

// Item is one presentation of a build.
type Item struct {
	Deck      string   `json:"deck"`
	File      string   `json:"file"`
	Slides    int      `json:"slides"`
	Size      int64    `json:"size"`
	SHA256    string   `json:"sha256"`
	Locations []string `json:"locations,omitempty"`
}

// Manifest lists what a build published.
type Manifest struct {
	BuildID   string    `json:"buildId"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []Item    `json:"items"`
}

type Publisher struct {
	sinks []Sink
}

func New(sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks}
}

// Enabled reports whether any sink is configured.
func (p *Publisher) Enabled() bool {
	return p != nil && len(p.sinks) > 0
}

// Close releases the sinks holding connections
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	for _, sink := range p.sinks {
		if closer, ok := sink.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close %s: %w", sink.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Publish uploads every presentation to every sink and writes the manifest
// last, so a manifest only exists for builds whose files all made it.
func (p *Publisher) Publish(ctx context.Context, results []*pptx.Result) (*Manifest, error) {
	manifest := &Manifest{
		BuildID:   uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	var errs []error
	for _, result := range results {
		item := Item{
			Deck:   result.Deck,
			File:   filepath.Base(result.Path),
			Slides: result.Slides,
			Size:   result.Size,
			SHA256: result.SHA256,
		}
		for _, sink := range p.sinks {
			f, err := os.Open(result.Path)
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to open %s: %w", result.Path, err))
				break
			}
			location, err := sink.Upload(ctx, f, item.File, PresentationMIME)
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to publish %s to %s: %w", item.File, sink.Name(), err))
				continue
			}
			logger.Infof("published %s to %s", item.File, location)
			item.Locations = append(item.Locations, location)
		}
		manifest.Items = append(manifest.Items, item)
	}
	if err := errors.Join(errs...); err != nil {
		return manifest, err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return manifest, fmt.Errorf("failed to encode manifest: %w", err)
	}
	for _, sink := range p.sinks {
		if _, err := sink.Upload(ctx, io.NopCloser(bytes.NewReader(data)), ManifestName, "application/json"); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish manifest to %s: %w", sink.Name(), err))
		}
	}
	return manifest, errors.Join(errs...)
}
