package decks

import (
	"context"
	"fmt"
	"path/filepath"

	flanksourceContext "github.com/flanksource/commons/context"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/catalog"
	"github.com/flanksource/decks/pptx"
	"github.com/flanksource/decks/publish"
	"github.com/flanksource/decks/shutdown"
	"github.com/flanksource/decks/task"
)

// Built is the outcome of building one deck
type Built struct {
	pptx.Result
}

func (b Built) Pretty() string {
	return fmt.Sprintf("%-20s %s (%d slides, %.1f KB)", b.Deck, b.Path, b.Slides, float64(b.Size)/1024)
}

// Catalog returns the catalog options the flags describe
func (o BuildOptions) Catalog() catalog.Options {
	return catalog.Options{Seed: o.Seed}
}

// Publisher returns the sinks configured by --publish-dir and --gcs-bucket
func (o BuildOptions) Publisher() *publish.Publisher {
	var sinks []publish.Sink
	if o.PublishDir != "" {
		sinks = append(sinks, publish.Dir{Path: o.PublishDir})
	}
	if o.GCSBucket != "" {
		sinks = append(sinks, &publish.GCS{Bucket: o.GCSBucket, Prefix: o.GCSPrefix})
	}
	return publish.New(sinks...)
}

// Resolve loads the decks to build: the --file definition when set,
// otherwise the named catalog decks, or the whole catalog when none are named
func (o BuildOptions) Resolve(names []string) ([]*api.Deck, error) {
	if o.File != "" {
		if len(names) > 0 {
			return nil, fmt.Errorf("deck names cannot be combined with --file")
		}
		deck, err := catalog.LoadFile(o.File, o.Catalog())
		if err != nil {
			return nil, err
		}
		return []*api.Deck{deck}, nil
	}

	if len(names) == 0 {
		names = catalog.Names()
	}
	var decks []*api.Deck
	for _, name := range names {
		deck, err := catalog.Load(name, o.Catalog())
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

// BuildDeck writes one deck under dir and, when verify is set, reopens it to
// check every slide made it
func BuildDeck(ctx context.Context, deck *api.Deck, dir string, verify bool) (*pptx.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, deck.Output)
	result, err := pptx.WriteFile(deck, path)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", deck.Name, err)
	}
	if !verify {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pptx.Verify(deck, path); err != nil {
		return nil, fmt.Errorf("failed to verify %s: %w", deck.Name, err)
	}
	return result, nil
}

// deckPriority schedules the decks with the most slides first
func deckPriority(deck *api.Deck) int {
	return -len(deck.Slides)
}

// Build writes every deck on the task manager's workers, then publishes the
// outputs when all of them succeeded. The returned exit code is 1 when any
// deck failed.
func Build(parent context.Context, decks []*api.Deck, opts AllFlags) ([]*pptx.Result, int, error) {
	outDir := opts.BuildOptions.OutDir
	shutdown.RemoveFiles(outDir, pptx.TempPattern)
	defer shutdown.Shutdown()

	mgr := task.NewManager(opts.ManagerOptions)
	mgr.SetInterruptHandler(shutdown.Shutdown)

	tasks := make([]*task.Task, 0, len(decks))
	for _, deck := range decks {
		deck := deck
		tasks = append(tasks, mgr.StartWithResult(deck.Name, func(ctx flanksourceContext.Context, t *task.Task) (interface{}, error) {
			if err := parent.Err(); err != nil {
				return nil, err
			}
			t.Debugf("writing %d slides to %s", len(deck.Slides), deck.Output)
			result, err := BuildDeck(ctx, deck, outDir, opts.BuildOptions.Verify)
			if err != nil {
				return nil, err
			}
			return Built{*result}, nil
		}, task.WithPriority(deckPriority(deck))))
	}
	stop := context.AfterFunc(parent, mgr.CancelAll)
	code := mgr.Wait()
	stop()

	var results []*pptx.Result
	for _, t := range tasks {
		if built, ok := t.Result().(Built); ok {
			result := built.Result
			results = append(results, &result)
		}
	}
	logger.Infof("built %d of %d decks into %s", len(results), len(decks), outDir)

	publisher := opts.BuildOptions.Publisher()
	if code != 0 || !publisher.Enabled() {
		return results, code, nil
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warnf("%v", err)
		}
	}()
	manifest, err := publisher.Publish(parent, results)
	if err != nil {
		return results, 1, err
	}
	logger.Infof("published build %s", manifest.BuildID)
	return results, code, nil
}
