package main

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks"
	"github.com/flanksource/decks/cache"
	"github.com/flanksource/decks/formatters"
	"github.com/flanksource/decks/source"
	"github.com/spf13/cobra"
)

func newFromPDFCommand() *cobra.Command {
	var korean string
	var specs []string

	cmd := &cobra.Command{
		Use:   "from-pdf --korean <pdf> [--spec <pdf>...]",
		Short: "Build a review deck from the text of the standardization PDFs",
		Long: `Extracts the text of the Korean standardization report, splits it into
numbered sections and lays out one slide per section, followed by a preview of
each interface specification. Extractions are cached by file content.

Specifications that cannot be read are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := decks.Flags
			c, err := cache.New(flags.CacheOptions.Config())
			if err != nil {
				return err
			}
			defer c.Close()
			extractor := &source.Extractor{Cache: c}

			fmt.Println("Parsing Korean PDF...")
			doc, err := extractor.Extract(korean)
			if err != nil {
				return err
			}

			fmt.Println("Attempting to parse Chinese PDFs...")
			var docs []*source.Document
			for _, spec := range specs {
				d, err := extractor.Extract(spec)
				if err != nil {
					logger.Warnf("Error reading %s: %v", spec, err)
					continue
				}
				docs = append(docs, d)
			}

			fmt.Println("Creating PowerPoint presentation...")
			result, err := decks.BuildDeck(cmd.Context(), source.Deck(doc, docs), flags.BuildOptions.OutDir, flags.BuildOptions.Verify)
			if err != nil {
				return err
			}
			fmt.Printf("Presentation saved as %s\n", result.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&korean, "korean", "", "Korean SDV standardization report (PDF)")
	cmd.Flags().StringArrayVar(&specs, "spec", nil, "Interface specification (PDF), repeatable")
	_ = cmd.MarkFlagRequired("korean")
	return cmd
}

type cacheStats struct {
	Path string `json:"path" yaml:"path"`
	*cache.Stats
}

func (s cacheStats) Pretty() string {
	out := fmt.Sprintf("%s\n  entries: %d (%d pages, %d bytes)\n  hits: %d  misses: %d  writes: %d",
		s.Path, s.Entries, s.Pages, s.SizeBytes, s.Hits, s.Misses, s.Writes)
	if s.LastEntry != nil {
		out += fmt.Sprintf("\n  last entry: %s", s.LastEntry.Format("2006-01-02 15:04:05"))
	}
	return out
}

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the PDF extraction cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := decks.Flags.FormatOptions
			if err := options.ResolveFormat(); err != nil {
				return err
			}
			c, err := cache.New(decks.Flags.CacheOptions.Config())
			if err != nil {
				return err
			}
			defer c.Close()
			stats, err := c.Stats()
			if err != nil {
				return err
			}
			out, err := formatters.NewFormatManager(options).FormatValue(options.Format, cacheStats{Path: c.Path(), Stats: stats})
			if err != nil {
				return err
			}
			return write([]byte(out+"\n"), options)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached extraction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cache.New(decks.Flags.CacheOptions.Config())
			if err != nil {
				return err
			}
			defer c.Close()
			n, err := c.Clear()
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d cached extractions from %s\n", n, c.Path())
			return nil
		},
	})
	return cmd
}
