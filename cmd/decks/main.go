package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks"
	"github.com/flanksource/decks/api"
	"github.com/flanksource/decks/catalog"
	"github.com/flanksource/decks/formatters"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "decks",
		Short: "Build the SDV standardization presentations",
		Long: `decks builds PowerPoint presentations about Software-Defined Vehicle
standardization from a catalog of deck definitions, a YAML file of your own, or
the text of the source PDF documents.`,
		Example: `  decks list
  decks build --out-dir out executive technical
  decks outline ultimate --format xlsx -o ultimate.xlsx
  decks inspect out/SDV_기술심화_분석.pptx
  decks from-pdf --korean report.pdf --spec part1.pdf --spec part2.pdf`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			decks.Flags.UseFlags()
		},
	}

	decks.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newListCommand(),
		newBuildCommand(),
		newOutlineCommand(),
		newInspectCommand(),
		newReviseCommand(),
		newFromPDFCommand(),
		newRenderCommand(),
		newCacheCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("decks %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the decks of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := decks.Flags.FormatOptions
			if err := options.ResolveFormat(); err != nil {
				return err
			}
			entries, err := catalog.List(decks.Flags.BuildOptions.Catalog())
			if err != nil {
				return err
			}

			fm := formatters.NewFormatManager(options)
			if options.Format != "pretty" {
				out, err := fm.FormatValue(options.Format, entries)
				if err != nil {
					return err
				}
				return write([]byte(out), options)
			}

			rows := [][]string{{"NAME", "SLIDES", "OUTPUT", "TITLE"}}
			for _, e := range entries {
				name := e.Name
				if e.Generated {
					name += " *"
				}
				rows = append(rows, []string{name, fmt.Sprint(e.Slides), e.Output, e.Title})
			}
			return write([]byte(fm.Pretty().Table(rows)+"\n"), options)
		},
	}
}

// loadDeck returns the named catalog deck, or the --file definition when no
// name is given
func loadDeck(args []string) (*api.Deck, error) {
	opts := decks.Flags.BuildOptions
	if len(args) == 0 && opts.File == "" {
		return nil, errors.New("requires a deck name or --file")
	}
	found, err := opts.Resolve(args)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

func newOutlineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outline [deck]",
		Short: "Print the outline of a deck without building it",
		Long: `Print every slide of a deck with its kind, title and texts.

Formats: pretty (default), json, yaml, csv, markdown, html, xlsx and pdf.
xlsx and pdf are binary and need --output unless stdout is redirected.`,
		Example: `  decks outline executive
  decks outline ultimate --markdown
  decks outline professional --pdf --pdf-font NanumGothic.ttf -o professional.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := decks.Flags.FormatOptions
			if err := options.ResolveFormat(); err != nil {
				return err
			}
			deck, err := loadDeck(args)
			if err != nil {
				return err
			}
			out, err := formatters.NewFormatManager(options).Format(options.Format, deck)
			if err != nil {
				return err
			}
			return write(out, options)
		},
	}
}

// write sends formatted output to --output or stdout, refusing to print
// binary formats on a terminal
func write(out []byte, options formatters.FormatOptions) error {
	if options.Output == "" {
		if options.IsBinary() && term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write %s output to a terminal, use --output", options.Format)
		}
		_, err := os.Stdout.Write(out)
		return err
	}

	if dir := filepath.Dir(options.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(options.Output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", options.Output, err)
	}
	logger.Infof("wrote %s", options.Output)
	return nil
}
