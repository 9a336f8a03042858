package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks"
	"github.com/flanksource/decks/catalog"
	"github.com/flanksource/decks/formatters"
	"github.com/flanksource/decks/pptx"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <pptx>",
		Short: "Print the title and text previews of every slide of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := decks.Flags.FormatOptions
			if err := options.ResolveFormat(); err != nil {
				return err
			}
			inspection, err := pptx.Inspect(args[0])
			if err != nil {
				return err
			}
			out, err := formatters.NewFormatManager(options).FormatValue(options.Format, inspection)
			if err != nil {
				return err
			}
			return write([]byte(out), options)
		},
	}
}

func newReviseCommand() *cobra.Command {
	var legacy string
	var force bool

	cmd := &cobra.Command{
		Use:   "revise",
		Short: "Analyze the legacy KETI presentation and build its revision",
		Long: `Prints the slides of the legacy KETI presentation, then builds the revised
deck. Nothing is built when the legacy presentation is missing, unless --force
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := decks.Flags
			deck, err := catalog.Load("keti-revision", flags.BuildOptions.Catalog())
			if err != nil {
				return err
			}
			if legacy == "" {
				legacy = deck.Legacy
			}

			fmt.Println("Analyzing existing presentation...")
			if _, err := os.Stat(legacy); err != nil {
				fmt.Printf("File not found: %s\n", legacy)
				if !force {
					return nil
				}
			} else {
				inspection, err := pptx.Inspect(legacy)
				if err != nil {
					return err
				}
				fmt.Print(inspection.Pretty())
			}

			fmt.Println("\nCreating modified presentation...")
			result, err := decks.BuildDeck(cmd.Context(), deck, flags.BuildOptions.OutDir, flags.BuildOptions.Verify)
			if err != nil {
				return err
			}
			fmt.Printf("\nModified presentation saved as: %s\n", result.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&legacy, "legacy", "", "Legacy presentation to analyze (default from the keti-revision deck)")
	cmd.Flags().BoolVar(&force, "force", false, "Build the revision even when the legacy presentation is missing")
	return cmd
}

func newRenderCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "render <pptx>",
		Short: "Export a presentation to PDF with a headless LibreOffice",
		Long: `Converts a presentation to PDF by running LibreOffice (soffice or
libreoffice on PATH) headless with a private profile. The conversion is bounded
by --timeout.`,
		Example: `  decks render out/SDV_Executive_Presentation_Premium.pptx
  decks render out/SDV_Executive_Presentation_Premium.pptx --dir pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if dir == "" {
				dir = filepath.Dir(path)
			}

			ctx := cmd.Context()
			if timeout := decks.Flags.ManagerOptions.TaskTimeout; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			out, err := pptx.ExportPDF(ctx, path, dir)
			if err != nil {
				return err
			}
			logger.Infof("exported %s", out)
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default: next to the presentation)")
	return cmd
}
