package main

import (
	"fmt"

	"github.com/flanksource/decks"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [deck...]",
		Short: "Build decks into --out-dir, every catalog deck when none are named",
		Example: `  decks build
  decks build executive technical --out-dir out --max-concurrent 2
  decks build --file my-deck.yaml
  decks build --publish-dir /srv/decks --gcs-bucket sdv-decks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := decks.Flags
			flags.ManagerOptions.HandleSignals = true

			found, err := flags.BuildOptions.Resolve(args)
			if err != nil {
				return err
			}
			results, code, err := decks.Build(cmd.Context(), found, flags)
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("%d of %d decks failed", len(found)-len(results), len(found))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&decks.Flags.BuildOptions.Verify, "verify", decks.Flags.BuildOptions.Verify,
		"Reopen every built presentation and check its slides")
	return cmd
}
