package main

import (
	"fmt"

	"github.com/aretw0/fretwise/internal/cli"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed [FILE]",
	Short: "Load chord shapes into the configured backend",
	Long: `Reads a JSON or YAML seed file mapping each chord root to its shapes and
writes them to the backend in batches. Without FILE the built-in sample
library is loaded. On Redis, concurrent seed runs of the same file are serialized.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context(), cmd, cli.BuildOptions{SkipSeed: true})
		if err != nil {
			return err
		}
		defer app.Close()

		if size, _ := cmd.Flags().GetInt("batch-size"); size > 0 {
			app.Config.Seed.BatchSize = size
		}

		path := app.Config.Seed.Path
		if len(args) > 0 {
			path = args[0]
		}

		n, err := app.Seed(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d variations into %s\n", n, app.Config.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Int("batch-size", 0, "Variations written per batch (overrides seed.batch_size)")
}
