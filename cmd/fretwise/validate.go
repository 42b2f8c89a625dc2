package main

import (
	"fmt"
	"io"

	"github.com/aretw0/fretwise/pkg/seed"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a seed file without writing it",
	Long:  `Parses a JSON or YAML seed file and reports the first invalid shape, if any.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidate(cmd.OutOrStdout(), args[0]); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, path string) error {
	entries, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	vs, err := seed.Variations(entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Seed file is valid: %d chords, %d variations\n", len(entries), len(vs))
	return nil
}
