package main

import (
	"github.com/aretw0/fretwise/internal/cli"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank CHORD CHORD [CHORD...]",
	Short: "Rank the transitions between every pair of chords",
	Long: `Scores every variation of each chord against every variation of the others
and prints each pair's transitions from the cheapest to the most costly.`,
	Example: `  fretwise rank A D G
  fretwise rank A,D,G --top 3 --format markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		top, _ := cmd.Flags().GetInt("top")

		app, err := openApp(cmd.Context(), cmd, cli.BuildOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		set, err := app.Engine.Rank(cmd.Context(), cli.ParseChords(args))
		if err != nil {
			return err
		}
		return cli.WriteRanking(cmd.OutOrStdout(), set, format, top)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or markdown")
	rankCmd.Flags().IntP("top", "n", 0, "Transitions to show per pair (0 shows all)")
}
