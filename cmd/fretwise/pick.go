package main

import (
	"github.com/aretw0/fretwise/internal/cli"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:     "pick CHORD [CHORD...]",
	Aliases: []string{"recommend"},
	Short:   "Pick one shape per chord",
	Long: `Ranks the transitions between the chords and keeps, for each chord, the shape
that moves most cheaply to the shapes picked for the others. The choice is
greedy: it is not guaranteed to be the best sequence over the whole progression.`,
	Example: `  fretwise pick A D G
  fretwise pick C Am F G --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		top, _ := cmd.Flags().GetInt("top")

		app, err := openApp(cmd.Context(), cmd, cli.BuildOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		rec, err := app.Engine.Recommend(cmd.Context(), cli.ParseChords(args))
		if err != nil {
			return err
		}
		return cli.WriteRecommendation(cmd.OutOrStdout(), rec, format, top)
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or markdown")
	pickCmd.Flags().IntP("top", "n", 1, "Transitions per pair in the markdown report (0 shows all)")
}
