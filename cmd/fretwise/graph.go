package main

import (
	"fmt"

	"github.com/aretw0/fretwise/internal/cli"
	"github.com/aretw0/fretwise/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph CHORD CHORD [CHORD...]",
	Short: "Export the transition graph as Mermaid",
	Long: `Ranks the chords and outputs a Mermaid flowchart (graph LR) of the best
transitions of each pair, highlighting the picked shapes.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		perPair, _ := cmd.Flags().GetInt("per-pair")

		app, err := openApp(cmd.Context(), cmd, cli.BuildOptions{})
		if err != nil {
			return err
		}
		defer app.Close()

		rec, err := app.Engine.Recommend(cmd.Context(), cli.ParseChords(args))
		if err != nil {
			return err
		}

		overlay := &graph.GraphOverlay{}
		for _, v := range rec.Picked {
			overlay.Picked = append(overlay.Picked, v.Name)
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(rec.Ranked, overlay, graph.Options{PerPair: perPair}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("per-pair", 1, "Transitions drawn for each pair")
}
