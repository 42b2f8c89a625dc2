package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fretwise"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fretwise",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fretwise version %s\n", strings.TrimSpace(fretwise.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
