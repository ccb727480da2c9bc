package main

import (
	"github.com/spf13/cobra"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/batch"
)

func init() {
	rootCmd.AddCommand(pmcidsCmd)
}

var pmcidsCmd = &cobra.Command{
	Use:   "pmcids [pmcid...]",
	Short: "Fetch articles by PMCID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := rt.itemsFromTokens(cmd.Context(), args, batch.ModePMCIDs)
		rt.runBatch(items)
		return nil
	},
}
