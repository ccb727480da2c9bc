package main

import (
	"github.com/spf13/cobra"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/batch"
)

func init() {
	rootCmd.AddCommand(pmidsCmd)
}

var pmidsCmd = &cobra.Command{
	Use:   "pmids [pmid...]",
	Short: "Fetch articles by PMID (converted to PMCID via the NCBI ID Converter)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := rt.itemsFromTokens(cmd.Context(), args, batch.ModePMIDs)
		rt.runBatch(items)
		return nil
	},
}
