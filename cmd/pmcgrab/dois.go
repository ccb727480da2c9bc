package main

import (
	"github.com/spf13/cobra"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/batch"
)

func init() {
	rootCmd.AddCommand(doisCmd)
}

var doisCmd = &cobra.Command{
	Use:   "dois [doi...]",
	Short: "Fetch articles by DOI (converted to PMCID via the NCBI ID Converter)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := rt.itemsFromTokens(cmd.Context(), args, batch.ModeDOIs)
		rt.runBatch(items)
		return nil
	},
}
