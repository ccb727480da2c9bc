package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(idFileCmd)
}

var idFileCmd = &cobra.Command{
	Use:   "id-file [path]",
	Short: "Fetch articles listed one identifier per line in a text file",
	Long:  `Each non-blank line may be a PMCID, PMID, or DOI; type is auto-detected (spec.md §6).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := rt.itemsFromIDFile(cmd.Context(), args[0])
		rt.runBatch(items)
		return nil
	},
}
