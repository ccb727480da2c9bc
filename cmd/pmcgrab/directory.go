package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(directoryCmd)
}

var directoryCmd = &cobra.Command{
	Use:   "directory [path]",
	Short: "Process every *.xml file in a local directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := itemsFromDirectory(args[0])
		rt.runBatch(items)
		return nil
	},
}
