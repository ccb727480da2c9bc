package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files [path...]",
	Short: "Process an explicit list of local JATS XML files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		items := itemsFromFiles(args)
		rt.runBatch(items)
		return nil
	},
}
