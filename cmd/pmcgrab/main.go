// Package main provides the pmcgrab CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagOutputDir   string
	flagWorkers     int
	flagFormat      string
	flagVerbose     bool
	flagQuiet       bool
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmcgrab",
	Short: "Fetch and normalize PMC articles into structured JSON",
	Long: `pmcgrab fetches PubMed Central articles by PMCID, PMID, or DOI (or
reads local JATS XML), parses and cleans the markup, and emits one
structured JSON document per article.

Input is selected by exactly one subcommand (pmcids, pmids, dois,
id-file, directory, files). Output defaults to one file per article
under --output-dir; --format stream writes a single JSON-lines file
instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "./pmc_output", "directory to write per-item artifacts")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 10, "number of concurrent workers")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "per-item", "output format: per-item or stream")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the run's duration")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case flagVerbose:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func exitWithError(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
