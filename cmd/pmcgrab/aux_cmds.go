package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/auxsvc"
)

func init() {
	rootCmd.AddCommand(convertIDCmd, biocCmd, oaCmd, oaiPMHCmd, citeCmd)
}

var convertIDCmd = &cobra.Command{
	Use:   "convert-id [id...]",
	Short: "Resolve PMIDs or DOIs to canonical PMCIDs via the NCBI ID Converter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		resolved, err := rt.idconvert.ResolveBatch(cmd.Context(), args)
		if err != nil {
			exitWithError(ExitError, "resolving ids: %v", err)
		}
		out := make(map[string]string, len(args))
		for i, a := range args {
			out[a] = resolved[i]
		}
		return outputJSON(out)
	},
}

var biocCmd = &cobra.Command{
	Use:   "bioc [pmcid]",
	Short: "Fetch the BioC JSON document for an Open Access PMC article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		c := aux.NewClient(rt.http)
		data, err := c.FetchBioC(cmd.Context(), args[0])
		if err != nil {
			exitWithError(ExitError, "fetching BioC document: %v", err)
		}
		os.Stdout.Write(data)
		return nil
	},
}

var oaIDType string

var oaCmd = &cobra.Command{
	Use:   "oa [id]",
	Short: "Look up Open Access availability and download links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		c := aux.NewClient(rt.http)
		rec, err := c.FetchOA(cmd.Context(), oaIDType, args[0])
		if err != nil {
			exitWithError(ExitError, "querying OA service: %v", err)
		}
		if rec == nil {
			exitWithError(ExitError, "no OA record for %q", args[0])
		}
		return outputJSON(rec)
	},
}

func init() {
	oaCmd.Flags().StringVar(&oaIDType, "id-type", "pmcid", "identifier type: pmcid, pmid, or doi")
}

var (
	oaiVerb string
	oaiSet  string
	oaiFrom string
	oaiTo   string
)

var oaiPMHCmd = &cobra.Command{
	Use:   "oai-pmh",
	Short: "Harvest article metadata via OAI-PMH (ListRecords, ListIdentifiers, ListSets)",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		c := aux.NewClient(rt.http)
		ctx := cmd.Context()
		params := aux.HarvestParams{From: oaiFrom, Until: oaiTo, Set: oaiSet}

		switch oaiVerb {
		case "ListSets":
			sets, err := c.ListSets(ctx)
			if err != nil {
				exitWithError(ExitError, "listing sets: %v", err)
			}
			return outputJSON(sets)
		case "ListIdentifiers":
			return harvestIdentifiers(ctx, c, params)
		default:
			return harvestRecords(ctx, c, params)
		}
	},
}

func harvestIdentifiers(ctx context.Context, c *aux.Client, params aux.HarvestParams) error {
	var ids []string
	for id, err := range c.ListIdentifiers(ctx, params) {
		if err != nil {
			exitWithError(ExitError, "harvesting identifiers: %v", err)
		}
		ids = append(ids, id)
	}
	return outputJSON(ids)
}

func harvestRecords(ctx context.Context, c *aux.Client, params aux.HarvestParams) error {
	var ids []string
	for rec, err := range c.ListRecords(ctx, params) {
		if err != nil {
			exitWithError(ExitError, "harvesting records: %v", err)
		}
		if hdr := rec.Find("identifier"); hdr != nil {
			ids = append(ids, hdr.InnerText())
		}
	}
	return outputJSON(ids)
}

func init() {
	oaiPMHCmd.Flags().StringVar(&oaiVerb, "verb", "ListRecords", "OAI-PMH verb: ListRecords, ListIdentifiers, or ListSets")
	oaiPMHCmd.Flags().StringVar(&oaiSet, "set", "", "restrict the harvest to a set")
	oaiPMHCmd.Flags().StringVar(&oaiFrom, "from", "", "harvest window start (YYYY-MM-DD)")
	oaiPMHCmd.Flags().StringVar(&oaiTo, "until", "", "harvest window end (YYYY-MM-DD)")
}

var citeFormat string

var citeCmd = &cobra.Command{
	Use:   "cite [pmcid]",
	Short: "Export a formatted citation for a PMC article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := newRuntime()
		c := aux.NewClient(rt.http)
		data, err := c.ExportCitation(cmd.Context(), args[0], citeFormat)
		if err != nil {
			exitWithError(ExitError, "exporting citation: %v", err)
		}
		os.Stdout.Write(data)
		return nil
	},
}

func init() {
	citeCmd.Flags().StringVar(&citeFormat, "format", aux.FormatMEDLINE, "citation format: medline, bibtex, ris, nbib, or pubmed")
}
