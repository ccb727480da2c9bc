package main

import (
	"encoding/json"
	"os"
)

// outputJSON writes v as indented JSON to stdout, the same encoder
// configuration the teacher's cmd/bip uses for agent-consumable output.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SummaryResponse is the CLI's JSON rendering of a batch run (spec.md
// §6 "Summary artifact").
type SummaryResponse struct {
	TotalRequested int                  `json:"total_requested"`
	Successful     int                  `json:"successful"`
	Failed         int                  `json:"failed"`
	ErrorCounts    map[string]int       `json:"error_counts"`
	ElapsedSeconds float64              `json:"elapsed_seconds"`
	FailedItems    []FailedItemResponse `json:"failed_items"`
}

// FailedItemResponse is one row of SummaryResponse.FailedItems.
type FailedItemResponse struct {
	ID            string `json:"id"`
	LastErrorKind string `json:"last_error_kind"`
	Attempts      int    `json:"attempts"`
}
