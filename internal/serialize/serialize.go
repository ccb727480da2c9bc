// Package serialize converts an assembled document.Document into the
// portable, UTF-8, human-inspectable artifact spec.md §4.8/§6 defines,
// in either per-item-file or stream mode.
package serialize

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/document"
)

// Extension is the file suffix used for per-item artifacts.
const Extension = "json"

// FileName returns the per-item artifact name for a canonical PMCID,
// "PMC<pmcid>.<ext>" (spec.md §4.8).
func FileName(canonicalPMCID string) string {
	return fmt.Sprintf("PMC%s.%s", canonicalPMCID, Extension)
}

// Marshal renders d as the fixed-order JSON artifact. Document's field
// order already matches the contract (spec.md §6) since encoding/json
// preserves Go struct field declaration order, and the ordered.Map
// fields carry their own custom MarshalJSON to preserve insertion order.
func Marshal(d *document.Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteFile writes one artifact to outputDir/PMC<pmcid>.json
// (per-item mode).
func WriteFile(outputDir string, d *document.Document) (string, error) {
	data, err := Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshaling document %s: %w", d.PMCID, err)
	}
	path := filepath.Join(outputDir, FileName(d.PMCID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return path, nil
}

// StreamWriter appends one Document per line to a single artifact file
// (stream mode, spec.md §4.8), each line its own compact JSON object.
type StreamWriter struct {
	f *os.File
	w *bufio.Writer
}

// OpenStreamWriter opens (creating or truncating) path for stream-mode
// writes.
func OpenStreamWriter(path string) (*StreamWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stream artifact %s: %w", path, err)
	}
	return &StreamWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends d as one compact-JSON line.
func (s *StreamWriter) Write(d *document.Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling document %s: %w", d.PMCID, err)
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered output and closes the underlying file.
func (s *StreamWriter) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
