package serialize

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/document"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

func assemble(t *testing.T, pmcid, xml string) *document.Document {
	t.Helper()
	root, err := jats.Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return document.Assemble(pmcid, root)
}

func TestFileName(t *testing.T) {
	if got := FileName("7181753"); got != "PMC7181753.json" {
		t.Errorf("FileName = %q", got)
	}
}

func TestMarshalFieldOrderAndEmptyValues(t *testing.T) {
	d := assemble(t, "1", `<article/>`)
	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, field := range []string{"authors", "citations", "tables", "keywords", "acknowledgements"} {
		v, ok := raw[field]
		if !ok {
			t.Fatalf("missing field %q", field)
		}
		if string(v) != "[]" {
			t.Errorf("field %q = %s, want []", field, v)
		}
	}
	for _, field := range []string{"glossary", "ethics", "counts", "custom_meta"} {
		v, ok := raw[field]
		if !ok {
			t.Fatalf("missing field %q", field)
		}
		if string(v) != "{}" {
			t.Errorf("field %q = %s, want {}", field, v)
		}
	}

	// pmc_id must be the first key emitted, matching struct declaration order.
	pmcIdx := strings.Index(string(data), `"pmc_id"`)
	titleIdx := strings.Index(string(data), `"title"`)
	if pmcIdx < 0 || titleIdx < 0 || pmcIdx > titleIdx {
		t.Errorf("expected pmc_id before title in output, got pmcIdx=%d titleIdx=%d", pmcIdx, titleIdx)
	}
}

func TestWriteFileWritesArtifactNamedByPMCID(t *testing.T) {
	dir := t.TempDir()
	d := assemble(t, "42", `<article/>`)
	path, err := WriteFile(dir, d)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "PMC42.json" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got document.Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.PMCID != "42" {
		t.Errorf("PMCID = %q", got.PMCID)
	}
}

func TestStreamWriterWritesOneLinePerDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.jsonl")
	sw, err := OpenStreamWriter(path)
	if err != nil {
		t.Fatalf("OpenStreamWriter: %v", err)
	}

	d1 := assemble(t, "1", `<article/>`)
	d2 := assemble(t, "2", `<article/>`)
	if err := sw.Write(d1); err != nil {
		t.Fatalf("Write d1: %v", err)
	}
	if err := sw.Write(d2); err != nil {
		t.Fatalf("Write d2: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var got1, got2 document.Document
	if err := json.Unmarshal([]byte(lines[0]), &got1); err != nil {
		t.Fatalf("Unmarshal line 0: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &got2); err != nil {
		t.Fatalf("Unmarshal line 1: %v", err)
	}
	if got1.PMCID != "1" || got2.PMCID != "2" {
		t.Errorf("PMCIDs = %q, %q", got1.PMCID, got2.PMCID)
	}
}
