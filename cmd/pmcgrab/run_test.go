package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/batch"
)

func TestReadIDFile_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.txt")
	content := "PMC7181753\n\n  32265220  \n10.1000/xyz\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := readIDFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"PMC7181753", "32265220", "10.1000/xyz"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestReadIDFile_MissingFile(t *testing.T) {
	if _, err := readIDFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestItemsFromFiles(t *testing.T) {
	items := itemsFromFiles([]string{"/a/one.xml", "/a/two.xml"})
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Raw != "/a/one.xml" || items[0].LocalPath != "/a/one.xml" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1] != (batch.Item{Raw: "/a/two.xml", LocalPath: "/a/two.xml"}) {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestItemsFromDirectory_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.xml", "notxml.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<article/>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	items := itemsFromDirectory(dir)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if filepath.Base(items[0].Raw) != "a.xml" || filepath.Base(items[1].Raw) != "b.xml" {
		t.Errorf("got order %v, want a.xml then b.xml", items)
	}
}
