package entrez

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLocalMissing(t *testing.T) {
	_, _, err := ReadLocal(filepath.Join(t.TempDir(), "nope.xml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadLocalEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := ReadLocal(path)
	if err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestReadLocalSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.xml")
	want := []byte("<article/>")
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatal(err)
	}
	got, src, err := ReadLocal(path)
	if err != nil {
		t.Fatalf("ReadLocal: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if src.Kind != "file" || src.Ref != path {
		t.Errorf("src = %+v", src)
	}
}

func TestWalkDirectoryLexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"c.xml", "a.xml", "b.xml", "ignore.txt"}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("<x/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for path, err := range WalkDirectory(dir) {
		if err != nil {
			t.Fatalf("WalkDirectory: %v", err)
		}
		got = append(got, filepath.Base(path))
	}

	want := []string{"a.xml", "b.xml", "c.xml"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkDirectoryEarlyStop(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.xml", "b.xml", "c.xml"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("<x/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	count := 0
	for range WalkDirectory(dir) {
		count++
		if count == 1 {
			break
		}
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (iteration should stop early)", count)
	}
}
