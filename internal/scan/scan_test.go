package scan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPartition_ByExtensionPreservingOrder(t *testing.T) {
	names := []string{"b.xlsx", "deck.pptx", "notes.docx", "a.xlsx", "readme.txt", "UPPER.XLSX", "second.pptx", "x.xlsx.bak"}
	in := Partition("dir", names, Options{})
	if want := []string{filepath.Join("dir", "b.xlsx"), filepath.Join("dir", "a.xlsx")}; !reflect.DeepEqual(in.Spreadsheets, want) {
		t.Fatalf("spreadsheets=%v, want %v", in.Spreadsheets, want)
	}
	if want := []string{filepath.Join("dir", "deck.pptx"), filepath.Join("dir", "second.pptx")}; !reflect.DeepEqual(in.Presentations, want) {
		t.Fatalf("presentations=%v", in.Presentations)
	}
	if len(in.WordDocuments) != 1 {
		t.Fatalf("word docs=%v", in.WordDocuments)
	}
	p, ok := in.Presentation()
	if !ok || p != filepath.Join("dir", "deck.pptx") {
		t.Fatalf("first presentation=%q ok=%v", p, ok)
	}
}

func TestPartition_SkipPrefix(t *testing.T) {
	in := Partition(".", []string{"processed_a.xlsx", "a.xlsx"}, Options{SkipPrefix: "processed_"})
	if len(in.Spreadsheets) != 1 || filepath.Base(in.Spreadsheets[0]) != "a.xlsx" {
		t.Fatalf("spreadsheets=%v", in.Spreadsheets)
	}
	in = Partition(".", []string{"processed_a.xlsx", "a.xlsx"}, Options{})
	if len(in.Spreadsheets) != 2 {
		t.Fatalf("without skip prefix both files count: %v", in.Spreadsheets)
	}
}

func TestDir_NoRecursion(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"one.xlsx", "two.docx", "deck.pptx", "skip.csv"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	sub := filepath.Join(dir, "nested.xlsx")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "inner.xlsx"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write inner: %v", err)
	}
	in, err := Dir(dir, Options{})
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if len(in.Spreadsheets) != 1 || len(in.WordDocuments) != 1 || len(in.Presentations) != 1 {
		t.Fatalf("unexpected inputs %+v", in)
	}
	if in.Empty() {
		t.Fatalf("inputs should not be empty")
	}
}

func TestDir_EnumerationError(t *testing.T) {
	in, err := Dir(filepath.Join(t.TempDir(), "missing"), Options{})
	var enumErr *EnumerationError
	if !errors.As(err, &enumErr) {
		t.Fatalf("err=%v, want *EnumerationError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("EnumerationError should unwrap to the listing error")
	}
	if !in.Empty() {
		t.Fatalf("inputs should be empty on failure")
	}
}
