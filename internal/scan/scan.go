// Package scan discovers office documents in a single directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies the document family of an input file.
type Kind string

const (
	Spreadsheet  Kind = "spreadsheet"
	Presentation Kind = "presentation"
	WordDocument Kind = "word"
)

// kindByExt maps recognized extensions to kinds. Matching is case-sensitive.
var kindByExt = map[string]Kind{
	".xlsx": Spreadsheet,
	".pptx": Presentation,
	".docx": WordDocument,
}

// KindOf returns the kind for name and whether the extension is recognized.
func KindOf(name string) (Kind, bool) {
	k, ok := kindByExt[filepath.Ext(name)]
	return k, ok
}

// Inputs partitions the files of one directory by kind. Each list keeps
// directory-listing order and holds paths joined with the directory.
type Inputs struct {
	Spreadsheets  []string
	Presentations []string
	WordDocuments []string
}

// Empty reports whether no recognized file was found.
func (in Inputs) Empty() bool {
	return len(in.Spreadsheets) == 0 && len(in.Presentations) == 0 && len(in.WordDocuments) == 0
}

// Presentation returns the first presentation path, if any.
func (in Inputs) Presentation() (string, bool) {
	if len(in.Presentations) == 0 {
		return "", false
	}
	return in.Presentations[0], true
}

// EnumerationError reports that the directory listing could not be produced.
type EnumerationError struct {
	Dir string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("list %s: %v", e.Dir, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Options tunes discovery.
type Options struct {
	// SkipPrefix excludes files whose base name starts with it (e.g. outputs
	// from an earlier run). Empty disables the filter.
	SkipPrefix string
}

// Dir lists dir without recursing. On listing failure it returns empty
// Inputs together with an *EnumerationError so callers can degrade to no work.
func Dir(dir string, opts Options) (Inputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Inputs{}, &EnumerationError{Dir: dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return Partition(dir, names, opts), nil
}

// Partition sorts names into Inputs, preserving their order.
func Partition(dir string, names []string, opts Options) Inputs {
	var in Inputs
	for _, name := range names {
		if opts.SkipPrefix != "" && strings.HasPrefix(name, opts.SkipPrefix) {
			continue
		}
		kind, ok := KindOf(name)
		if !ok {
			continue
		}
		p := filepath.Join(dir, name)
		switch kind {
		case Spreadsheet:
			in.Spreadsheets = append(in.Spreadsheets, p)
		case Presentation:
			in.Presentations = append(in.Presentations, p)
		case WordDocument:
			in.WordDocuments = append(in.WordDocuments, p)
		}
	}
	return in
}
