package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// OutputPrefix is prepended to the base name of every derived output file.
const OutputPrefix = "processed_"

// URLColumn is the 1-based spreadsheet column scanned and rewritten.
const URLColumn = 1

// DerivedPath returns the sibling path "processed_<base>" for path.
func DerivedPath(path string) string {
	return filepath.Join(filepath.Dir(path), OutputPrefix+filepath.Base(path))
}

// Extractor produces the URL candidates found in one source document.
// Implementations are selected by file extension at discovery time.
type Extractor interface {
	Extract(ctx context.Context) (Result, error)
}

// Result is the outcome of one extraction.
type Result struct {
	Source string
	URLs   Set
	// Output is the derived file written by the extractor, if any.
	Output string
}

// Sheet is the document access needed from a spreadsheet. Column indices are
// 1-based; Column returns every row from row 1 down, with nil for empty cells.
type Sheet interface {
	Column(col int) ([]any, error)
	ClearColumn(col int) error
	WriteColumn(col int, values []string) error
	SaveAs(path string) error
	Close() error
}

// Paragraphs is the document access needed from a word-processing file.
type Paragraphs interface {
	Paragraphs() ([]string, error)
	Close() error
}

// SpreadsheetExtractor collects candidates from column A of a workbook and
// rewrites that column with the sorted unique set into a derived file.
type SpreadsheetExtractor struct {
	Path string
	Open func(path string) (Sheet, error)
}

func (e *SpreadsheetExtractor) Extract(ctx context.Context) (Result, error) {
	res := Result{Source: e.Path, URLs: NewSet()}
	if e.Open == nil {
		return res, errors.New("spreadsheet: no opener configured")
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	sheet, err := e.Open(e.Path)
	if err != nil {
		return res, fmt.Errorf("open spreadsheet %s: %w", e.Path, err)
	}
	defer sheet.Close()

	values, err := sheet.Column(URLColumn)
	if err != nil {
		return res, fmt.Errorf("read column: %w", err)
	}
	CollectTexts(res.URLs, values)

	// Clear fully before writing back so stale rows below the new set vanish.
	if err := sheet.ClearColumn(URLColumn); err != nil {
		return res, fmt.Errorf("clear column: %w", err)
	}
	if err := sheet.WriteColumn(URLColumn, res.URLs.Sorted()); err != nil {
		return res, fmt.Errorf("write column: %w", err)
	}
	out := DerivedPath(e.Path)
	if err := sheet.SaveAs(out); err != nil {
		return res, fmt.Errorf("save %s: %w", out, err)
	}
	res.Output = out
	return res, nil
}

// WordDocExtractor collects whitespace-separated candidate tokens from every
// paragraph. It never writes.
type WordDocExtractor struct {
	Path string
	Open func(path string) (Paragraphs, error)
}

func (e *WordDocExtractor) Extract(ctx context.Context) (Result, error) {
	res := Result{Source: e.Path, URLs: NewSet()}
	if e.Open == nil {
		return res, errors.New("word document: no opener configured")
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	doc, err := e.Open(e.Path)
	if err != nil {
		return res, fmt.Errorf("open word document %s: %w", e.Path, err)
	}
	defer doc.Close()

	paras, err := doc.Paragraphs()
	if err != nil {
		return res, fmt.Errorf("read paragraphs: %w", err)
	}
	CollectTokens(res.URLs, paras)
	return res, nil
}
