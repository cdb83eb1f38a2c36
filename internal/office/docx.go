package office

import (
	"archive/zip"
	"errors"
	"fmt"
)

// ErrMissingPart is returned when a required part is absent from a package.
var ErrMissingPart = errors.New("missing package part")

const docxMainPart = "word/document.xml"

// WordDocument is a read-only view over a .docx package.
type WordDocument struct {
	path string
	zr   *zip.ReadCloser
}

// OpenWordDocument opens path as a .docx package.
func OpenWordDocument(path string) (*WordDocument, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &WordDocument{path: path, zr: zr}, nil
}

// Paragraphs returns the text of every paragraph in the main document part,
// including paragraphs inside tables and text boxes. Tabs read as '\t' and
// line breaks as '\n'.
func (d *WordDocument) Paragraphs() ([]string, error) {
	data, err := readZipEntry(&d.zr.Reader, docxMainPart)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.path, err)
	}
	paras, err := paragraphTexts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: parse %s: %w", d.path, docxMainPart, err)
	}
	return paras, nil
}

func (d *WordDocument) Close() error { return d.zr.Close() }
