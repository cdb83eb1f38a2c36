// Package office reads and edits the parts of OOXML documents (.xlsx, .docx,
// .pptx) needed to collect URLs and write them onto slides.
package office

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// readZipEntry returns the bytes of the named entry of zr.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrMissingPart)
}

// paragraphTexts walks WordprocessingML or DrawingML markup and returns the
// plain text of every <p>, in closing order. Only text inside runs and
// fields counts; tab stops and other paragraph properties are ignored.
// Namespace prefixes are not checked so fragments without declarations work.
func paragraphTexts(data []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		stack []string
		open  []*strings.Builder
		out   []string
	)
	parent := func() string {
		if len(stack) < 2 {
			return ""
		}
		return stack[len(stack)-2]
	}
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if len(open) == 0 {
				if t.Name.Local == "p" {
					open = append(open, &strings.Builder{})
				}
				continue
			}
			cur := open[len(open)-1]
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "tab":
				if parent() == "r" {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if p := parent(); p == "r" || p == "p" {
					cur.WriteByte('\n')
				}
			}
		case xml.CharData:
			if len(open) > 0 && len(stack) >= 2 && stack[len(stack)-1] == "t" {
				if p := parent(); p == "r" || p == "fld" {
					open[len(open)-1].Write(t)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && len(open) > 0 {
				out = append(out, open[len(open)-1].String())
				open = open[:len(open)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out, nil
}
