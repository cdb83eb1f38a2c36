package app

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, dir, name string, colA ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, v := range colA {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return path
}

func writePackage(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func writeDOCX(t *testing.T, dir, name string, paras ...string) string {
	t.Helper()
	var b strings.Builder
	for _, p := range paras {
		fmt.Fprintf(&b, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}
	path := filepath.Join(dir, name)
	writePackage(t, path, map[string]string{
		"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + b.String() + `</w:body></w:document>`,
	})
	return path
}

// writePPTX builds a presentation with the given number of slides, each with
// six text boxes.
func writePPTX(t *testing.T, dir, name string, slides int) string {
	t.Helper()
	const (
		nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
		nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
		nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	)
	entries := map[string]string{}
	var ids, rels strings.Builder
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, i, nsR, i)
		var shapes strings.Builder
		for s := 0; s < 6; s++ {
			fmt.Fprintf(&shapes, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Box"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>placeholder %d</a:t></a:r></a:p></p:txBody></p:sp>`, s+2, s)
		}
		entries[fmt.Sprintf("ppt/slides/slide%d.xml", i)] = `<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree><p:nvGrpSpPr/><p:grpSpPr/>` + shapes.String() + `</p:spTree></p:cSld></p:sld>`
	}
	entries["ppt/presentation.xml"] = `<p:presentation xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:sldIdLst>` + ids.String() + `</p:sldIdLst></p:presentation>`
	entries["ppt/_rels/presentation.xml.rels"] = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`
	path := filepath.Join(dir, name)
	writePackage(t, path, entries)
	return path
}
