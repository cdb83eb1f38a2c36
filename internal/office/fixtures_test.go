package office

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// writeZip assembles a package from ordered name/content pairs.
func writeZip(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatalf("zip create %s: %v", e[0], err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatalf("zip write %s: %v", e[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func textShape(id int, paras ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Box %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr/>`, id, id)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for i, p := range paras {
		if i == 0 {
			fmt.Fprintf(&b, `<a:p><a:pPr algn="ctr"><a:tabLst><a:tab pos="0"/></a:tabLst></a:pPr><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r><a:endParaRPr lang="uk-UA"/></a:p>`, p)
			continue
		}
		fmt.Fprintf(&b, `<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, p)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

const picShape = `<p:pic><p:nvPicPr><p:cNvPr id="90" name="Picture"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill/><p:spPr/></p:pic>`

// slideXML builds a slide whose shape tree holds the given shapes.
func slideXML(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld></p:sld>`
}

// standardSlide has six text shapes; shape 5 holds two old paragraphs.
func standardSlide(n int) string {
	shapes := make([]string, 0, 6)
	for i := 0; i < 5; i++ {
		shapes = append(shapes, textShape(10+i, fmt.Sprintf("title %d.%d", n, i)))
	}
	shapes = append(shapes, textShape(20, fmt.Sprintf("old %d", n), "second"))
	return slideXML(shapes...)
}

// buildPPTX writes a presentation whose slide order is given by slides; the
// part names are numbered in reverse so order must come from sldIdLst.
func buildPPTX(t *testing.T, dir, name string, slides []string) string {
	t.Helper()
	var ids, rels strings.Builder
	entries := [][2]string{{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`}}
	for i := range slides {
		part := len(slides) - i
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 10+i)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, 10+i, nsR, part)
	}
	rels.WriteString(`<Relationship Id="rId1" Type="` + nsR + `/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	entries = append(entries,
		[2]string{"ppt/presentation.xml", `<?xml version="1.0"?><p:presentation xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:sldIdLst>` + ids.String() + `</p:sldIdLst></p:presentation>`},
		[2]string{"ppt/_rels/presentation.xml.rels", `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`},
	)
	for i, s := range slides {
		entries = append(entries, [2]string{fmt.Sprintf("ppt/slides/slide%d.xml", len(slides)-i), s})
	}
	path := filepath.Join(dir, name)
	writeZip(t, path, entries)
	return path
}

func buildDOCX(t *testing.T, dir, name, body string) string {
	t.Helper()
	doc := `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="` + nsW + `"><w:body>` + body + `</w:body></w:document>`
	path := filepath.Join(dir, name)
	writeZip(t, path, [][2]string{{"word/document.xml", doc}})
	return path
}
