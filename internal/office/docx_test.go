package office

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWordDocument_Paragraphs(t *testing.T) {
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t xml:space="preserve">See </w:t></w:r>` +
		`<w:hyperlink><w:r><w:t>https://a.com/x</w:t></w:r></w:hyperlink>` +
		`<w:r><w:tab/><w:t>tiktok.com/@u</w:t><w:br/><w:t>end</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>https://cell.example</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:instrText>HYPERLINK "https://hidden"</w:instrText></w:r></w:p>` +
		`<w:p/>`
	path := buildDOCX(t, t.TempDir(), "notes.docx", body)
	doc, err := OpenWordDocument(path)
	if err != nil {
		t.Fatalf("OpenWordDocument: %v", err)
	}
	defer doc.Close()
	got, err := doc.Paragraphs()
	if err != nil {
		t.Fatalf("Paragraphs: %v", err)
	}
	want := []string{"See https://a.com/x\ttiktok.com/@u\nend", "https://cell.example", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("paragraphs=%q, want %q", got, want)
	}
}

func TestWordDocument_MissingMainPart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	writeZip(t, path, [][2]string{{"docProps/core.xml", "<x/>"}})
	doc, err := OpenWordDocument(path)
	if err != nil {
		t.Fatalf("OpenWordDocument: %v", err)
	}
	defer doc.Close()
	if _, err := doc.Paragraphs(); !errors.Is(err, ErrMissingPart) {
		t.Fatalf("err=%v, want ErrMissingPart", err)
	}
}

func TestParagraphTexts_NestedParagraphs(t *testing.T) {
	data := []byte(`<w:body><w:p><w:r><w:t>outer</w:t><w:drawing><w:txbxContent><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:txbxContent></w:drawing></w:r></w:p></w:body>`)
	got, err := paragraphTexts(data)
	if err != nil {
		t.Fatalf("paragraphTexts: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"inner", "outer"}) {
		t.Fatalf("got %q", got)
	}
}
