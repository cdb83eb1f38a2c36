package office

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperifyio/urldeck/internal/distribute"
)

var (
	// ErrShapeIndex is returned when a slide has fewer shapes than requested.
	ErrShapeIndex = errors.New("shape index out of range")
	// ErrNoTextFrame is returned when the addressed shape cannot hold text.
	ErrNoTextFrame = errors.New("shape has no text frame")
)

const (
	pptxMainPart = "ppt/presentation.xml"
	pptxMainRels = "ppt/_rels/presentation.xml.rels"
	relTypeSlide = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// shapeElements are the direct children of a shape tree that count as shapes.
var shapeElements = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

type presentationXML struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// Presentation is an editable view over a .pptx package. Only the text
// frames handed out by TextFrame are rewritten on save; every other entry
// is copied unchanged.
type Presentation struct {
	path   string
	zr     *zip.ReadCloser
	slides []string
	parts  map[string][]byte
	frames map[frameKey]*TextFrame
}

type frameKey struct {
	part  string
	shape int
}

// OpenPresentation opens path and resolves its slide order.
func OpenPresentation(path string) (*Presentation, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	p := &Presentation{path: path, zr: zr, parts: map[string][]byte{}, frames: map[frameKey]*TextFrame{}}
	if err := p.loadSlideOrder(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Presentation) loadSlideOrder() error {
	mainData, err := readZipEntry(&p.zr.Reader, pptxMainPart)
	if err != nil {
		return err
	}
	var pres presentationXML
	if err := xml.Unmarshal(mainData, &pres); err != nil {
		return fmt.Errorf("parse %s: %w", pptxMainPart, err)
	}
	relData, err := readZipEntry(&p.zr.Reader, pptxMainRels)
	if err != nil {
		return err
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(relData, &rels); err != nil {
		return fmt.Errorf("parse %s: %w", pptxMainRels, err)
	}
	targets := make(map[string]string, len(rels.Rels))
	for _, r := range rels.Rels {
		if r.Type == relTypeSlide {
			targets[r.ID] = resolvePartName(path.Dir(pptxMainPart), r.Target)
		}
	}
	for _, s := range pres.SlideIDs {
		target, ok := targets[s.RID]
		if !ok {
			return fmt.Errorf("slide relationship %q not found", s.RID)
		}
		p.slides = append(p.slides, target)
	}
	return nil
}

func resolvePartName(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(base, target)
}

// SlideCount returns the number of slides in presentation order.
func (p *Presentation) SlideCount() int { return len(p.slides) }

func (p *Presentation) part(name string) ([]byte, error) {
	if data, ok := p.parts[name]; ok {
		return data, nil
	}
	data, err := readZipEntry(&p.zr.Reader, name)
	if err != nil {
		return nil, err
	}
	p.parts[name] = data
	return data, nil
}

// TextFrame returns the text frame of the 0-based shape on the 0-based slide.
func (p *Presentation) TextFrame(slide, shape int) (distribute.TextFrame, error) {
	tf, err := p.frame(slide, shape)
	if err != nil {
		return nil, err
	}
	return tf, nil
}

func (p *Presentation) frame(slide, shape int) (*TextFrame, error) {
	if slide < 0 || slide >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (%d slides)", slide, len(p.slides))
	}
	name := p.slides[slide]
	key := frameKey{part: name, shape: shape}
	if tf, ok := p.frames[key]; ok {
		return tf, nil
	}
	data, err := p.part(name)
	if err != nil {
		return nil, err
	}
	loc, err := locateTextFrame(data, shape)
	if err != nil {
		return nil, fmt.Errorf("%s shape %d: %w", name, shape, err)
	}
	tf := &TextFrame{loc: loc, original: data[loc.start:loc.end]}
	p.frames[key] = tf
	return tf, nil
}

// Paragraphs returns the current paragraph texts of a shape's text frame,
// including unsaved edits.
func (p *Presentation) Paragraphs(slide, shape int) ([]string, error) {
	tf, err := p.frame(slide, shape)
	if err != nil {
		return nil, err
	}
	return paragraphTexts(tf.content())
}

// SaveAs writes the presentation with all text frame edits to path.
func (p *Presentation) SaveAs(dst string) error {
	return writeFileAtomic(dst, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, f := range p.zr.File {
			data, edited := p.renderPart(f.Name)
			if !edited {
				if err := zw.Copy(f); err != nil {
					return fmt.Errorf("copy %s: %w", f.Name, err)
				}
				continue
			}
			fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
			if err != nil {
				return err
			}
			if _, err := fw.Write(data); err != nil {
				return fmt.Errorf("write %s: %w", f.Name, err)
			}
		}
		return zw.Close()
	})
}

// renderPart splices the edited frames of part back into its markup.
func (p *Presentation) renderPart(name string) ([]byte, bool) {
	var edits []*TextFrame
	for k, tf := range p.frames {
		if k.part == name && tf.touched {
			edits = append(edits, tf)
		}
	}
	if len(edits) == 0 {
		return nil, false
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].loc.start > edits[j].loc.start })
	data := append([]byte(nil), p.parts[name]...)
	for _, tf := range edits {
		var b bytes.Buffer
		b.Grow(len(data) + tf.body.Len())
		b.Write(data[:tf.loc.start])
		b.Write(tf.body.Bytes())
		b.Write(data[tf.loc.end:])
		data = b.Bytes()
	}
	return data, true
}

func (p *Presentation) Close() error { return p.zr.Close() }

// TextFrame buffers edits to one shape's paragraphs.
type TextFrame struct {
	loc      frameLoc
	original []byte
	touched  bool
	body     bytes.Buffer
}

func (tf *TextFrame) content() []byte {
	if !tf.touched {
		return tf.original
	}
	return tf.body.Bytes()
}

// Clear removes every paragraph except the first, which is emptied but keeps
// its paragraph properties. A text body always holds at least one paragraph.
func (tf *TextFrame) Clear() {
	tf.touched = true
	tf.body.Reset()
	tf.body.WriteString("<" + tf.loc.qname("p") + ">")
	tf.body.Write(tf.loc.firstPPr)
	tf.body.Write(tf.loc.firstEnd)
	tf.body.WriteString("</" + tf.loc.qname("p") + ">")
}

// AddParagraph appends a paragraph holding text in style.
func (tf *TextFrame) AddParagraph(text string, style distribute.Style) {
	if !tf.touched {
		tf.touched = true
		tf.body.Reset()
		tf.body.Write(tf.original)
	}
	writeParagraph(&tf.body, tf.loc.prefix, text, style)
}

func writeParagraph(b *bytes.Buffer, prefix, text string, st distribute.Style) {
	q := func(local string) string {
		if prefix == "" {
			return local
		}
		return prefix + ":" + local
	}
	sz := strconv.Itoa(int(st.SizePt * 100))
	font := `<` + q("latin") + ` typeface="` + escapeAttr(st.Font) + `"/>`
	b.WriteString("<" + q("p") + "><" + q("pPr") + ">")
	b.WriteString("<" + q("spcBef") + "><" + q("spcPts") + ` val="` + strconv.Itoa(int(st.SpaceBefore*100)) + `"/></` + q("spcBef") + ">")
	b.WriteString("<" + q("spcAft") + "><" + q("spcPts") + ` val="` + strconv.Itoa(int(st.SpaceAfter*100)) + `"/></` + q("spcAft") + ">")
	b.WriteString("<" + q("defRPr") + ` sz="` + sz + `">` + font + "</" + q("defRPr") + ">")
	b.WriteString("</" + q("pPr") + ">")
	if text != "" {
		b.WriteString("<" + q("r") + "><" + q("rPr") + ` lang="en-US" sz="` + sz + `" dirty="0">` + font + "</" + q("rPr") + ">")
		b.WriteString("<" + q("t") + ">")
		_ = xml.EscapeText(b, []byte(text))
		b.WriteString("</" + q("t") + "></" + q("r") + ">")
	}
	b.WriteString("<" + q("endParaRPr") + ` lang="en-US" sz="` + sz + `" dirty="0">` + font + "</" + q("endParaRPr") + ">")
	b.WriteString("</" + q("p") + ">")
}

func escapeAttr(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// frameLoc is the byte range of a text body's paragraphs within a slide part.
// When the body has no paragraph, start == end marks the insertion point.
type frameLoc struct {
	start, end int
	prefix     string
	firstPPr   []byte
	firstEnd   []byte
}

func (l frameLoc) qname(local string) string {
	if l.prefix == "" {
		return local
	}
	return l.prefix + ":" + local
}

// locateTextFrame finds the paragraphs of the text body belonging to the
// shape-th direct shape child of the slide's shape tree.
func locateTextFrame(data []byte, shape int) (frameLoc, error) {
	loc := frameLoc{start: -1, prefix: "a"}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		stack       []string
		treeDepth   = -1
		targetDepth = -1
		bodyDepth   = -1
		count       = -1
		inFirst     bool
		childStart  = -1
	)
	for {
		before := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loc, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			depth := len(stack)
			switch {
			case treeDepth < 0 && t.Name.Local == "spTree" && depth >= 2 && stack[depth-2] == "cSld":
				treeDepth = depth
			case treeDepth > 0 && targetDepth < 0 && depth == treeDepth+1 && shapeElements[t.Name.Local]:
				count++
				if count == shape {
					if t.Name.Local != "sp" {
						return loc, fmt.Errorf("%w: element %s", ErrNoTextFrame, t.Name.Local)
					}
					targetDepth = depth
				}
			case targetDepth > 0 && bodyDepth < 0 && depth == targetDepth+1 && t.Name.Local == "txBody":
				bodyDepth = depth
			case bodyDepth > 0 && depth == bodyDepth+1 && t.Name.Local == "p":
				if loc.start < 0 {
					loc.start = before
					loc.prefix = t.Name.Space
					inFirst = true
				}
			case inFirst && depth == bodyDepth+2 && (t.Name.Local == "pPr" || t.Name.Local == "endParaRPr"):
				childStart = before
			}
		case xml.EndElement:
			depth := len(stack)
			switch {
			case inFirst && childStart >= 0 && depth == bodyDepth+2:
				end := int(dec.InputOffset())
				if t.Name.Local == "pPr" {
					loc.firstPPr = data[childStart:end]
				} else {
					loc.firstEnd = data[childStart:end]
				}
				childStart = -1
			case bodyDepth > 0 && depth == bodyDepth+1 && t.Name.Local == "p":
				loc.end = int(dec.InputOffset())
				inFirst = false
			case bodyDepth > 0 && depth == bodyDepth:
				if loc.start < 0 {
					loc.start, loc.end = before, before
				}
				return loc, nil
			case targetDepth > 0 && depth == targetDepth:
				return loc, ErrNoTextFrame
			case treeDepth > 0 && depth == treeDepth:
				return loc, fmt.Errorf("%w: %d shapes", ErrShapeIndex, count+1)
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return loc, fmt.Errorf("%w: no shape tree", ErrShapeIndex)
}
