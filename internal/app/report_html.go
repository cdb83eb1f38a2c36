package app

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func htmlElement(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func htmlText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// writeReportHTML renders the summary as a standalone HTML page. Text is
// escaped by the renderer.
func writeReportHTML(w io.Writer, sum Summary) error {
	table := htmlElement(atom.Table)
	for _, l := range reportLines(sum) {
		table.AppendChild(htmlElement(atom.Tr, htmlElement(atom.Th, htmlText(l[0])), htmlElement(atom.Td, htmlText(l[1]))))
	}
	sources := htmlElement(atom.Ul)
	for _, s := range sum.Sources {
		sources.AppendChild(htmlElement(atom.Li, htmlText(sourceLine(s))))
	}
	urls := htmlElement(atom.Ol)
	for _, u := range sum.URLs {
		urls.AppendChild(htmlElement(atom.Li, htmlText(u)))
	}

	meta := htmlElement(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(htmlElement(atom.Html,
		htmlElement(atom.Head, meta, htmlElement(atom.Title, htmlText("URL distribution report"))),
		htmlElement(atom.Body,
			htmlElement(atom.H1, htmlText("URL distribution report")),
			table,
			htmlElement(atom.H2, htmlText("Sources")),
			sources,
			htmlElement(atom.H2, htmlText("URLs")),
			urls,
		),
	))
	return html.Render(w, doc)
}
