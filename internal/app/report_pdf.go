package app

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// writeReportPDF renders a minimal PDF summary. Core fonts are used, so text
// is translated to cp1252 and characters outside it degrade.
func writeReportPDF(w io.Writer, sum Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "URL distribution report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, l := range reportLines(sum) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, tr(l[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr(l[1]), "", "L", false)
	}

	if len(sum.Sources) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Sources", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, s := range sum.Sources {
			pdf.MultiCell(0, 5, tr(sourceLine(s)), "", "L", false)
		}
	}

	if len(sum.URLs) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "URLs", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, u := range sum.URLs {
			pdf.WriteLinkString(5, tr(u), u)
			pdf.Ln(5)
		}
	}
	return pdf.Output(w)
}
