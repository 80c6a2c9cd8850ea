package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a Document into a portrait A4 report.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF bytes for the document.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, line := range doc.Banner {
		if i == 0 {
			pdf.SetFillColor(93, 10, 40)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Arial", "B", 14)
		} else {
			pdf.SetFillColor(139, 21, 56)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Arial", "B", 10)
		}
		pdf.CellFormat(0, 8, tr(line), "", 1, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	writeKV := func(entries []KV) {
		for _, kv := range entries {
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(45, 6, tr(kv.Key), "", 0, "", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 6, tr(kv.Value), "", 1, "", false, 0, "")
		}
	}

	writeKV(doc.Meta)
	if len(doc.Filters) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, tr("Filtros aplicados"), "", 1, "", false, 0, "")
		writeKV(doc.Filters)
	}

	for _, block := range doc.Blocks {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, tr(block.Title), "", 1, "", false, 0, "")

		if len(block.Headers) == 0 {
			continue
		}
		colWidth := 190.0 / float64(len(block.Headers))

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(224, 224, 224)
		for _, header := range block.Headers {
			pdf.CellFormat(colWidth, 7, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, row := range block.Rows {
			for i := range block.Headers {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				pdf.CellFormat(colWidth, 6, tr(value), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
