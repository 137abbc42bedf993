package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// PDF layout in millimetres.
const (
	pdfMargin     = 20.0
	pdfLineHeight = 6.0
	pdfLetterCol  = 14.0
)

// newPDF creates an A4 document with page numbers in the footer. The
// returned translator converts UTF-8 to the core fonts' cp1252 so umlauts
// print correctly.
func newPDF(title string) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("abclisten", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	return pdf, tr
}

// WriteListPDF renders a list as a PDF: one section per non-empty letter,
// each word in bold followed by its explanation.
func WriteListPDF(list wordlist.List, w io.Writer) error {
	pdf, tr := newPDF(list.Name)
	letters := list.Letters()
	if len(letters) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, pdfLineHeight, tr("No words yet."), "", 1, "L", false, 0, "")
	}
	for _, letter := range letters {
		// Keep the heading with at least one entry.
		_, pageH := pdf.GetPageSize()
		if pdf.GetY()+3*pdfLineHeight > pageH-pdfMargin {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetFillColor(230, 240, 255)
		pdf.CellFormat(0, 8, strings.ToUpper(letter), "", 1, "L", true, 0, "")
		pdf.Ln(1)

		for _, e := range list.Entries(letter) {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, pdfLineHeight, tr(e.Text), "", "L", false)
			if e.Explanation != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.SetX(pdfMargin + 4)
				pdf.MultiCell(0, pdfLineHeight-1, tr(e.Explanation), "", "L", false)
			}
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}
	return outputPDF(pdf, w)
}

// WriteKawaPDF renders a KaWa as a two-column table of letters and
// associations.
func WriteKawaPDF(k kawa.Kawa, w io.Writer) error {
	pdf, tr := newPDF("KaWa: " + strings.ToUpper(k.Word))
	for i, l := range k.Letters() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetFillColor(255, 236, 210)
		pdf.CellFormat(pdfLetterCol, 9, tr(strings.ToUpper(l)), "1", 0, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		text := k.At(i)
		if text == "" {
			pdf.SetTextColor(160, 160, 160)
			text = "-"
		}
		pdf.CellFormat(0, 9, tr(text), "1", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	return outputPDF(pdf, w)
}

func outputPDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
