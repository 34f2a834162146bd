package credential

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer lays out the hall ticket as an A4 PDF.
type PDFRenderer struct {
	programName string
	sponsorLine string
}

// NewPDFRenderer constructs the renderer with the program branding lines.
func NewPDFRenderer(programName, sponsorLine string) *PDFRenderer {
	return &PDFRenderer{programName: programName, sponsorLine: sponsorLine}
}

// Render draws the document and returns the PDF bytes.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	pdf.SetDrawColor(0, 51, 102)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")

	pdf.SetTextColor(0, 51, 102)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(15, 15)
	pdf.CellFormat(pageW-30, 10, r.programName, "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "", 9)
	pdf.SetX(15)
	pdf.CellFormat(pageW-30, 5, r.sponsorLine, "", 1, "L", false, 0, "")

	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "BU", 16)
	pdf.CellFormat(0, 10, "HALL TICKET", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, line := range []string{
		"Hall Ticket ID: " + doc.TicketID,
		"Name: " + doc.Name,
		"Email: " + doc.Email,
		"Phone: " + doc.Phone,
		"College: " + doc.College,
		"Course: " + doc.Course,
	} {
		pdf.SetX(15)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetTextColor(0, 51, 102)
	pdf.SetFont("Arial", "U", 11)
	pdf.SetX(15)
	pdf.CellFormat(0, 7, "Exam Details:", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 11)
	for _, line := range []string{
		"Entrance Exam Date: 10th December 2025",
		"Venue: Documount Training Centre, Hyderabad",
		"Reporting Time: 9:00 AM",
		"Contact: +91-9966653422 | support@documounttech.in",
	} {
		pdf.SetX(15)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	if len(doc.QRPNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		name := "qr-" + doc.TicketID
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(doc.QRPNG))
		pdf.ImageOptions(name, pageW-55, pageH-70, 40, 40, false, opts, 0, "")
	}

	pdf.SetY(pageH - 25)
	pdf.SetTextColor(119, 119, 119)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 4.5,
		"Please bring a valid photo ID and this Hall Ticket to the examination center.\n"+
			"This document is computer-generated and does not require a signature.",
		"", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
