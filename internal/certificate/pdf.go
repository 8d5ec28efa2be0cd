package certificate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"boothq/internal/models"
)

const maxCommentLen = 50

// PDFConfig parameterizes the rendered certificate. SealPaths are tried
// in order; an admin-uploaded seal is listed before the bundled default.
type PDFConfig struct {
	EventName string
	OrgName   string
	SealPaths []string
}

// RenderPDF lays out a single-page A4 certificate: number top left,
// centered title, student block, visited-booth table, attestation, issue
// date and the issuing organization with its seal.
func RenderPDF(cfg PDFConfig, cert models.Certificate, visits []BoothVisit) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(30, 20, 30)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Certificate No. "+cert.Number, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, cfg.EventName+" Participation Certificate", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	identity := cert.Identity
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "School: "+identity.School, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Class: grade %d, class %d, no. %d", identity.Grade, identity.Class, identity.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Name: "+identity.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Booths visited: %d", cert.BoothCount), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	if len(visits) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Visited booths", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(20, 8, "No.", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 8, "Booth", "1", 0, "L", true, 0, "")
		pdf.CellFormat(80, 8, "Comment", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for i, visit := range visits {
			comment := visit.Comment
			if comment == "" {
				comment = "no comment"
			}
			if len([]rune(comment)) > maxCommentLen {
				comment = string([]rune(comment)[:maxCommentLen-3]) + "..."
			}
			pdf.CellFormat(20, 8, fmt.Sprintf("%d", i+1), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 8, visit.Booth, "1", 0, "L", false, 0, "")
			pdf.CellFormat(80, 8, comment, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "", 12)
	attestation := fmt.Sprintf(
		"This certifies that the student named above participated in '%s' and completed the booth activities listed.",
		cfg.EventName)
	pdf.MultiCell(0, 8, attestation, "", "C", false)
	pdf.Ln(10)

	pdf.CellFormat(0, 8, "Issued: "+cert.IssuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(12)
	pdf.CellFormat(0, 8, cfg.OrgName, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	drawSeal(pdf, cfg.SealPaths)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawSeal places the first readable seal image centered under the org
// name, and falls back to a text marker when no image is available.
func drawSeal(pdf *fpdf.Fpdf, paths []string) {
	pageWidth, _ := pdf.GetPageSize()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		x := (pageWidth - 20) / 2
		pdf.ImageOptions(path, x, pdf.GetY(), 20, 20, false, fpdf.ImageOptions{}, 0, "")
		if pdf.Err() {
			pdf.ClearError()
			continue
		}
		return
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "(seal)", "", 1, "C", false, 0, "")
}
