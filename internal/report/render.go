// Package report renders verification reports as PDF and publishes them to
// object storage.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"veriport/internal/comparison"
	vmodels "veriport/internal/verification/models"
)

const reportDateLayout = "02 Jan 2006 15:04 MST"

var statusTitles = map[comparison.Status]string{
	comparison.StatusMatched:      "VERIFIED",
	comparison.StatusPartialMatch: "PARTIALLY VERIFIED",
	comparison.StatusMismatch:     "NOT VERIFIED",
}

var colors = map[string][3]int{
	"green": {22, 128, 61},
	"red":   {185, 28, 28},
	"gray":  {107, 114, 128},
}

// Render draws the field-by-field comparison of record on a single A4 page.
func Render(record *vmodels.Record, verifierEmail string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle("Employment Verification "+string(record.ID), true)
	pdf.SetAuthor("veriport", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Employment Verification Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	result := record.Result()
	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Verification ID", string(record.ID)},
		{"Employee ID", string(record.EmployeeID)},
		{"Requested by", verifierEmail},
		{"Completed", record.CompletedAt.UTC().Format(reportDateLayout)},
		{"Generated", generatedAt.UTC().Format(reportDateLayout)},
	}
	for _, row := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	title := statusTitles[result.OverallStatus]
	pdf.CellFormat(0, 8, fmt.Sprintf("%s  (score %d%%)", title, result.MatchScore), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(result.Summary), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{40, 55, 55, 30}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(229, 231, 235)
	for i, h := range []string{"Field", "Submitted", "Company record", "Result"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range result.Fields {
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[0], 7, f.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(f.Submitted), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(f.Authoritative), "1", 0, "L", false, 0, "")
		c := colors[f.Color()]
		pdf.SetTextColor(c[0], c[1], c[2])
		pdf.CellFormat(widths[3], 7, matchLabel(f), "1", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, "This report reflects the employer's records at the time of verification. "+
		"It was produced with the employee's recorded consent and is intended solely for the requesting verifier.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func matchLabel(f comparison.FieldResult) string {
	switch f.MatchType {
	case comparison.MatchExact:
		return "Match"
	case comparison.MatchPartial:
		return "Partial match"
	case comparison.MatchNotProvided:
		return "Not provided"
	default:
		return "Mismatch"
	}
}
