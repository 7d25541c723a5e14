package exporter

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"punchclock/internal/attendance"
)

var pdfColumnWidths = []float64{26, 24, 24, 24, 22, 32, 28}

// WritePDF renders the report as a single-column A4 PDF with the daily
// attendance table followed by the summary counters.
func WritePDF(w io.Writer, report *attendance.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Employee ID: %s", report.EmployeeID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %04d-%02d", report.Year, report.Month), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range dailyHeaders {
		pdf.CellFormat(pdfColumnWidths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, day := range report.DailyRecords {
		cells := []string{
			day.Date,
			day.InTime,
			day.OutTime,
			formatFloat(day.TotalHours),
			formatInt(day.ScanCount),
			string(day.Status),
			formatBool(day.CrossesMidnight),
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumnWidths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Days with records: %d", report.Summary.TotalDaysWithRecords), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Normal days: %d", report.Summary.TotalNormalDays), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Out missing days: %d", report.Summary.TotalOutMissingDays), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
