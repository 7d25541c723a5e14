package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"punchclock/internal/attendance"
)

// CSVOptions configures CSV rendering behavior
type CSVOptions struct {
	BOMPrefix   bool // Add UTF-8 BOM for Excel compatibility
	IncludeLogs bool // Append the raw scan log section after the daily table
}

var dailyHeaders = []string{
	"Date", "In Time", "Out Time", "Total Hours", "Scan Count", "Status", "Crosses Midnight",
}

// WriteCSV renders the report as CSV. The output starts with a metadata
// block, then the daily attendance table, then the summary counters.
func WriteCSV(w io.Writer, report *attendance.Report, options CSVOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	meta := [][]string{
		{"Employee ID", report.EmployeeID},
		{"Period", fmt.Sprintf("%04d-%02d", report.Year, report.Month)},
		{},
	}
	for _, row := range meta {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	if err := writer.Write(dailyHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, day := range report.DailyRecords {
		record := []string{
			day.Date,
			day.InTime,
			day.OutTime,
			formatFloat(day.TotalHours),
			formatInt(day.ScanCount),
			string(day.Status),
			formatBool(day.CrossesMidnight),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	summary := [][]string{
		{},
		{"Days With Records", formatInt(report.Summary.TotalDaysWithRecords)},
		{"Normal Days", formatInt(report.Summary.TotalNormalDays)},
		{"Out Missing Days", formatInt(report.Summary.TotalOutMissingDays)},
	}
	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if options.IncludeLogs {
		if err := writeScanLogSection(writer, report); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeScanLogSection appends the per-day raw scan log rows
func writeScanLogSection(writer *csv.Writer, report *attendance.Report) error {
	rows := [][]string{
		{},
		{"Scan Log"},
		{"Date", "Time", "Direction", "Duplicate"},
	}
	for _, day := range report.DailyRecords {
		for _, entry := range day.Logs {
			rows = append(rows, []string{
				entry.Date,
				entry.Time,
				string(entry.Direction),
				formatBool(entry.IsDuplicate),
			})
		}
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write scan log: %w", err)
		}
	}
	return nil
}
