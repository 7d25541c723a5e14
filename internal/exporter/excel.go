package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"punchclock/internal/attendance"
)

const (
	reportSheet  = "Report"
	scanLogSheet = "Scan Log"
)

// WriteXLSX renders the report as an Excel workbook with two sheets:
// the daily attendance table with summary counters, and the raw scan log.
func WriteXLSX(w io.Writer, report *attendance.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(scanLogSheet); err != nil {
		return fmt.Errorf("failed to create scan log sheet: %w", err)
	}

	if err := writeReportSheet(f, report); err != nil {
		return err
	}
	if err := writeScanLogSheet(f, report); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeReportSheet(f *excelize.File, report *attendance.Report) error {
	setRow := func(row int, values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(reportSheet, cell, &values)
	}

	rows := [][]interface{}{
		{"Employee ID", report.EmployeeID},
		{"Period", fmt.Sprintf("%04d-%02d", report.Year, report.Month)},
		{},
		{"Date", "In Time", "Out Time", "Total Hours", "Scan Count", "Status", "Crosses Midnight"},
	}
	for _, day := range report.DailyRecords {
		rows = append(rows, []interface{}{
			day.Date,
			day.InTime,
			day.OutTime,
			day.TotalHours,
			day.ScanCount,
			string(day.Status),
			formatBool(day.CrossesMidnight),
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Days With Records", report.Summary.TotalDaysWithRecords},
		[]interface{}{"Normal Days", report.Summary.TotalNormalDays},
		[]interface{}{"Out Missing Days", report.Summary.TotalOutMissingDays},
	)

	for i, row := range rows {
		if err := setRow(i+1, row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "G", 16); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}
	return nil
}

func writeScanLogSheet(f *excelize.File, report *attendance.Report) error {
	rows := [][]interface{}{
		{"Date", "Time", "Direction", "Duplicate"},
	}
	for _, day := range report.DailyRecords {
		for _, entry := range day.Logs {
			rows = append(rows, []interface{}{
				entry.Date,
				entry.Time,
				string(entry.Direction),
				formatBool(entry.IsDuplicate),
			})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(scanLogSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write scan log row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(scanLogSheet, "A", "D", 14); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}
	return nil
}
