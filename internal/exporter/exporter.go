package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"punchclock/internal/attendance"
	apperrors "punchclock/internal/errors"
)

// Supported export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatZIP  = "zip"
)

// SupportedFormats lists every format Write accepts, in display order.
var SupportedFormats = []string{FormatCSV, FormatXLSX, FormatPDF, FormatZIP}

// IsSupported reports whether format names a known renderer
func IsSupported(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatXLSX, FormatPDF, FormatZIP:
		return true
	}
	return false
}

// FileName returns the canonical download name for a report export,
// e.g. attendance_1001_2024-03.csv.
func FileName(report *attendance.Report, format string) string {
	return fmt.Sprintf("attendance_%s_%04d-%02d.%s",
		report.EmployeeID, report.Year, report.Month, strings.ToLower(format))
}

// ContentType returns the MIME type for a format
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatZIP:
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

// Write renders the report in the requested format to w
func Write(w io.Writer, report *attendance.Report, format string) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, report, CSVOptions{BOMPrefix: true})
	case FormatXLSX:
		return WriteXLSX(w, report)
	case FormatPDF:
		return WritePDF(w, report)
	case FormatZIP:
		return WriteZIP(w, report)
	default:
		return apperrors.NewAppValidationError(fmt.Sprintf("unsupported export format: %s", format))
	}
}

// WriteFile renders the report to a file on disk, creating parent
// directories as needed.
func WriteFile(path string, report *attendance.Report, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create export directory", err).
				WithContext("path", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create export file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if err := Write(file, report, format); err != nil {
		return err
	}
	return file.Close()
}
