// Package exporter renders attendance reports into downloadable file
// formats. Every renderer consumes a fully built attendance.Report and
// formats its fields verbatim; no hours, statuses, or counters are
// recomputed here.
//
// # Supported Formats
//
//   - CSV with a UTF-8 BOM prefix for Excel compatibility
//   - XLSX workbooks with separate report and scan log sheets
//   - PDF summaries rendered with go-pdf/fpdf
//   - ZIP bundles containing all of the above
//
// # Usage
//
//	report := attendance.BuildReport(logText, "1001", 3, 2024)
//	if err := exporter.Write(w, report, exporter.FormatCSV); err != nil {
//	    return err
//	}
//
// All renderers write to an io.Writer so the same code path serves HTTP
// downloads and CLI file output. WriteFile wraps Write for disk targets.
package exporter
