package exporter

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"punchclock/internal/attendance"
)

// WriteZIP bundles the CSV, XLSX, and PDF renderings of the report into a
// single archive. Entries are deflated with klauspost's flate.
func WriteZIP(w io.Writer, report *attendance.Report) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	entries := []struct {
		format string
		render func(io.Writer, *attendance.Report) error
	}{
		{FormatCSV, func(out io.Writer, r *attendance.Report) error {
			return WriteCSV(out, r, CSVOptions{BOMPrefix: true, IncludeLogs: true})
		}},
		{FormatXLSX, WriteXLSX},
		{FormatPDF, WritePDF},
	}

	for _, entry := range entries {
		ew, err := zw.Create(FileName(report, entry.format))
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to create archive entry %s: %w", entry.format, err)
		}
		if err := entry.render(ew, report); err != nil {
			zw.Close()
			return fmt.Errorf("failed to render archive entry %s: %w", entry.format, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
