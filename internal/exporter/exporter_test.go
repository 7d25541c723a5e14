package exporter

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/attendance"
)

func sampleReport() *attendance.Report {
	return &attendance.Report{
		EmployeeID: "1001",
		Month:      3,
		Year:       2024,
		Summary: attendance.ReportSummary{
			TotalDaysWithRecords: 2,
			TotalNormalDays:      1,
			TotalOutMissingDays:  1,
		},
		DailyRecords: []attendance.DailyRecord{
			{
				Date:       "2024-03-04",
				InTime:     "09:00:00",
				OutTime:    "18:00:00",
				TotalHours: 9,
				ScanCount:  2,
				Status:     attendance.StatusNormal,
				Logs: []attendance.ScanLogEntry{
					{Date: "2024-03-04", Time: "09:00:00", Direction: attendance.DirectionIn},
					{Date: "2024-03-04", Time: "18:00:00", Direction: attendance.DirectionOut},
				},
			},
			{
				Date:       "2024-03-05",
				InTime:     "08:55:00",
				OutTime:    "-",
				TotalHours: attendance.FallbackHours,
				ScanCount:  1,
				Status:     attendance.StatusOutMissing,
				Logs: []attendance.ScanLogEntry{
					{Date: "2024-03-05", Time: "08:55:00", Direction: attendance.DirectionIn},
				},
			},
		},
	}
}

func TestFileName(t *testing.T) {
	report := sampleReport()
	assert.Equal(t, "attendance_1001_2024-03.csv", FileName(report, FormatCSV))
	assert.Equal(t, "attendance_1001_2024-03.xlsx", FileName(report, FormatXLSX))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("csv"))
	assert.True(t, IsSupported("XLSX"))
	assert.False(t, IsSupported("docx"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleReport(), CSVOptions{BOMPrefix: true})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "expected UTF-8 BOM prefix")
	assert.Contains(t, out, "Employee ID,1001")
	assert.Contains(t, out, "Period,2024-03")
	assert.Contains(t, out, "2024-03-04,09:00:00,18:00:00,9.00,2,NORMAL,no")
	assert.Contains(t, out, "2024-03-05,08:55:00,-,8.00,1,OUT_MISSING,no")
	assert.Contains(t, out, "Days With Records,2")
	assert.NotContains(t, out, "Scan Log")
}

func TestWriteCSVIncludeLogs(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleReport(), CSVOptions{IncludeLogs: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Scan Log")
	assert.Contains(t, out, "2024-03-04,09:00:00,IN,no")
	assert.Contains(t, out, "2024-03-05,08:55:00,IN,no")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, sampleReport())
	require.NoError(t, err)

	// XLSX files are ZIP containers
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, sampleReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteZIP(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	err := WriteZIP(&buf, report)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"attendance_1001_2024-03.csv",
		"attendance_1001_2024-03.xlsx",
		"attendance_1001_2024-03.pdf",
	}, names)
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleReport(), "docx")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "out.csv")

	err := WriteFile(path, sampleReport(), FormatCSV)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Employee ID,1001")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "9.50", formatFloat(9.5))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "3", formatInt(3))
	assert.Equal(t, "yes", formatBool(true))
	assert.Equal(t, "no", formatBool(false))
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "x", orDash("x"))
}
