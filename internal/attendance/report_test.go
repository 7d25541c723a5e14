package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "101 2024-03-01 09:00:00 1 0\n" +
	"101 2024-03-01 18:00:00 1 1\n" +
	"101 2024-03-02 09:05:00 1 0\n"

func TestBuildReportEndToEnd(t *testing.T) {
	report := BuildReport(sampleLog, "101", 3, 2024)
	require.NotNil(t, report)

	assert.Equal(t, "101", report.EmployeeID)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2024, report.Year)
	require.Len(t, report.DailyRecords, 2)

	day1 := report.DailyRecords[0]
	assert.Equal(t, "2024-03-01", day1.Date)
	assert.Equal(t, StatusNormal, day1.Status)
	assert.Equal(t, 9.0, day1.TotalHours)
	assert.Equal(t, "09:00:00", day1.InTime)
	assert.Equal(t, "18:00:00", day1.OutTime)
	assert.Equal(t, 2, day1.ScanCount)

	day2 := report.DailyRecords[1]
	assert.Equal(t, "2024-03-02", day2.Date)
	assert.Equal(t, StatusOutMissing, day2.Status)
	assert.Equal(t, 8.0, day2.TotalHours)
	assert.Equal(t, "09:05:00", day2.InTime)
	assert.Equal(t, "-", day2.OutTime)

	assert.Equal(t, ReportSummary{
		TotalDaysWithRecords: 2,
		TotalNormalDays:      1,
		TotalOutMissingDays:  1,
	}, report.Summary)
}

func TestBuildReportIsPure(t *testing.T) {
	first := BuildReport(sampleLog, "101", 3, 2024)
	second := BuildReport(sampleLog, "101", 3, 2024)
	assert.Equal(t, first, second)
}

func TestBuildReportEmptyPeriod(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		month      int
		year       int
	}{
		{name: "no matching employee", employeeID: "999", month: 3, year: 2024},
		{name: "no records in month", employeeID: "101", month: 4, year: 2024},
		{name: "no records in year", employeeID: "101", month: 3, year: 2023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := BuildReport(sampleLog, tt.employeeID, tt.month, tt.year)
			require.NotNil(t, report)
			assert.Empty(t, report.DailyRecords)
			assert.NotNil(t, report.DailyRecords)
			assert.Equal(t, ReportSummary{}, report.Summary)
		})
	}
}

func TestBuildReportDoubleTap(t *testing.T) {
	logText := "101 2024-03-01 09:00:00 1 0\n" +
		"101 2024-03-01 09:10:00 1 0\n" +
		"101 2024-03-01 17:10:00 1 1\n"

	report := BuildReport(logText, "101", 3, 2024)
	require.Len(t, report.DailyRecords, 1)

	day := report.DailyRecords[0]
	assert.Equal(t, StatusNormal, day.Status)
	// First IN is the one paired; the second is flagged but stays visible.
	assert.Equal(t, "09:00:00", day.InTime)
	assert.InDelta(t, 8.17, day.TotalHours, 0.01)
	assert.Equal(t, 3, day.ScanCount)
	require.Len(t, day.Logs, 3)
	assert.False(t, day.Logs[0].IsDuplicate)
	assert.True(t, day.Logs[1].IsDuplicate)
	assert.False(t, day.Logs[2].IsDuplicate)
}

func TestBuildReportCrossMidnight(t *testing.T) {
	logText := "101 2024-01-31 23:50:00 1 0\n" +
		"101 2024-02-01 00:10:00 1 1\n"

	report := BuildReport(logText, "101", 1, 2024)
	require.Len(t, report.DailyRecords, 1)

	day := report.DailyRecords[0]
	assert.Equal(t, "2024-01-31", day.Date)
	assert.True(t, day.CrossesMidnight)
	assert.InDelta(t, 0.33, day.TotalHours, 0.01)
	assert.Equal(t, 2, day.ScanCount)

	// The whole session belongs to January; February must be empty.
	feb := BuildReport(logText, "101", 2, 2024)
	assert.Empty(t, feb.DailyRecords)
}

func TestBuildReportOrphanOut(t *testing.T) {
	logText := "101 2024-03-05 06:10:00 1 1\n"

	report := BuildReport(logText, "101", 3, 2024)
	require.Len(t, report.DailyRecords, 1)

	day := report.DailyRecords[0]
	assert.Equal(t, "2024-03-04", day.Date)
	assert.Equal(t, StatusNoInRecord, day.Status)
	assert.Equal(t, 8.0, day.TotalHours)
	assert.Equal(t, "-", day.InTime)
	assert.Equal(t, "06:10:00", day.OutTime)
}

func TestBuildReportStatusPrecedence(t *testing.T) {
	t.Run("out missing beats normal", func(t *testing.T) {
		// A paired morning session plus an IN left open at end of stream.
		logText := "101 2024-03-04 09:00:00 1 0\n" +
			"101 2024-03-04 13:00:00 1 1\n" +
			"101 2024-03-04 14:30:00 1 0\n"

		report := BuildReport(logText, "101", 3, 2024)
		require.Len(t, report.DailyRecords, 1)

		day := report.DailyRecords[0]
		assert.Equal(t, "2024-03-04", day.Date)
		assert.Equal(t, StatusOutMissing, day.Status)
		// 4h paired plus the 8h fallback for the open IN.
		assert.Equal(t, 12.0, day.TotalHours)
	})

	t.Run("no in record beats normal", func(t *testing.T) {
		// A paired session on the 4th plus a next-morning orphan OUT that
		// attributes back to the 4th.
		logText := "101 2024-03-04 09:00:00 1 0\n" +
			"101 2024-03-04 17:00:00 1 1\n" +
			"101 2024-03-05 06:10:00 1 1\n"

		report := BuildReport(logText, "101", 3, 2024)
		require.Len(t, report.DailyRecords, 1)

		day := report.DailyRecords[0]
		assert.Equal(t, "2024-03-04", day.Date)
		assert.Equal(t, StatusNoInRecord, day.Status)
		assert.Equal(t, 16.0, day.TotalHours)
		assert.Equal(t, 3, day.ScanCount)
	})
}

func TestBuildReportHoursNeverNegative(t *testing.T) {
	logText := "101 2024-03-01 09:00:00 1 0\n" +
		"101 2024-03-01 09:00:00 1 1\n"

	report := BuildReport(logText, "101", 3, 2024)
	require.Len(t, report.DailyRecords, 1)
	assert.GreaterOrEqual(t, report.DailyRecords[0].TotalHours, 0.0)
}

func TestBuildReportLogsSortedByTimestamp(t *testing.T) {
	logText := "101 2024-03-01 18:00:00 1 1\n" +
		"101 2024-03-01 09:00:00 1 0\n"

	report := BuildReport(logText, "101", 3, 2024)
	require.Len(t, report.DailyRecords, 1)

	logs := report.DailyRecords[0].Logs
	require.Len(t, logs, 2)
	assert.Equal(t, "09:00:00", logs[0].Time)
	assert.Equal(t, "18:00:00", logs[1].Time)
}
