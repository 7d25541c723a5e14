package attendance

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// BuildReport runs the full reconciliation pipeline for one employee and
// one month: parse, deduplicate, pair, filter to the requested period and
// aggregate per day. It is a pure function of its inputs, holds all records
// in memory and performs no I/O, so concurrent calls are independent.
//
// A log with no matching scans for the period yields a valid report with an
// empty DailyRecords slice and zero summary counters, not an error. The
// caller is responsible for passing a month in 1..12 and a plausible year.
func BuildReport(logText, employeeID string, month, year int) *Report {
	records := parseScanLog(logText, employeeID)
	markDuplicates(records)
	sessions := pairSessions(records)
	resolveDuplicateDates(records)

	period := fmt.Sprintf("%04d-%02d", year, month)
	byDate := make(map[string][]Session)
	for _, s := range sessions {
		// Filter on the session's attributed date, not the raw scan dates:
		// a shift whose OUT crossed into the next month still reports under
		// the month its IN fell in.
		if !strings.HasPrefix(s.AttributedDate, period) {
			continue
		}
		byDate[s.AttributedDate] = append(byDate[s.AttributedDate], s)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	report := &Report{
		EmployeeID:   employeeID,
		Month:        month,
		Year:         year,
		DailyRecords: make([]DailyRecord, 0, len(dates)),
	}

	for _, date := range dates {
		daily := buildDailyRecord(date, byDate[date], records)
		report.DailyRecords = append(report.DailyRecords, daily)

		report.Summary.TotalDaysWithRecords++
		switch daily.Status {
		case StatusNormal:
			report.Summary.TotalNormalDays++
		case StatusOutMissing:
			report.Summary.TotalOutMissingDays++
		}
	}

	return report
}

// buildDailyRecord aggregates the sessions attributed to one calendar day.
// records is the full timestamp-sorted scan list, used to collect the
// day's scan log (duplicates included).
func buildDailyRecord(date string, sessions []Session, records []*ScanRecord) DailyRecord {
	daily := DailyRecord{
		Date:    date,
		InTime:  "-",
		OutTime: "-",
		Status:  StatusNormal,
		Logs:    []ScanLogEntry{},
	}

	var hours float64
	for _, s := range sessions {
		if s.InScan != nil && daily.InTime == "-" {
			daily.InTime = s.InScan.Time
		}
		if s.OutScan != nil {
			daily.OutTime = s.OutScan.Time
		}

		if s.Status == StatusNormal {
			hours += s.OutScan.Timestamp.Sub(s.InScan.Timestamp).Hours()
		} else {
			// A half-paired session still credits a nominal full day.
			hours += FallbackHours
		}

		if s.CrossesMidnight {
			daily.CrossesMidnight = true
		}

		// OUT_MISSING takes precedence over NO_IN_RECORD for the day.
		switch s.Status {
		case StatusOutMissing:
			daily.Status = StatusOutMissing
		case StatusNoInRecord:
			if daily.Status != StatusOutMissing {
				daily.Status = StatusNoInRecord
			}
		}
	}
	daily.TotalHours = math.Round(hours*100) / 100

	for _, r := range records {
		if r.ReportDate != date {
			continue
		}
		daily.ScanCount++
		daily.Logs = append(daily.Logs, ScanLogEntry{
			Date:        r.Date,
			Time:        r.Time,
			Direction:   r.Direction,
			IsDuplicate: r.IsDuplicate,
		})
	}

	return daily
}
