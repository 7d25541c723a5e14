package attendance

import (
	"time"
)

// Direction identifies whether a scan is a clock-in or a clock-out event.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// SessionStatus classifies a work session by how complete its scan pair is.
type SessionStatus string

const (
	// StatusNormal is a fully paired IN/OUT session.
	StatusNormal SessionStatus = "NORMAL"
	// StatusOutMissing is an IN scan that never received a matching OUT.
	StatusOutMissing SessionStatus = "OUT_MISSING"
	// StatusNoInRecord is an orphan OUT scan attributed to the previous day.
	StatusNoInRecord SessionStatus = "NO_IN_RECORD"
)

const (
	// DuplicateWindow is the interval within which a second same-direction
	// scan is treated as a device double-read rather than a new clock event.
	DuplicateWindow = time.Hour

	// FallbackHours is credited for each session that is missing one of its
	// scans, so an incomplete day still contributes a nominal full day.
	FallbackHours = 8.0
)

// Date and time layouts used by the raw device log format.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	timestampLayout = DateLayout + " " + TimeLayout
)

// ScanRecord is one biometric clock event for one employee.
// IsDuplicate and ReportDate are assigned during deduplication and pairing;
// all other fields are fixed at parse time.
type ScanRecord struct {
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Timestamp   time.Time `json:"timestamp"`
	Direction   Direction `json:"direction"`
	IsDuplicate bool      `json:"is_duplicate"`
	ReportDate  string    `json:"report_date"`

	// donor is the accepted scan this duplicate shadows. Duplicates inherit
	// the donor's report date once pairing has resolved it.
	donor *ScanRecord
}

// Session is a paired or half-paired IN/OUT work interval attributed to one
// calendar day. Exactly one of InScan/OutScan may be nil, never both.
type Session struct {
	AttributedDate  string        `json:"attributed_date"`
	InScan          *ScanRecord   `json:"in_scan,omitempty"`
	OutScan         *ScanRecord   `json:"out_scan,omitempty"`
	Status          SessionStatus `json:"status"`
	CrossesMidnight bool          `json:"crosses_midnight"`
}

// ScanLogEntry is the display form of a scan inside a DailyRecord.
type ScanLogEntry struct {
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Direction   Direction `json:"direction"`
	IsDuplicate bool      `json:"is_duplicate"`
}

// DailyRecord is the aggregated attendance result for one calendar day.
type DailyRecord struct {
	Date            string         `json:"date" validate:"required"`
	InTime          string         `json:"in_time"`
	OutTime         string         `json:"out_time"`
	TotalHours      float64        `json:"total_hours" validate:"min=0"`
	ScanCount       int            `json:"scan_count" validate:"min=0"`
	Status          SessionStatus  `json:"status" validate:"required,oneof=NORMAL OUT_MISSING NO_IN_RECORD"`
	CrossesMidnight bool           `json:"crosses_midnight"`
	Logs            []ScanLogEntry `json:"logs"`
}

// ReportSummary holds the day-level counters for one report period.
type ReportSummary struct {
	TotalDaysWithRecords int `json:"total_days_with_records" validate:"min=0"`
	TotalNormalDays      int `json:"total_normal_days" validate:"min=0"`
	TotalOutMissingDays  int `json:"total_out_missing_days" validate:"min=0"`
}

// Report is the terminal output of the reconciliation pipeline. Export
// renderers format its fields verbatim and never recompute hours or status.
type Report struct {
	EmployeeID   string        `json:"employee_id" validate:"required"`
	Month        int           `json:"month" validate:"min=1,max=12"`
	Year         int           `json:"year" validate:"required"`
	Summary      ReportSummary `json:"summary"`
	DailyRecords []DailyRecord `json:"daily_records"`
}
