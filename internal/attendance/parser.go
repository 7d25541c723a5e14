package attendance

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// parseScanLog tokenizes the raw device log and returns the scans belonging
// to employeeID, sorted by timestamp ascending (stable, so ties keep file
// order). Device logs are noisy, so parsing is permissive: lines with fewer
// than five fields, a non-integer direction field, or an unparseable
// date/time are dropped without error.
//
// Line format: EmployeeID Date Time VerifyMode InOutStatus [extra...]
// with Date = YYYY-MM-DD, Time = HH:MM:SS and InOutStatus 0 for IN, any
// other integer for OUT.
func parseScanLog(logText, employeeID string) []*ScanRecord {
	var records []*ScanRecord

	for _, line := range strings.Split(logText, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if fields[0] != employeeID {
			continue
		}

		status, err := strconv.Atoi(fields[4])
		if err != nil {
			continue
		}
		direction := DirectionOut
		if status == 0 {
			direction = DirectionIn
		}

		timestamp, err := time.Parse(timestampLayout, fields[1]+" "+fields[2])
		if err != nil {
			continue
		}

		records = append(records, &ScanRecord{
			EmployeeID: fields[0],
			Date:       fields[1],
			Time:       fields[2],
			Timestamp:  timestamp,
			Direction:  direction,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	return records
}

// ListEmployeeIDs scans every non-blank line of the log and returns the
// distinct set of first-field identifiers. Numeric identifiers sort by
// value and come before non-numeric ones, which sort lexically.
func ListEmployeeIDs(logText string) []string {
	seen := make(map[string]struct{})
	var ids []string

	for _, line := range strings.Split(logText, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if _, ok := seen[fields[0]]; ok {
			continue
		}
		seen[fields[0]] = struct{}{}
		ids = append(ids, fields[0])
	}

	sort.Slice(ids, func(i, j int) bool {
		ni, iNum := strconv.Atoi(ids[i])
		nj, jNum := strconv.Atoi(ids[j])
		switch {
		case iNum == nil && jNum == nil:
			if ni != nj {
				return ni < nj
			}
			return ids[i] < ids[j]
		case iNum == nil:
			return true
		case jNum == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})

	return ids
}
