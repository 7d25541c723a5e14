package attendance

import (
	"time"
)

// pairSessions folds the chronological, duplicate-free scan sequence into
// work sessions. The machine is greedy and strictly sequential: it never
// looks ahead, never re-pairs a closed session, and matches purely by
// arrival order. The single piece of state is the IN scan currently held
// open awaiting its OUT.
//
// An IN arriving while another IN is held closes the held one as
// OUT_MISSING. An OUT with no held IN is an orphan, assumed to close an
// unrecorded shift from the previous calendar day. An OUT whose calendar
// date differs from its IN's marks the session as crossing midnight and is
// still reported under the shift's start day.
func pairSessions(records []*ScanRecord) []Session {
	var sessions []Session
	var openIn *ScanRecord

	for _, r := range records {
		if r.IsDuplicate {
			continue
		}

		switch r.Direction {
		case DirectionIn:
			if openIn != nil {
				sessions = append(sessions, Session{
					AttributedDate: openIn.Date,
					InScan:         openIn,
					Status:         StatusOutMissing,
				})
			}
			r.ReportDate = r.Date
			openIn = r

		case DirectionOut:
			if openIn != nil {
				r.ReportDate = openIn.Date
				sessions = append(sessions, Session{
					AttributedDate:  openIn.Date,
					InScan:          openIn,
					OutScan:         r,
					Status:          StatusNormal,
					CrossesMidnight: r.Date != openIn.Date,
				})
				openIn = nil
				continue
			}
			prev := previousDay(r.Date)
			r.ReportDate = prev
			sessions = append(sessions, Session{
				AttributedDate: prev,
				OutScan:        r,
				Status:         StatusNoInRecord,
			})
		}
	}

	if openIn != nil {
		sessions = append(sessions, Session{
			AttributedDate: openIn.Date,
			InScan:         openIn,
			Status:         StatusOutMissing,
		})
	}

	return sessions
}

// previousDay returns the calendar day before date in YYYY-MM-DD form.
func previousDay(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, -1).Format(DateLayout)
}
