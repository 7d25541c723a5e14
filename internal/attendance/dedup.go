package attendance

// markDuplicates walks the chronologically sorted scan list once and flags
// device double-reads: a scan with the same direction as the last accepted
// scan, arriving within DuplicateWindow of it. Flagged scans are excluded
// from pairing but stay visible in the per-day scan log, displayed under
// their donor's report date (resolved after pairing via the donor link).
func markDuplicates(records []*ScanRecord) {
	var lastValid *ScanRecord

	for _, r := range records {
		if lastValid != nil &&
			r.Direction == lastValid.Direction &&
			r.Timestamp.Sub(lastValid.Timestamp) < DuplicateWindow {
			r.IsDuplicate = true
			r.donor = lastValid
			continue
		}
		r.IsDuplicate = false
		lastValid = r
	}
}

// resolveDuplicateDates copies each duplicate's report date from its donor.
// Must run after pairing, once donors have their final attribution.
func resolveDuplicateDates(records []*ScanRecord) {
	for _, r := range records {
		if r.IsDuplicate && r.donor != nil {
			r.ReportDate = r.donor.ReportDate
		}
	}
}
