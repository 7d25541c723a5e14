// Package attendance converts a raw stream of biometric time-clock scans
// into a monthly attendance report: paired work sessions, worked-hours
// totals, anomaly classification and per-day scan detail.
//
// # Architecture
//
// The package is one single-pass pipeline whose stages feed each other
// strictly in order:
//
//	log text → parser → dedup → session pairer → period filter → daily aggregator → Report
//
// 1. Parser: tokenizes raw lines into typed scan records for one employee
// 2. Deduplicator: collapses rapid repeated same-direction scans
// 3. Session Pairer: a two-state machine turning scans into IN/OUT sessions
// 4. Period Filter: keeps sessions attributed to the requested month
// 5. Daily Aggregator: groups by day and assembles the report
//
// # Usage
//
//	ids := attendance.ListEmployeeIDs(logText)
//	report := attendance.BuildReport(logText, "101", 3, 2024)
//
// # Concurrency
//
// BuildReport is a pure function with no shared state: one call per
// employee can run on its own goroutine without locking.
//
// # Error Handling
//
// Parsing is deliberately permissive because real device logs are noisy.
// Malformed lines are dropped silently; an empty period yields a valid
// report with zero counters, never an error.
package attendance
