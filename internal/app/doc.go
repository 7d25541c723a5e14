// Package app wires the application together: configuration, logging,
// OpenTelemetry, the attendance service, and the HTTP server with its
// middleware chain. cmd/web is a thin shell around app.New and app.Run.
package app
