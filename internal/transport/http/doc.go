// Package http contains the HTTP transport layer: chi handlers that
// translate requests into service calls and render JSON envelopes or
// file downloads.
//
// # Endpoints
//
//	POST /api/attendance/upload          multipart scan-log upload
//	GET  /api/attendance/employees       employee IDs in the uploaded log
//	GET  /api/attendance/report          one employee's monthly report
//	GET  /api/attendance/reports         every employee's monthly report
//	GET  /api/attendance/export/{format} report download (csv, xlsx, pdf, zip)
//	GET  /api/health                     liveness and upload state
//
// Errors are rendered as RFC 7807 problem documents by the shared
// ErrorHandler.
package http
