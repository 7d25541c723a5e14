// Package services contains the application service layer sitting between
// the HTTP transport and the attendance pipeline.
//
// # Architecture
//
// AttendanceService owns the uploaded scan log and serves every report
// operation from it. The log is held in memory under a read-write mutex;
// uploading a new log replaces the previous one wholesale. Report builds
// are pure reads and may run concurrently.
//
// # Usage
//
//	svc := services.NewAttendanceService(logger, metrics)
//	employees, err := svc.UploadLog(ctx, "attlog.dat", data)
//	report, err := svc.BuildReport(ctx, services.ReportRequest{
//	    EmployeeID: "1001", Month: 3, Year: 2024,
//	})
package services
