package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"punchclock/internal/attendance"
	apperrors "punchclock/internal/errors"
	"punchclock/internal/exporter"
	"punchclock/internal/infrastructure"
)

// maxConcurrentBuilds caps the number of report builds running in
// parallel during a bulk build.
const maxConcurrentBuilds = 4

// ReportRequest identifies one employee's report for one period
type ReportRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Month      int    `json:"month" validate:"min=1,max=12"`
	Year       int    `json:"year" validate:"min=2000,max=2100"`
}

// UploadResult describes an accepted scan-log upload
type UploadResult struct {
	FileName   string    `json:"file_name"`
	SizeBytes  int       `json:"size_bytes"`
	Employees  []string  `json:"employees"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AttendanceService owns the uploaded scan log and builds reports from it.
// All methods are safe for concurrent use.
type AttendanceService struct {
	mu         sync.RWMutex
	logText    string
	fileName   string
	uploadedAt time.Time

	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
	validate *validator.Validate
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceService{
		logger:   logger.With(slog.String("component", "attendance_service")),
		metrics:  metrics,
		validate: validator.New(),
	}
}

// UploadLog replaces the current scan log with the uploaded content and
// returns the employee IDs found in it.
func (s *AttendanceService) UploadLog(ctx context.Context, fileName string, data []byte) (*UploadResult, error) {
	logText := string(data)
	employees := attendance.ListEmployeeIDs(logText)

	s.mu.Lock()
	s.logText = logText
	s.fileName = fileName
	s.uploadedAt = time.Now()
	uploadedAt := s.uploadedAt
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.UploadsReceived.Add(ctx, 1)
	}

	s.logger.InfoContext(ctx, "scan log uploaded",
		slog.String("file_name", fileName),
		slog.Int("size_bytes", len(data)),
		slog.Int("employee_count", len(employees)))

	return &UploadResult{
		FileName:   fileName,
		SizeBytes:  len(data),
		Employees:  employees,
		UploadedAt: uploadedAt,
	}, nil
}

// HasLog reports whether a scan log has been uploaded
func (s *AttendanceService) HasLog() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logText != ""
}

// LogInfo returns the current upload's file name and timestamp
func (s *AttendanceService) LogInfo() (fileName string, uploadedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logText == "" {
		return "", time.Time{}, false
	}
	return s.fileName, s.uploadedAt, true
}

// snapshot returns the current log text or an error when none is loaded
func (s *AttendanceService) snapshot() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logText == "" {
		return "", apperrors.ErrNoLogUploaded
	}
	return s.logText, nil
}

// ListEmployees returns every employee ID present in the uploaded log
func (s *AttendanceService) ListEmployees(ctx context.Context) ([]string, error) {
	logText, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	employees := attendance.ListEmployeeIDs(logText)
	s.logger.DebugContext(ctx, "listed employees",
		slog.Int("count", len(employees)))
	return employees, nil
}

// BuildReport builds the attendance report for one employee and period
func (s *AttendanceService) BuildReport(ctx context.Context, req ReportRequest) (*attendance.Report, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrValidation("report_request", err.Error())
	}

	logText, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	if !s.employeeKnown(logText, req.EmployeeID) {
		return nil, apperrors.ErrEmployeeUnknown
	}

	start := time.Now()
	report := attendance.BuildReport(logText, req.EmployeeID, req.Month, req.Year)
	elapsed := time.Since(start)

	infrastructure.RecordReportBuilt(ctx, s.metrics, req.EmployeeID, elapsed.Seconds())

	s.logger.InfoContext(ctx, "report built",
		slog.String("employee_id", req.EmployeeID),
		slog.String("period", fmt.Sprintf("%04d-%02d", req.Year, req.Month)),
		slog.Int("days", report.Summary.TotalDaysWithRecords),
		slog.Duration("duration", elapsed))

	return report, nil
}

// BuildAllReports builds reports for every employee in the log for one
// period. Builds run concurrently; results are ordered by employee ID.
func (s *AttendanceService) BuildAllReports(ctx context.Context, month, year int) ([]*attendance.Report, error) {
	logText, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	employees := attendance.ListEmployeeIDs(logText)
	reports := make([]*attendance.Report, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBuilds)

	for i, employeeID := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = attendance.BuildReport(logText, employeeID, month, year)
			infrastructure.RecordReportBuilt(gctx, s.metrics, employeeID, 0)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].EmployeeID < reports[j].EmployeeID
	})

	s.logger.InfoContext(ctx, "bulk report build complete",
		slog.Int("employee_count", len(employees)),
		slog.String("period", fmt.Sprintf("%04d-%02d", year, month)))

	return reports, nil
}

// Export builds the report and renders it in the requested format to w.
// It returns the canonical download file name.
func (s *AttendanceService) Export(ctx context.Context, w io.Writer, req ReportRequest, format string) (string, error) {
	if !exporter.IsSupported(format) {
		return "", apperrors.ErrValidation("format",
			fmt.Sprintf("unsupported format %q", format))
	}

	report, err := s.BuildReport(ctx, req)
	if err != nil {
		return "", err
	}

	if err := exporter.Write(w, report, format); err != nil {
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("employee_id", req.EmployeeID),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return "", apperrors.ExportError(format, err)
	}

	infrastructure.RecordExportWritten(ctx, s.metrics, format)

	fileName := exporter.FileName(report, format)
	s.logger.InfoContext(ctx, "report exported",
		slog.String("employee_id", req.EmployeeID),
		slog.String("format", format),
		slog.String("file_name", fileName))

	return fileName, nil
}

// employeeKnown reports whether the employee appears in the log
func (s *AttendanceService) employeeKnown(logText, employeeID string) bool {
	for _, id := range attendance.ListEmployeeIDs(logText) {
		if id == employeeID {
			return true
		}
	}
	return false
}
