package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "punchclock/internal/errors"
	"punchclock/internal/exporter"
	"punchclock/internal/files"
	"punchclock/internal/services"
	"punchclock/internal/validation"
)

// AttendanceHandler serves the attendance API
type AttendanceHandler struct {
	service      *services.AttendanceService
	store        *files.Store
	validator    *validation.UploadValidator
	errorHandler *apperrors.ErrorHandler
	logger       *slog.Logger
	maxUpload    int64
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	service *services.AttendanceService,
	store *files.Store,
	uploadValidator *validation.UploadValidator,
	errorHandler *apperrors.ErrorHandler,
	logger *slog.Logger,
	maxUpload int64,
) *AttendanceHandler {
	return &AttendanceHandler{
		service:      service,
		store:        store,
		validator:    uploadValidator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "attendance_handler")),
		maxUpload:    maxUpload,
	}
}

// Routes returns the attendance API routes
func (h *AttendanceHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.UploadLog)
	r.Get("/employees", h.ListEmployees)
	r.Get("/report", h.GetReport)
	r.Get("/reports", h.GetAllReports)
	r.Get("/export/{format}", h.ExportReport)
	r.Get("/exports", h.ListExports)
	r.Delete("/exports/{name}", h.DeleteExport)

	return r
}

// UploadLog handles POST /api/attendance/upload
func (h *AttendanceHandler) UploadLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apperrors.ErrValidation("file",
			"multipart field 'file' is required"))
		return
	}
	defer file.Close()

	if err := h.validator.ValidateFilename(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.ErrValidation("file", err.Error()))
		return
	}
	if err := h.validator.ValidateSize(header.Size); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.ErrPayloadTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apperrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateContent(data); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.ErrValidation("file", err.Error()))
		return
	}

	result, err := h.service.UploadLog(ctx, header.Filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// ListEmployees handles GET /api/attendance/employees
func (h *AttendanceHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   employees,
		"count":  len(employees),
	})
}

// GetReport handles GET /api/attendance/report
func (h *AttendanceHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequestFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.BuildReport(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetAllReports handles GET /api/attendance/reports
func (h *AttendanceHandler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	reports, err := h.service.BuildAllReports(r.Context(), month, year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   reports,
		"count":  len(reports),
	})
}

// ExportReport handles GET /api/attendance/export/{format}
func (h *AttendanceHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if !exporter.IsSupported(format) {
		h.errorHandler.HandleError(w, r, apperrors.ErrValidation("format",
			"supported formats: "+strings.Join(exporter.SupportedFormats, ", ")))
		return
	}

	req, err := reportRequestFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// Headers must be written before the body, so the report is rendered
	// into memory first and streamed afterwards.
	var buf bytes.Buffer
	fileName, err := h.service.Export(r.Context(), &buf, req, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// ?save=true also keeps a copy in the export store
	if r.URL.Query().Get("save") == "true" && h.store != nil {
		report, buildErr := h.service.BuildReport(r.Context(), req)
		if buildErr == nil {
			if _, saveErr := h.store.Save(report, format); saveErr != nil {
				h.logger.WarnContext(r.Context(), "failed to save export copy",
					slog.String("error", saveErr.Error()))
			}
		}
	}

	w.Header().Set("Content-Type", exporter.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ListExports handles GET /api/attendance/exports
func (h *AttendanceHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	exports, err := h.store.List()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   exports,
		"count":  len(exports),
	})
}

// DeleteExport handles DELETE /api/attendance/exports/{name}
func (h *AttendanceHandler) DeleteExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.Delete(name); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NotFoundError("export "+name))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
	})
}

// reportRequestFromQuery extracts and checks report query parameters
func reportRequestFromQuery(r *http.Request) (services.ReportRequest, error) {
	employeeID := strings.TrimSpace(r.URL.Query().Get("employee_id"))
	if employeeID == "" {
		return services.ReportRequest{}, apperrors.ErrValidation("employee_id", "employee_id is required")
	}

	month, year, err := periodFromQuery(r)
	if err != nil {
		return services.ReportRequest{}, err
	}

	return services.ReportRequest{EmployeeID: employeeID, Month: month, Year: year}, nil
}

// periodFromQuery extracts the month and year query parameters
func periodFromQuery(r *http.Request) (month, year int, err error) {
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.ErrValidation("month", "month must be an integer between 1 and 12")
	}

	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, apperrors.ErrValidation("year", "year must be an integer between 2000 and 2100")
	}

	return month, year, nil
}
