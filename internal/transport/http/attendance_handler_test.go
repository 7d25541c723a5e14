package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "punchclock/internal/errors"
	"punchclock/internal/files"
	"punchclock/internal/services"
	"punchclock/internal/validation"
)

const sampleLog = `1001 2024-03-04 09:00:00 1 0
1001 2024-03-04 18:00:00 1 1
1002 2024-03-04 08:45:00 1 0
1002 2024-03-04 17:30:00 1 1
`

func newTestRouter(t *testing.T) (chi.Router, *services.AttendanceService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewAttendanceService(logger, nil)
	store := files.NewStore(t.TempDir(), logger)
	uploadValidator := validation.NewUploadValidator(logger, 1<<20, nil)
	errorHandler := apperrors.NewErrorHandler(logger, false)
	handler := NewAttendanceHandler(service, store, uploadValidator, errorHandler, logger, 1<<20)

	r := chi.NewRouter()
	r.Mount("/api/attendance", handler.Routes())
	return r, service
}

func uploadBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadLogEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := uploadBody(t, "attlog.dat", sampleLog)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			FileName  string   `json:"file_name"`
			Employees []string `json:"employees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "attlog.dat", resp.Data.FileName)
	assert.Equal(t, []string{"1001", "1002"}, resp.Data.Employees)
}

func TestUploadLogRejectsBadExtension(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := uploadBody(t, "attlog.csv", sampleLog)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadLogRequiresFileField(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/attendance/upload", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEmployeesEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/employees", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []string `json:"data"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"1001", "1002"}, resp.Data)
	assert.Equal(t, 2, resp.Count)
}

func TestListEmployeesWithoutUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/employees", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var pd map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pd))
	assert.Equal(t, apperrors.TypeLogNotUploaded, pd["type"])
}

func TestGetReportEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/report?employee_id=1001&month=3&year=2024", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			EmployeeID   string `json:"employee_id"`
			DailyRecords []struct {
				Date       string  `json:"date"`
				TotalHours float64 `json:"total_hours"`
				Status     string  `json:"status"`
			} `json:"daily_records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1001", resp.Data.EmployeeID)
	require.Len(t, resp.Data.DailyRecords, 1)
	assert.Equal(t, "2024-03-04", resp.Data.DailyRecords[0].Date)
	assert.InDelta(t, 9.0, resp.Data.DailyRecords[0].TotalHours, 0.001)
	assert.Equal(t, "NORMAL", resp.Data.DailyRecords[0].Status)
}

func TestGetReportQueryValidation(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
	}{
		{"missing employee_id", "/api/attendance/report?month=3&year=2024"},
		{"bad month", "/api/attendance/report?employee_id=1001&month=13&year=2024"},
		{"missing year", "/api/attendance/report?employee_id=1001&month=3"},
		{"non-numeric month", "/api/attendance/report?employee_id=1001&month=abc&year=2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetReportUnknownEmployee(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/report?employee_id=9999&month=3&year=2024", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var pd map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pd))
	assert.Equal(t, apperrors.TypeEmployeeUnknown, pd["type"])
}

func TestGetAllReportsEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/reports?month=3&year=2024", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestExportEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/export/csv?employee_id=1001&month=3&year=2024", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_1001_2024-03.csv")
	assert.Contains(t, w.Body.String(), "2024-03-04")
}

func TestExportUnsupportedFormat(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/export/docx?employee_id=1001&month=3&year=2024", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportsListAndDelete(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	// Nothing saved yet
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/exports", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
		Data  []struct {
			Name   string `json:"name"`
			Format string `json:"format"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)

	// Export with save=true keeps a copy in the store
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/export/csv?employee_id=1001&month=3&year=2024&save=true", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/exports", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "attendance_1001_2024-03.csv", resp.Data[0].Name)
	assert.Equal(t, "csv", resp.Data[0].Format)

	// Delete it again
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete,
		"/api/attendance/exports/attendance_1001_2024-03.csv", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete,
		"/api/attendance/exports/attendance_1001_2024-03.csv", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewAttendanceService(logger, nil)
	handler := NewHealthHandler(service, logger, "test")

	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Nil(t, resp["log"])

	_, err := service.UploadLog(context.Background(), "attlog.dat", []byte(sampleLog))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["log"])
}
