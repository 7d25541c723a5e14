package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/config"
)

// The OpenTelemetry prometheus exporter registers collectors globally, so
// the full application is built once and shared across subtests.
func TestApplication(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.ReportsDir = filepath.Join(dir, "data", "reports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Logging.Output = "stdout"
	cfg.Security.RateLimit.Enabled = false

	application, err := NewWithConfig(cfg)
	require.NoError(t, err)

	router := application.Router()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route renders problem json", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "json")
	})

	t.Run("upload then report", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "attlog.dat")
		require.NoError(t, err)
		_, err = part.Write([]byte("1001 2024-03-04 09:00:00 1 0\n1001 2024-03-04 18:00:00 1 1\n"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/attendance/upload", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/attendance/report?employee_id=1001&month=3&year=2024", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2024-03-04")
	})

	t.Run("request id header set", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
