package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(maxBytes int64) *UploadValidator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUploadValidator(logger, maxBytes, nil)
}

func TestValidateFilename(t *testing.T) {
	v := newTestValidator(1024)

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"txt allowed", "scans.txt", false},
		{"dat allowed", "device_dump.dat", false},
		{"log allowed", "attlog.log", false},
		{"uppercase extension", "SCANS.TXT", false},
		{"csv rejected", "scans.csv", true},
		{"no extension", "scans", true},
		{"empty name", "", true},
		{"path traversal", "../etc/passwd.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	v := newTestValidator(100)

	assert.NoError(t, v.ValidateSize(50))
	assert.NoError(t, v.ValidateSize(100))
	assert.Error(t, v.ValidateSize(101))
	assert.Error(t, v.ValidateSize(0))
	assert.Error(t, v.ValidateSize(-1))
}

func TestValidateSizeUnlimited(t *testing.T) {
	v := newTestValidator(0)
	assert.NoError(t, v.ValidateSize(1<<30))
}

func TestValidateContent(t *testing.T) {
	v := newTestValidator(1024)

	assert.NoError(t, v.ValidateContent([]byte("1001 2024-03-04 09:00:00 1 0\n")))
	assert.Error(t, v.ValidateContent(nil))
	assert.Error(t, v.ValidateContent([]byte{0xFF, 0xFE, 0x00}))
}

func TestValidateInputFile(t *testing.T) {
	v := newTestValidator(1024)
	dir := t.TempDir()

	path := filepath.Join(dir, "scans.txt")
	require.NoError(t, os.WriteFile(path, []byte("1001 2024-03-04 09:00:00 1 0\n"), 0644))

	assert.NoError(t, v.ValidateInputFile(path))
	assert.Error(t, v.ValidateInputFile(filepath.Join(dir, "missing.txt")))
	assert.Error(t, v.ValidateInputFile(dir))

	badExt := filepath.Join(dir, "scans.csv")
	require.NoError(t, os.WriteFile(badExt, []byte("x"), 0644))
	assert.Error(t, v.ValidateInputFile(badExt))
}

func TestValidateOutputDirectory(t *testing.T) {
	v := newTestValidator(1024)
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
