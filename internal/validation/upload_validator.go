package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// UploadValidator checks scan-log uploads before they reach the parser.
// Every rejection here is a hard error; the parser itself drops malformed
// lines silently but never rejects a whole upload.
type UploadValidator struct {
	logger            *slog.Logger
	maxBytes          int64
	allowedExtensions []string
}

// NewUploadValidator creates a new upload validator
func NewUploadValidator(logger *slog.Logger, maxBytes int64, allowedExtensions []string) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{".txt", ".dat", ".log"}
	}
	return &UploadValidator{
		logger:            logger,
		maxBytes:          maxBytes,
		allowedExtensions: allowedExtensions,
	}
}

// ValidateFilename checks the upload's file name and extension
func (v *UploadValidator) ValidateFilename(name string) error {
	if name == "" {
		return fmt.Errorf("file name is empty")
	}

	base := filepath.Base(name)
	if base != name || strings.Contains(name, "..") {
		v.logger.Warn("Rejected upload with path traversal in name",
			slog.String("filename", name))
		return fmt.Errorf("file name %s contains path separators", name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range v.allowedExtensions {
		if ext == allowed {
			return nil
		}
	}

	v.logger.Warn("Rejected upload with disallowed extension",
		slog.String("filename", name),
		slog.String("extension", ext))
	return fmt.Errorf("file extension %s is not allowed (allowed: %s)",
		ext, strings.Join(v.allowedExtensions, ", "))
}

// ValidateSize checks the declared upload size against the configured cap
func (v *UploadValidator) ValidateSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if v.maxBytes > 0 && size > v.maxBytes {
		v.logger.Warn("Rejected oversized upload",
			slog.Int64("size", size),
			slog.Int64("max_bytes", v.maxBytes))
		return fmt.Errorf("payload too large: %d bytes exceeds limit of %d", size, v.maxBytes)
	}
	return nil
}

// ValidateContent checks that the upload body is plausible scan-log text
func (v *UploadValidator) ValidateContent(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}
	if !utf8.Valid(data) {
		v.logger.Warn("Rejected upload with invalid encoding",
			slog.Int("size", len(data)))
		return fmt.Errorf("file content is not valid UTF-8 text")
	}
	return nil
}

// ValidateInputFile checks that a scan-log file on disk exists, is readable,
// and passes the same name, size, and content checks as an HTTP upload.
func (v *UploadValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if err := v.ValidateFilename(filepath.Base(path)); err != nil {
		return err
	}
	if err := v.ValidateSize(info.Size()); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the export directory exists and is writable
func (v *UploadValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
