package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"punchclock/internal/attendance"
	"punchclock/internal/exporter"
)

// FileInfo describes one exported report file
type FileInfo struct {
	Name    string    `json:"name"`
	Format  string    `json:"format"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// Store manages exported report files inside a single directory
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "export_store")),
	}
}

// Dir returns the store's directory
func (s *Store) Dir() string {
	return s.dir
}

// Save renders the report in the given format into the store and returns
// the written file's info.
func (s *Store) Save(report *attendance.Report, format string) (FileInfo, error) {
	name := exporter.FileName(report, format)
	path := filepath.Join(s.dir, name)

	if err := exporter.WriteFile(path, report, format); err != nil {
		return FileInfo{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat written export: %w", err)
	}

	s.logger.Info("export saved",
		slog.String("name", name),
		slog.Int64("size", info.Size()))

	return FileInfo{
		Name:    name,
		Format:  formatFromName(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// List returns every export file in the store, newest first
func (s *Store) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export directory %s: %w", s.dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format := formatFromName(entry.Name())
		if format == "" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Open returns the full path of a stored export after checking the name
func (s *Store) Open(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("export %s not found", name)
	}
	return path, nil
}

// Delete removes a stored export by name
func (s *Store) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("export %s not found", name)
		}
		return fmt.Errorf("failed to delete export %s: %w", name, err)
	}

	s.logger.Info("export deleted", slog.String("name", name))
	return nil
}

// Prune deletes exports older than maxAge and returns how many were removed
func (s *Store) Prune(maxAge time.Duration) (int, error) {
	files, err := s.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, file := range files {
		if file.ModTime.Before(cutoff) {
			if err := s.Delete(file.Name); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// checkName rejects names that could escape the store directory
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid export name %q", name)
	}
	if formatFromName(name) == "" {
		return fmt.Errorf("file %q is not a known export format", name)
	}
	return nil
}

// formatFromName maps a file extension to an export format, or ""
func formatFromName(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if exporter.IsSupported(ext) {
		return ext
	}
	return ""
}
