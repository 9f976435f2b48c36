// Package scanner resolves the input files of an ETL run.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/bankcap-etl/internal/fileutils"
	"fjacquet/bankcap-etl/internal/logging"
)

// FileScanner finds input files matching a glob pattern in a directory.
type FileScanner struct {
	logger logging.Logger
}

// NewFileScanner creates a new FileScanner.
func NewFileScanner(logger logging.Logger) *FileScanner {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FileScanner{
		logger: logger.WithField(logging.FieldComponent, "scanner"),
	}
}

// ScanPattern returns the files, not directories, directly inside dir whose base name
// matches pattern, sorted by name. Hidden files match only a pattern that
// itself starts with a dot. No match is not an error.
func (s *FileScanner) ScanPattern(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		s.logger.WithError(err).Error("Failed to stat input directory", logging.Field{Key: logging.FieldFile, Value: dir})
		return nil, fmt.Errorf("failed to stat input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", pattern, dir, err)
	}

	files := make([]string, 0, len(matches))
	includeHidden := strings.HasPrefix(pattern, ".")
	for _, match := range matches {
		if !includeHidden && strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}
		if fileutils.FileExists(match) {
			files = append(files, match)
		}
	}
	sort.Strings(files)

	s.logger.Info("Resolved input files",
		logging.Field{Key: logging.FieldPattern, Value: pattern},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	return files, nil
}
