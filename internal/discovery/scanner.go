package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Scanner scans for test source files in a directory
type Scanner struct {
	suffix   string
	skipDirs map[string]bool
	logger   zerolog.Logger
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string, logger zerolog.Logger) *Scanner {
	s := &Scanner{suffix: TestSuffix, logger: logger}
	s.SetSkipDirs(skipDirs)
	return s
}

// SetSkipDirs replaces the directory names never descended into
func (s *Scanner) SetSkipDirs(skipDirs []string) {
	skipMap := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	s.skipDirs = skipMap
}

// Scan finds all test source files below root. Returned paths keep root as
// their prefix, the same way filepath.WalkDir reports them. Directories that
// cannot be read are skipped with a warning.
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), s.suffix) {
			testfiles = append(testfiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return testfiles, nil
}
