package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"runtests/internal/domain"
)

// ErrNoReport is returned by Load before the first run
var ErrNoReport = errors.New("no run report found, run tests first")

// Save writes report atomically while holding the report lock.
func (s *JSONStorage) Save(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	lock := flock.New(s.cfg.GetLockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// Load reads the last run report.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetOutputPath()

	lock := flock.New(s.cfg.GetLockPath())
	if _, err := os.Stat(filepath.Dir(path)); err == nil {
		if err := lock.RLock(); err != nil {
			return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
		}
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}

// atomicWrite writes data to a temp file next to path and renames it into
// place, so readers never observe a partial report.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
