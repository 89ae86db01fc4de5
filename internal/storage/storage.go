package storage

import (
	"runtests/internal/config"
	"runtests/internal/domain"
)

// Storage persists and loads the report of the last run
type Storage interface {
	Save(report *domain.RunReport) error
	Load() (*domain.RunReport, error)
}

// JSONStorage stores the report in a JSON file under the configured output path
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
