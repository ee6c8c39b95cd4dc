// Package dataset persists the production history as a flat JSON
// document keyed by day start time. The file is read fully and
// rewritten fully on each merge cycle; there are no partial updates.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"solartally/internal/production"
)

// Dataset is the persisted document shape: {"stats": [...]}.
type Dataset struct {
	Stats []production.RawDailyRecord `json:"stats"`
}

// Store reads and writes the dataset file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the dataset file location.
func (s *Store) Path() string { return s.path }

// Load reads the full dataset. A missing file yields an empty dataset
// so a fresh deployment bootstraps cleanly.
func (s *Store) Load() (Dataset, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Dataset{Stats: []production.RawDailyRecord{}}, nil
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	if d.Stats == nil {
		d.Stats = []production.RawDailyRecord{}
	}
	return d, nil
}

// Save rewrites the dataset atomically: the pretty-printed document is
// written to a temp file in the same directory and renamed into place,
// so a failed write never corrupts the committed state.
func (s *Store) Save(d Dataset) error {
	payload, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dataset directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp dataset: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}
