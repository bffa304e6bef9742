// Package jsonfile stores the schedule collection as a JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

type persistedData struct {
	Version   int                 `json:"version"`
	Schedules []schedule.Schedule `json:"schedules"`
}

const formatVersion = 1

// Backend implements store.Backend on a single JSON file.
type Backend struct {
	mu       sync.Mutex
	filePath string
}

// New returns a backend for filePath. The file is created on first Save.
func New(filePath string) *Backend {
	return &Backend{filePath: filePath}
}

// Path returns the file location.
func (b *Backend) Path() string {
	return b.filePath
}

// Load reads the collection. A missing file is an empty collection.
func (b *Backend) Load(_ context.Context) ([]schedule.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []schedule.Schedule{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", b.filePath, err)
	}

	var pd persistedData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", b.filePath, err)
	}
	if pd.Schedules == nil {
		pd.Schedules = []schedule.Schedule{}
	}
	return pd.Schedules, nil
}

// Save writes the collection through a temporary file and a rename so a
// crash never leaves a truncated document behind.
func (b *Backend) Save(_ context.Context, schedules []schedule.Schedule) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if schedules == nil {
		schedules = []schedule.Schedule{}
	}
	data, err := json.MarshalIndent(persistedData{Version: formatVersion, Schedules: schedules}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schedules: %w", err)
	}

	dir := filepath.Dir(b.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".schedules-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.filePath); err != nil {
		return fmt.Errorf("replacing %s: %w", b.filePath, err)
	}
	return nil
}
