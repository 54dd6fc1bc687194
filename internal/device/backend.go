package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/padprofile/internal/model"
)

// Backend loads and stores device config snapshots.
type Backend interface {
	Load() (*model.Config, error)
	Save(cfg *model.Config) error
}

// MemoryBackend keeps the snapshot in memory.
type MemoryBackend struct {
	mu  sync.Mutex
	cfg *model.Config
}

// NewMemoryBackend creates a backend holding a copy of cfg.
func NewMemoryBackend(cfg *model.Config) *MemoryBackend {
	return &MemoryBackend{cfg: cfg.Clone()}
}

// Load returns a copy of the held snapshot.
func (b *MemoryBackend) Load() (*model.Config, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg == nil {
		return &model.Config{}, nil
	}
	return b.cfg.Clone(), nil
}

// Save replaces the held snapshot with a copy of cfg.
func (b *MemoryBackend) Save(cfg *model.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cfg = cfg.Clone()
	return nil
}

// FileBackend keeps the snapshot in a JSON file.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend creates a backend for the snapshot file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the snapshot file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the snapshot file. A missing file yields an empty config.
func (b *FileBackend) Load() (*model.Config, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.Config{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var cfg model.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", b.path, err)
	}
	return &cfg, nil
}

// Save writes the snapshot file atomically.
func (b *FileBackend) Save(cfg *model.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(b.path), 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// Write atomically via temp file
	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return os.Rename(tmpPath, b.path)
}
