// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	cacheFile     = "papers.yaml"
	formatVersion = 1
)

// cacheDocument is the on-disk layout of papers.yaml.
type cacheDocument struct {
	Version int                     `yaml:"version"`
	SavedAt time.Time               `yaml:"saved_at"`
	Papers  []types.SummarizedPaper `yaml:"papers"`
}

// FileStore keeps the cache in a single YAML file under the cache directory.
// Writes go through a temp file and rename so readers never see a partial file.
type FileStore struct {
	mu         sync.Mutex
	path       string
	maxEntries int
}

// NewFileStore creates cfg.Dir and returns a store for cfg.Dir/papers.yaml.
func NewFileStore(cfg types.CacheConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{path: filepath.Join(cfg.Dir, cacheFile), maxEntries: cfg.MaxEntries}, nil
}

// Path returns the cache file location.
func (s *FileStore) Path() string { return s.path }

// Save overwrites the cache file with entries.
func (s *FileStore) Save(_ context.Context, entries *Entries) error {
	doc := cacheDocument{
		Version: formatVersion,
		SavedAt: time.Now().UTC(),
		Papers:  entries.Papers(),
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), cacheFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Load reads the cache file. A missing, corrupt, or empty file yields ErrCacheEmpty.
func (s *FileStore) Load(_ context.Context) (*Entries, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheEmpty, err)
	}

	var doc cacheDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCacheEmpty, s.path, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported cache version %d", ErrCacheEmpty, doc.Version)
	}
	if len(doc.Papers) == 0 {
		return nil, ErrCacheEmpty
	}
	return NewEntries(s.maxEntries, doc.Papers...), nil
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error { return nil }
