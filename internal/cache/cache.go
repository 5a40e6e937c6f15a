// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists the most recently fetched set of summarized papers
// and reads it back for question answering.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// ErrCacheEmpty reports that no usable cache exists: nothing was saved yet,
// the stored data is unreadable, or it holds no papers. Callers treat it as
// recoverable.
var ErrCacheEmpty = errors.New("paper cache is empty")

const (
	defaultDir        = ".cache"
	defaultMaxEntries = 50
)

// Store persists Entries. Save replaces whatever was stored before.
type Store interface {
	Save(ctx context.Context, entries *Entries) error
	Load(ctx context.Context) (*Entries, error)
	Close() error
}

// Open returns the store selected by cfg.Backend, creating cfg.Dir if needed.
func Open(cfg types.CacheConfig) (Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = defaultDir
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = defaultMaxEntries
	}
	switch cfg.Backend {
	case "", types.CacheFile:
		return NewFileStore(cfg)
	case types.CacheSQLite:
		return NewSQLiteStore(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
