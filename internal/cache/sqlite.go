// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const dbFile = "papers.db"

// SQLiteStore keeps the cache in a SQLite database. Insertion order is kept
// in the seq column.
type SQLiteStore struct {
	mu         sync.Mutex
	db         *sql.DB
	maxEntries int
}

// NewSQLiteStore opens or creates cfg.Dir/papers.db and its schema.
func NewSQLiteStore(cfg types.CacheConfig) (*SQLiteStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db, maxEntries: cfg.MaxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		abstract TEXT NOT NULL,
		authors TEXT NOT NULL,
		published TEXT NOT NULL,
		pdf_url TEXT NOT NULL,
		summary TEXT NOT NULL
	)`)
	return err
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the table contents with entries in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries *Entries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing papers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (seq, id, title, abstract, authors, published, pdf_url, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range entries.Papers() {
		authorsJSON, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", p.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			i, p.ID, p.Title, p.Abstract, string(authorsJSON),
			p.Published.UTC().Format(time.RFC3339Nano), p.PDFURL, p.Summary,
		)
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Load reads all rows in insertion order. An empty table yields ErrCacheEmpty.
func (s *SQLiteStore) Load(ctx context.Context) (*Entries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, abstract, authors, published, pdf_url, summary
		 FROM papers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying papers: %v", ErrCacheEmpty, err)
	}
	defer rows.Close()

	entries := NewEntries(s.maxEntries)
	for rows.Next() {
		var (
			p                      types.SummarizedPaper
			authorsJSON, published string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &authorsJSON, &published, &p.PDFURL, &p.Summary); err != nil {
			return nil, fmt.Errorf("%w: scanning paper: %v", ErrCacheEmpty, err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("%w: decoding authors for %s: %v", ErrCacheEmpty, p.ID, err)
		}
		t, err := time.Parse(time.RFC3339Nano, published)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing published for %s: %v", ErrCacheEmpty, p.ID, err)
		}
		p.Published = t.UTC()
		entries.Put(p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating papers: %v", ErrCacheEmpty, err)
	}
	if entries.Len() == 0 {
		return nil, ErrCacheEmpty
	}
	return entries, nil
}
