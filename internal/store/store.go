// Package store keeps parsed outlines for the service. Trees live in memory;
// with a database path the source text is also persisted to SQLite and trees
// are re-parsed on first access after a restart.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/outlinetree/internal/outline"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for unknown outline ids.
var ErrNotFound = errors.New("outline not found")

// Info describes a stored outline.
type Info struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash"`
	Headers     []string  `json:"headers"`
	TabWidth    int       `json:"tab_width"`
	CreatedAt   time.Time `json:"created_at"`
}

// Outline is a stored outline: its source text and the tree built from it.
type Outline struct {
	Info
	Text string        `json:"-"`
	Tree *outline.Tree `json:"-"`
}

// Store is a thread-safe outline registry.
type Store struct {
	mu    sync.RWMutex
	cache map[string]*Outline
	db    *sql.DB // nil when memory only
}

const schema = `
CREATE TABLE IF NOT EXISTS outlines (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	filename TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	headers JSON NOT NULL,
	tab_width INTEGER NOT NULL DEFAULT 0,
	body TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_outlines_hash ON outlines(content_hash);
`

// NewMemory returns a store without persistence.
func NewMemory() *Store {
	return &Store{cache: make(map[string]*Outline)}
}

// Open returns a store persisted to the SQLite database at dbPath. An empty
// path gives a memory-only store.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return NewMemory(), nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{cache: make(map[string]*Outline), db: db}, nil
}

// Put stores a fully built outline, replacing any with the same id.
func (s *Store) Put(ctx context.Context, o *Outline) error {
	if o.ID == "" {
		return errors.New("outline id is required")
	}
	if o.Tree == nil {
		return fmt.Errorf("outline %s: tree is required", o.ID)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	o.Headers = o.Tree.Headers()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		headers, err := json.Marshal(o.Headers)
		if err != nil {
			return fmt.Errorf("encode headers: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO outlines (id, title, filename, content_hash, headers, tab_width, body, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.Title, o.Filename, o.ContentHash, string(headers), o.TabWidth, o.Text, o.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("insert outline %s: %w", o.ID, err)
		}
	}
	s.cache[o.ID] = o
	return nil
}

// Get returns the outline with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Outline, error) {
	s.mu.RLock()
	o, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return o, nil
	}
	if s.db == nil {
		return nil, ErrNotFound
	}

	// Loading holds the write lock so a concurrent Delete cannot remove the
	// row between the read and the cache insert.
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.cache[id]; ok {
		return o, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, filename, content_hash, headers, tab_width, body, created_at
		FROM outlines WHERE id = ?`, id)
	o, err := scanOutline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load outline %s: %w", id, err)
	}
	o.Tree = outline.Parse(o.Text, outline.WithHeaders(o.Headers...), outline.WithTabWidth(o.TabWidth))
	s.cache[id] = o
	return o, nil
}

// List returns every stored outline, oldest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	if s.db != nil {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, title, filename, content_hash, headers, tab_width, '', created_at
			FROM outlines`)
		if err != nil {
			return nil, fmt.Errorf("list outlines: %w", err)
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			o, err := scanOutline(rows)
			if err != nil {
				return nil, fmt.Errorf("scan outline: %w", err)
			}
			infos = append(infos, o.Info)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list outlines: %w", err)
		}
	} else {
		s.mu.RLock()
		for _, o := range s.cache {
			infos = append(infos, o.Info)
		}
		s.mu.RUnlock()
	}

	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// Delete removes an outline, or returns ErrNotFound. The cache entry is
// evicted only once the row is gone, so a failed delete leaves the outline
// intact.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, cached := s.cache[id]
	if s.db != nil {
		res, err := s.db.ExecContext(ctx, `DELETE FROM outlines WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete outline %s: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 && !cached {
			return ErrNotFound
		}
	} else if !cached {
		return ErrNotFound
	}
	delete(s.cache, id)
	return nil
}

// FindByHash returns the id of an outline with the given content hash.
func (s *Store) FindByHash(ctx context.Context, hash string) (string, bool, error) {
	if s.db != nil {
		var id string
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM outlines WHERE content_hash = ? ORDER BY created_at LIMIT 1`, hash).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("find by hash: %w", err)
		}
		return id, true, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *Outline
	for _, o := range s.cache {
		if o.ContentHash == hash && (found == nil || o.CreatedAt.Before(found.CreatedAt)) {
			found = o
		}
	}
	if found == nil {
		return "", false, nil
	}
	return found.ID, true, nil
}

// Len returns the number of outlines held in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// Close releases the database, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOutline(row scanner) (*Outline, error) {
	var (
		o       Outline
		headers string
		created int64
	)
	if err := row.Scan(&o.ID, &o.Title, &o.Filename, &o.ContentHash, &headers, &o.TabWidth, &o.Text, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(headers), &o.Headers); err != nil {
		return nil, fmt.Errorf("decode headers: %w", err)
	}
	o.CreatedAt = time.UnixMilli(created)
	return &o, nil
}
