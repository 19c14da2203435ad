package cidcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mintprep/internal/logging"
	"mintprep/internal/services/cidtool"
)

// Store persists CID results keyed by file identity (path, size, mtime).
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS cids (
        path TEXT PRIMARY KEY,
        size INTEGER NOT NULL,
        mtime_ns INTEGER NOT NULL,
        cid TEXT NOT NULL,
        created_at TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the cached CID for a file identity, if present.
func (s *Store) Lookup(ctx context.Context, path string, size, mtimeNS int64) (string, bool, error) {
	var cid string
	err := s.db.QueryRowContext(ctx,
		`SELECT cid FROM cids WHERE path = ? AND size = ? AND mtime_ns = ?`,
		path, size, mtimeNS,
	).Scan(&cid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup cid for %s: %w", path, err)
	}
	return cid, true, nil
}

// Save records the CID for a file identity, replacing any stale entry for the
// same path.
func (s *Store) Save(ctx context.Context, path string, size, mtimeNS int64, cid string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cids (path, size, mtime_ns, cid, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET
             size = excluded.size,
             mtime_ns = excluded.mtime_ns,
             cid = excluded.cid,
             created_at = excluded.created_at`,
		path, size, mtimeNS, cid, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save cid for %s: %w", path, err)
	}
	return nil
}

// Client wraps a cidtool.Client with the cache: unchanged files are answered
// from the store without touching the external tool.
type Client struct {
	inner  cidtool.Client
	store  *Store
	logger *slog.Logger
}

// NewClient builds a caching client. A nil store passes everything through.
func NewClient(inner cidtool.Client, store *Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		inner:  inner,
		store:  store,
		logger: logging.NewComponentLogger(logger, "cidcache"),
	}
}

// Compute answers from the cache when the file's size and mtime still match,
// and otherwise delegates to the wrapped client, recording the result.
// Cache faults never fail a computation; they fall back to the tool.
func (c *Client) Compute(ctx context.Context, path string) (string, error) {
	if c.store == nil {
		return c.inner.Compute(ctx, path)
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		// Let the tool surface the real error for a missing file.
		return c.inner.Compute(ctx, path)
	}
	size := info.Size()
	mtimeNS := info.ModTime().UnixNano()

	if cid, ok, err := c.store.Lookup(ctx, path, size, mtimeNS); err != nil {
		c.logger.Warn("cache lookup failed", logging.String("path", path), logging.Error(err))
	} else if ok {
		c.logger.Debug("cache hit", logging.String("path", path))
		return cid, nil
	}

	cid, err := c.inner.Compute(ctx, path)
	if err != nil {
		return "", err
	}
	if err := c.store.Save(ctx, path, size, mtimeNS, cid); err != nil {
		c.logger.Warn("cache save failed", logging.String("path", path), logging.Error(err))
	}
	return cid, nil
}

var _ cidtool.Client = (*Client)(nil)
