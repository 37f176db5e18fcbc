package content

import (
	"fmt"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Cache memoizes extracted document metadata in a small SQLite database so
// repeated runs do not re-parse unchanged notebooks. Entries are keyed by
// path and invalidated by size/mtime mismatch. The cache is strictly an
// optimization - lookup misses and storage failures only get logged,
// extraction falls through.
type Cache struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

const cacheSchema = `CREATE TABLE IF NOT EXISTS metadata (
	path  TEXT PRIMARY KEY,
	size  INTEGER NOT NULL,
	mtime INTEGER NOT NULL,
	title TEXT NOT NULL,
	blurb TEXT NOT NULL
)`

// OpenCache opens (creating when necessary) the metadata cache at path.
func OpenCache(path string, log *zap.Logger) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open metadata cache: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare metadata cache schema: %w", err)
	}
	return &Cache{conn: conn, log: log.Named("cache")}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Get returns the cached metadata for path when size and mtime still match.
func (c *Cache) Get(path string, size, mtime int64) (Meta, bool) {
	if c == nil {
		return Meta{}, false
	}

	var (
		meta Meta
		hit  bool
	)
	err := sqlitex.Execute(c.conn, `SELECT title, blurb FROM metadata WHERE path=? AND size=? AND mtime=?`,
		&sqlitex.ExecOptions{
			Args: []any{path, size, mtime},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				meta.Title = stmt.ColumnText(0)
				meta.Blurb = stmt.ColumnText(1)
				hit = true
				return nil
			}})
	if err != nil {
		c.log.Warn("Metadata cache lookup failed", zap.String("path", path), zap.Error(err))
		return Meta{}, false
	}
	return meta, hit
}

// Put stores extracted metadata for path, replacing any stale entry.
func (c *Cache) Put(path string, size, mtime int64, meta Meta) {
	if c == nil {
		return
	}

	err := sqlitex.Execute(c.conn, `INSERT OR REPLACE INTO metadata (path, size, mtime, title, blurb) VALUES (?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{path, size, mtime, meta.Title, meta.Blurb}})
	if err != nil {
		c.log.Warn("Metadata cache store failed", zap.String("path", path), zap.Error(err))
	}
}
