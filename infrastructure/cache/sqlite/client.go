// ABOUTME: SQLite backend for the feed render cache
// ABOUTME: Keeps rendered feeds in a local file that survives restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"bliki-feed-api/core/interfaces"
	"bliki-feed-api/pkg/config"
)

const defaultCleanupInterval = 5 * time.Minute

// noExpiry marks rows stored with a zero TTL
const noExpiry = int64(1<<63 - 1)

const schema = `
CREATE TABLE IF NOT EXISTS feed_cache (
	key    TEXT PRIMARY KEY,
	value  BLOB NOT NULL,
	expiry INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS feed_cache_expiry ON feed_cache(expiry);
`

var errEmptyKey = errors.New("key cannot be empty")

// Client stores rendered feeds in a SQLite file. Expired rows are hidden
// from Get immediately and purged every cleanup interval.
type Client struct {
	db       *sqlx.DB
	path     string
	stop     chan struct{}
	stopOnce sync.Once
}

// Stats describes the rows currently in the cache file
type Stats struct {
	Entries int    `db:"entries" json:"entries"`
	Expired int    `db:"expired" json:"expired"`
	Path    string `db:"-" json:"path"`
}

// NewSQLiteCache opens (creating if needed) the cache file at cfg.Path
func NewSQLiteCache(cfg config.SQLiteConfig) (*Client, error) {
	path := cfg.Path
	if path == "" {
		path = "cache.db"
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases consistent across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	c := &Client{db: db, path: path, stop: make(chan struct{})}
	go c.purgeLoop(interval)
	return c, nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errEmptyKey
	}

	var value []byte
	err := c.db.GetContext(ctx, &value,
		`SELECT value FROM feed_cache WHERE key = ? AND expiry > ?`, key, time.Now().UnixNano())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, interfaces.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	return value, nil
}

// Set upserts the entry; a zero ttl never expires
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}

	expiry := noExpiry
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO feed_cache (key, value, expiry) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expiry = excluded.expiry`,
		key, value, expiry)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if _, err := c.db.ExecContext(ctx, `DELETE FROM feed_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (c *Client) purgeLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			_, _ = c.purge(context.Background())
		}
	}
}

// purge deletes expired rows and reports how many went
func (c *Client) purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM feed_cache WHERE expiry <= ?`, time.Now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close stops the purge loop and closes the file. Safe to call twice.
func (c *Client) Close() error {
	first := false
	c.stopOnce.Do(func() {
		close(c.stop)
		first = true
	})
	if !first {
		return nil
	}
	return c.db.Close()
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := c.db.GetContext(ctx, &st,
		`SELECT COUNT(*) AS entries, COALESCE(SUM(expiry <= ?), 0) AS expired FROM feed_cache`,
		time.Now().UnixNano())
	if err != nil {
		return Stats{}, fmt.Errorf("read cache stats: %w", err)
	}
	st.Path = c.path
	return st, nil
}
