// ABOUTME: Read-only wiki store backed by sqlx for sqlite3 and postgres
// ABOUTME: Serves recent changes, page ids and category membership to the feed service

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"bliki-feed-api/core/domain"
	"bliki-feed-api/pkg/config"
)

// Store reads the wiki database
type Store struct {
	db *sqlx.DB
}

// New connects to the database described by cfg
func New(cfg config.DatabaseConfig) (*Store, error) {
	const op = "storage.sqldb.New"

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot connect to database: %w", op, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	store := NewWithDB(db)
	if cfg.CreateSchema {
		if err := store.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return store, nil
}

// NewWithDB wraps an open connection
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the page, categorylinks and recentchanges tables if missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection
func (s *Store) Close() error {
	return s.db.Close()
}

const changeColumns = `rc.rc_id, rc.rc_timestamp, rc.rc_namespace, rc.rc_title, rc.rc_cur_id,
	rc.rc_user_text, rc.rc_comment, rc.rc_this_oldid, rc.rc_last_oldid, rc.rc_type,
	rc.rc_minor, rc.rc_bot, rc.rc_old_len, rc.rc_new_len`

// RecentChanges returns edits and page creations newer than query.Since on
// pages in any of the query categories, newest first. Bot edits are skipped.
func (s *Store) RecentChanges(ctx context.Context, query domain.ChangesQuery) ([]domain.Change, error) {
	const op = "storage.sqldb.RecentChanges"

	sqlQuery := `SELECT ` + changeColumns + `
		FROM recentchanges rc
		WHERE rc.rc_timestamp >= ?
			AND rc.rc_bot = 0
			AND rc.rc_type IN (?)`
	args := []interface{}{
		query.Since.UTC(),
		[]domain.ChangeType{domain.ChangeEdit, domain.ChangeNew},
	}

	if len(query.Categories) > 0 {
		sqlQuery += `
			AND EXISTS (
				SELECT 1 FROM categorylinks cl
				WHERE cl.cl_from = rc.rc_cur_id AND cl.cl_to IN (?)
			)`
		args = append(args, query.Categories)
	}

	sqlQuery += `
		ORDER BY rc.rc_timestamp DESC, rc.rc_id DESC
		LIMIT ?`
	args = append(args, query.Limit)

	expanded, expandedArgs, err := sqlx.In(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	changes := []domain.Change{}
	if err := s.db.SelectContext(ctx, &changes, s.db.Rebind(expanded), expandedArgs...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return changes, nil
}

// PageID returns the id of the page, or 0 if it does not exist
func (s *Store) PageID(ctx context.Context, title domain.Title) (int64, error) {
	const op = "storage.sqldb.PageID"

	var id int64
	err := s.db.GetContext(ctx, &id,
		s.db.Rebind("SELECT page_id FROM page WHERE page_namespace = ? AND page_title = ?"),
		title.Namespace, title.DBKey())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// IsMemberOfCategory reports whether a categorylinks row joins the page to the category
func (s *Store) IsMemberOfCategory(ctx context.Context, pageID int64, category string) (bool, error) {
	const op = "storage.sqldb.IsMemberOfCategory"

	var found int
	err := s.db.GetContext(ctx, &found,
		s.db.Rebind("SELECT 1 FROM categorylinks WHERE cl_from = ? AND cl_to = ? LIMIT 1"),
		pageID, category)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}
