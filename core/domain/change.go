// ABOUTME: Change domain model represents one row of the recent changes list
// ABOUTME: Also defines the query used to select changes for a feed

package domain

import (
	"strings"
	"time"
)

// ChangeType classifies a recent change
type ChangeType int

// Change types as stored in the recent changes table
const (
	ChangeEdit ChangeType = 0
	ChangeNew  ChangeType = 1
	ChangeLog  ChangeType = 3
)

// Change describes one recent edit or page event
type Change struct {
	ID        int64      `db:"rc_id"`
	Timestamp time.Time  `db:"rc_timestamp"`
	Namespace Namespace  `db:"rc_namespace"`
	Title     string     `db:"rc_title"`
	PageID    int64      `db:"rc_cur_id"`
	User      string     `db:"rc_user_text"`
	Comment   string     `db:"rc_comment"`
	ThisOldID int64      `db:"rc_this_oldid"`
	LastOldID int64      `db:"rc_last_oldid"`
	Type      ChangeType `db:"rc_type"`
	Minor     bool       `db:"rc_minor"`
	Bot       bool       `db:"rc_bot"`
	OldLen    int64      `db:"rc_old_len"`
	NewLen    int64      `db:"rc_new_len"`
}

// PageTitle returns the title of the changed page
func (c *Change) PageTitle() Title {
	return Title{
		Namespace: c.Namespace,
		Text:      strings.ReplaceAll(c.Title, "_", " "),
	}
}

// IsNew reports whether the change created the page
func (c *Change) IsNew() bool {
	return c.Type == ChangeNew
}

// SizeDelta returns the change in page length in bytes
func (c *Change) SizeDelta() int64 {
	return c.NewLen - c.OldLen
}

// ChangesQuery selects recent changes for a feed
type ChangesQuery struct {
	// Categories holds category database keys; a page in any of them matches
	Categories []string

	// Since is the oldest timestamp to include
	Since time.Time

	// Limit caps the number of rows returned
	Limit int
}
