// ABOUTME: Storage interfaces for reading wiki data
// ABOUTME: Defines read-only contracts for recent changes, pages and category links

package interfaces

import (
	"context"

	"bliki-feed-api/core/domain"
)

// ChangesSource provides recent changes rows
type ChangesSource interface {
	// RecentChanges returns changes matching the query, newest first.
	// An empty result is not an error.
	RecentChanges(ctx context.Context, query domain.ChangesQuery) ([]domain.Change, error)
}

// PageRepository resolves titles to page ids
type PageRepository interface {
	// PageID returns the id of the page, or 0 when the page does not exist
	PageID(ctx context.Context, title domain.Title) (int64, error)
}

// CategoryRepository answers category membership queries
type CategoryRepository interface {
	// IsMemberOfCategory reports whether the page is linked to the category.
	// category is the category name in database key form.
	IsMemberOfCategory(ctx context.Context, pageID int64, category string) (bool, error)
}

// WikiStore combines the read-only stores used by the feed service
type WikiStore interface {
	ChangesSource
	PageRepository
	CategoryRepository

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}
