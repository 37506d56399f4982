// ABOUTME: Converts recent change rows into gorilla/feeds items
// ABOUTME: Builds revision permalinks and talk page links for each change

package blikifeed

import (
	"strconv"

	"github.com/gorilla/feeds"

	"bliki-feed-api/core/domain"
	"bliki-feed-api/core/messages"
)

// BuildItems converts change rows into feed items, preserving row order
func (s *Service) BuildItems(rows []domain.Change, lang string) []*feeds.Item {
	items := make([]*feeds.Item, 0, len(rows))
	for _, row := range rows {
		t := row.PageTitle()
		link := s.titles.FullURL(t, "")

		description := row.Comment
		if row.IsNew() {
			newPage := s.messages.Text(lang, messages.BlikiNewPage)
			if description == "" {
				description = newPage
			} else {
				description = newPage + ": " + description
			}
		}

		items = append(items, &feeds.Item{
			Title:       t.PrefixedText(),
			Link:        &feeds.Link{Href: link},
			Id:          s.itemID(row),
			Description: description,
			Author:      &feeds.Author{Name: row.User},
			Created:     row.Timestamp,
			Updated:     row.Timestamp,
		})
	}
	return items
}

// CommentLinks maps each item id to the URL of its page's talk page
func (s *Service) CommentLinks(rows []domain.Change) map[string]string {
	links := make(map[string]string, len(rows))
	for _, row := range rows {
		links[s.itemID(row)] = s.titles.FullURL(row.PageTitle().TalkPage(), "")
	}
	return links
}

// itemID is the permanent URL of the revision a change produced
func (s *Service) itemID(row domain.Change) string {
	t := row.PageTitle()
	if row.ThisOldID > 0 {
		return s.titles.FullURL(t, "oldid="+strconv.FormatInt(row.ThisOldID, 10))
	}
	return s.titles.FullURL(t, "")
}
