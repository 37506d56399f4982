// ABOUTME: Serializes a channel and its items as RSS, Atom or JSON Feed
// ABOUTME: Returns the body together with its content type

package blikifeed

import (
	"time"

	"github.com/gorilla/feeds"

	"bliki-feed-api/core/errors"
)

// Content types of the rendered formats
const (
	ContentTypeRSS  = "application/rss+xml; charset=utf-8"
	ContentTypeAtom = "application/atom+xml; charset=utf-8"
	ContentTypeJSON = "application/feed+json; charset=utf-8"
)

// renderers maps each known format to its content type
var renderers = map[string]string{
	"rss":  ContentTypeRSS,
	"atom": ContentTypeAtom,
	"json": ContentTypeJSON,
}

// Render serializes a channel and its items in the given format. comments
// maps item ids to discussion URLs; only RSS has a place for them.
func Render(format string, channel Channel, items []*feeds.Item, comments map[string]string, now time.Time) ([]byte, string, error) {
	contentType, ok := renderers[format]
	if !ok {
		return nil, "", &errors.InvalidFeedFormatError{Format: format}
	}

	updated := now
	if len(items) > 0 && !items[0].Updated.IsZero() {
		updated = items[0].Updated
	}

	feed := &feeds.Feed{
		Title:       channel.Title,
		Link:        &feeds.Link{Href: channel.Link},
		Description: channel.Description,
		Id:          channel.Link,
		Updated:     updated,
		Items:       items,
	}

	var (
		body string
		err  error
	)
	switch format {
	case "atom":
		body, err = feed.ToAtom()
	case "json":
		body, err = feed.ToJSON()
	default:
		rss := (&feeds.Rss{Feed: feed}).RssFeed()
		for i, item := range rss.Items {
			item.Comments = comments[items[i].Id]
		}
		body, err = feeds.ToXML(rss)
	}
	if err != nil {
		return nil, "", err
	}
	return []byte(body), contentType, nil
}
