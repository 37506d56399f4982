// ABOUTME: Channel metadata of the bliki feed: title, description and blog link
// ABOUTME: Derived from the requested category and whether it is a tag

package blikifeed

import (
	"context"
	"net/url"
	"regexp"
	"unicode"
	"unicode/utf8"

	"bliki-feed-api/core/domain"
	"bliki-feed-api/core/messages"
	"bliki-feed-api/pkg/config"
)

// trailingWiki strips " wiki" from site names such as "Organic Design wiki"
var trailingWiki = regexp.MustCompile(`(?i) *wiki$`)

// Channel is the feed level title, description and link
type Channel struct {
	Title       string
	Description string
	Link        string
}

// buildChannel derives the channel from the first explicitly requested
// category, or from site-wide text when none was requested.
func (s *Service) buildChannel(ctx context.Context, params Params, feed config.FeedConfig, lang string) (Channel, error) {
	category := ""
	if len(params.Requested) > 0 {
		t, err := s.titles.NewFromText(params.Requested[0], domain.NamespaceMain)
		if err != nil {
			return Channel{}, err
		}
		category = t.Text
	}

	fragment := "posts"
	if category != "" {
		tagged, err := s.InCat(ctx, feed.TagCategory, category)
		if err != nil {
			return Channel{}, err
		}
		if tagged {
			fragment = `"` + category + `" posts`
		} else {
			fragment = lcfirst(category)
		}
	}

	query := ""
	if category != "" {
		query = "q=" + url.QueryEscape(category)
	}
	link := s.site.Server
	if blog, err := s.titles.NewFromText(feed.BlogPage, domain.NamespaceMain); err == nil {
		link = s.titles.FullURL(*blog, query)
	}

	return Channel{
		Title:       trailingWiki.ReplaceAllString(s.site.Name, "") + " blog",
		Description: s.messages.Text(lang, messages.BlikiDesc, fragment, s.site.Name),
		Link:        link,
	}, nil
}

func lcfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
