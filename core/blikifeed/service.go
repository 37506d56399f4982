// ABOUTME: Bliki feed service turns categorised recent changes into syndication feeds
// ABOUTME: Provides business logic for the feed endpoint independent of the HTTP layer

package blikifeed

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"bliki-feed-api/core/domain"
	"bliki-feed-api/core/errors"
	"bliki-feed-api/core/interfaces"
	"bliki-feed-api/core/messages"
	"bliki-feed-api/core/title"
	"bliki-feed-api/pkg/config"
	timeutil "bliki-feed-api/pkg/utils/time"
)

// Document is a rendered feed ready to be written to the client
type Document struct {
	Format       string `json:"format"`
	ContentType  string `json:"content_type"`
	Body         []byte `json:"body"`
	Items        int    `json:"items"`
	CacheControl string `json:"-"`
	Cached       bool   `json:"-"`
}

// Service builds bliki feeds
type Service struct {
	deps     interfaces.Dependencies
	site     config.SiteConfig
	titles   *title.Resolver
	messages *messages.Catalog
	feed     atomic.Pointer[config.FeedConfig]
	now      func() time.Time
}

// NewService creates a new feed service instance
func NewService(deps interfaces.Dependencies, site config.SiteConfig, feed config.FeedConfig) *Service {
	titles := title.NewResolver(site.Server)
	if site.ArticlePath != "" {
		titles.ArticlePath = site.ArticlePath
	}
	if site.Script != "" {
		titles.Script = site.Script
	}

	s := &Service{
		deps:     deps,
		site:     site,
		titles:   titles,
		messages: messages.NewCatalog(site.Language),
		now:      time.Now,
	}
	s.feed.Store(&feed)
	return s
}

// UpdateFeedConfig swaps the feed settings used by subsequent requests
func (s *Service) UpdateFeedConfig(cfg config.FeedConfig) {
	s.feed.Store(&cfg)
}

// FeedConfig returns the feed settings currently in effect
func (s *Service) FeedConfig() config.FeedConfig {
	return *s.feed.Load()
}

// Language returns the best interface language for a request
func (s *Service) Language(req Request) string {
	return s.messages.Match(req.UseLang, req.AcceptLanguage)
}

// Handle serves one feed request
func (s *Service) Handle(ctx context.Context, req Request) (*Document, error) {
	cfg := s.FeedConfig()

	if !cfg.Enabled {
		return nil, &errors.FeedUnavailableError{}
	}

	params, err := ResolveParams(req, cfg)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(cfg.Formats, params.FeedFormat) {
		return nil, &errors.InvalidFeedFormatError{Format: params.FeedFormat, Allowed: cfg.Formats}
	}

	if params.DaysFromFallback {
		s.logDebug("Using fallback day window", map[string]interface{}{
			"days": params.Days,
		})
	}

	policy := NewCachePolicy(req.SMaxAge, req.MaxAge, cfg.MinMaxAge)
	lang := s.Language(req)
	key := cacheKey(params, cfg, lang)

	if doc := s.getCachedDocument(ctx, key); doc != nil {
		doc.CacheControl = policy.Header()
		return doc, nil
	}

	categories := make([]string, 0, len(params.Categories))
	for _, name := range params.Categories {
		t, err := s.titles.NewFromText(name, domain.NamespaceCategory)
		if err != nil {
			return nil, err
		}
		categories = append(categories, t.DBKey())
	}

	now := s.now().UTC()
	since := params.Since(now)
	rows, err := s.deps.Store.RecentChanges(ctx, domain.ChangesQuery{
		Categories: categories,
		Since:      since,
		Limit:      params.Limit,
	})
	if err != nil {
		return nil, errors.WrapError(err, "failed to list recent changes")
	}

	channel, err := s.buildChannel(ctx, params, cfg, lang)
	if err != nil {
		return nil, err
	}

	items := s.BuildItems(rows, lang)
	body, contentType, err := Render(params.FeedFormat, channel, items, s.CommentLinks(rows), now)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Format:       params.FeedFormat,
		ContentType:  contentType,
		Body:         body,
		Items:        len(items),
		CacheControl: policy.Header(),
	}

	s.cacheDocument(ctx, key, doc, policy.SMaxAge)

	s.logDebug("Rendered bliki feed", map[string]interface{}{
		"format":     params.FeedFormat,
		"categories": params.Categories,
		"items":      len(items),
		"since":      timeutil.FormatTimestamp(since),
		"lang":       lang,
	})

	return doc, nil
}

// InCat reports whether the page named by pageTitle is a member of category.
// Unknown pages and invalid names are not members.
func (s *Service) InCat(ctx context.Context, category, pageTitle string) (bool, error) {
	page, err := s.titles.NewFromText(pageTitle, domain.NamespaceMain)
	if err != nil {
		return false, nil
	}
	cat, err := s.titles.NewFromText(category, domain.NamespaceCategory)
	if err != nil {
		return false, nil
	}

	id, err := s.deps.Store.PageID(ctx, *page)
	if err != nil {
		return false, err
	}
	if id == 0 {
		return false, nil
	}

	return s.deps.Store.IsMemberOfCategory(ctx, id, cat.DBKey())
}

// cacheKey identifies a rendered document by everything that affects its body
func cacheKey(params Params, cfg config.FeedConfig, lang string) string {
	from := ""
	if !params.From.IsZero() {
		from = params.From.Format(time.RFC3339)
	}
	raw := strings.Join([]string{
		params.FeedFormat,
		fmt.Sprint(params.Days),
		fmt.Sprint(params.Limit),
		from,
		strings.Join(params.Categories, "|"),
		strings.Join(params.Requested, "|"),
		cfg.BlogPage,
		cfg.TagCategory,
		lang,
	}, "\x00")

	sum := sha1.Sum([]byte(raw))
	return "blikifeed:" + hex.EncodeToString(sum[:])
}

// getCachedDocument returns a previously rendered document or nil
func (s *Service) getCachedDocument(ctx context.Context, key string) *Document {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, interfaces.ErrCacheMiss) {
			s.logWarn("Feed cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	doc.Cached = true
	return &doc
}

// cacheDocument stores a rendered document; failures only cost a re-render
func (s *Service) cacheDocument(ctx context.Context, key string, doc *Document, ttl time.Duration) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, ttl); err != nil {
		s.logWarn("Feed cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
