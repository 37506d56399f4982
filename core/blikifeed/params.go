// ABOUTME: Request parameters of the bliki feed and their effective values
// ABOUTME: Resolves defaults without mutating the inbound request

package blikifeed

import (
	"strings"
	"time"

	"bliki-feed-api/core/errors"
	"bliki-feed-api/pkg/config"
	timeutil "bliki-feed-api/pkg/utils/time"
)

// DefaultFormat is used when the request does not name a feed format
const DefaultFormat = "rss"

// MaxDays bounds the day window; larger values are clamped to it
const MaxDays = 36500

// Request holds the raw inbound parameters. Zero values mean "not given".
type Request struct {
	// FeedFormat is rss, atom or another configured format
	FeedFormat string

	// Days limits the results to changes from the last n days
	Days int

	// Limit is the maximum number of items
	Limit int

	// From only includes changes since this timestamp
	From string

	// Categories restricts the feed to pages in any of these categories
	Categories []string

	// SMaxAge is the shared cache lifetime requested by the caller, in seconds
	SMaxAge int

	// MaxAge is the client cache lifetime requested by the caller, in seconds
	MaxAge int

	// UseLang is an explicit interface language
	UseLang string

	// AcceptLanguage is the Accept-Language header of the request
	AcceptLanguage string
}

// Params are the effective parameters after defaults have been applied
type Params struct {
	FeedFormat string
	Days       int
	Limit      int
	From       time.Time

	// Categories is the effective category filter
	Categories []string

	// Requested holds the categories the caller named explicitly; the feed
	// title and link are derived from these, not from the default filter
	Requested []string

	// DaysFromFallback is set when Days came from the fallback window
	DaysFromFallback bool
}

// ParseCategories splits a multi-value parameter on "|" and drops empty values
func ParseCategories(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var categories []string
	for _, part := range strings.Split(value, "|") {
		if part = strings.TrimSpace(part); part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}

// ResolveParams applies configured defaults to a request. The request is not modified.
func ResolveParams(req Request, cfg config.FeedConfig) (Params, error) {
	params := Params{
		FeedFormat: strings.ToLower(strings.TrimSpace(req.FeedFormat)),
		Days:       req.Days,
		Limit:      req.Limit,
	}

	if params.FeedFormat == "" {
		params.FeedFormat = DefaultFormat
	}

	for _, category := range req.Categories {
		if category = strings.TrimSpace(category); category != "" {
			params.Requested = append(params.Requested, category)
		}
	}
	if len(params.Requested) > 0 {
		params.Categories = append([]string(nil), params.Requested...)
	} else {
		params.Categories = []string{cfg.DefaultCategory}
	}

	switch {
	case params.Days < 0:
		return Params{}, &errors.ValidationError{Field: "days", Message: "must be at least 1"}
	case params.Days == 0 && cfg.DefaultDays > 0:
		params.Days = cfg.DefaultDays
	case params.Days == 0:
		params.Days = cfg.FallbackDays
		params.DaysFromFallback = true
	}
	params.Days = min(params.Days, MaxDays)

	switch {
	case params.Limit < 0:
		return Params{}, &errors.ValidationError{Field: "limit", Message: "must be at least 1"}
	case params.Limit == 0:
		params.Limit = cfg.DefaultLimit
	}
	if params.Limit > cfg.Limit {
		params.Limit = cfg.Limit
	}

	if req.From != "" {
		params.From = timeutil.ParseFlexibleTime(req.From)
		if params.From.IsZero() {
			return Params{}, &errors.ValidationError{Field: "from", Message: "invalid timestamp: " + req.From}
		}
	}

	return params, nil
}

// Since returns the oldest change time to include: the later of the day
// window and the from timestamp.
func (p Params) Since(now time.Time) time.Time {
	since := now.AddDate(0, 0, -min(p.Days, MaxDays))
	if p.From.After(since) {
		return p.From
	}
	return since
}
