package blikifeed

import (
	"math"
	"testing"
	"time"

	"github.com/gorilla/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bliki-feed-api/core/errors"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"Blog", []string{"Blog"}},
		{"Blog|Cooking", []string{"Blog", "Cooking"}},
		{"Blog||  |News ", []string{"Blog", "News"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategories(tt.input))
		})
	}
}

func TestResolveParams(t *testing.T) {
	cfg := testFeedConfig()

	tests := []struct {
		name    string
		req     Request
		check   func(t *testing.T, p Params)
		wantErr bool
	}{
		{
			name: "all defaults",
			req:  Request{},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "rss", p.FeedFormat)
				assert.Equal(t, 7, p.Days)
				assert.Equal(t, 20, p.Limit)
				assert.Equal(t, []string{"Blog"}, p.Categories)
				assert.Empty(t, p.Requested)
				assert.True(t, p.From.IsZero())
				assert.False(t, p.DaysFromFallback)
			},
		},
		{
			name: "explicit values kept",
			req:  Request{FeedFormat: "Atom", Days: 3, Limit: 10, Categories: []string{"News", " "}},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, "atom", p.FeedFormat)
				assert.Equal(t, 3, p.Days)
				assert.Equal(t, 10, p.Limit)
				assert.Equal(t, []string{"News"}, p.Categories)
				assert.Equal(t, []string{"News"}, p.Requested)
			},
		},
		{
			name: "limit clamped to maximum",
			req:  Request{Limit: 5000},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 50, p.Limit)
			},
		},
		{
			name: "from parsed",
			req:  Request{From: "2015-06-01T00:00:00Z"},
			check: func(t *testing.T, p Params) {
				assert.True(t, p.From.Equal(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)))
			},
		},
		{name: "negative days", req: Request{Days: -1}, wantErr: true},
		{name: "negative limit", req: Request{Limit: -5}, wantErr: true},
		{name: "bad from", req: Request{From: "yesterday-ish"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveParams(tt.req, cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestResolveParams_FallbackDays(t *testing.T) {
	cfg := testFeedConfig()
	cfg.DefaultDays = 0

	p, err := ResolveParams(Request{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1000, p.Days)
	assert.True(t, p.DaysFromFallback)

	p, err = ResolveParams(Request{Days: 2}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Days)
	assert.False(t, p.DaysFromFallback)
}

func TestResolveParams_DoesNotMutateRequest(t *testing.T) {
	req := Request{Categories: []string{"News"}}
	original := Request{Categories: []string{"News"}}

	p, err := ResolveParams(req, testFeedConfig())
	require.NoError(t, err)
	p.Categories[0] = "Changed"
	p.Requested[0] = "Changed"

	assert.Equal(t, original, req)

	// Omitted parameters stay omitted on the request
	empty := Request{}
	_, err = ResolveParams(empty, testFeedConfig())
	require.NoError(t, err)
	assert.Equal(t, Request{}, empty)
}

func TestParams_Since(t *testing.T) {
	now := time.Date(2015, 6, 10, 0, 0, 0, 0, time.UTC)

	p := Params{Days: 7}
	assert.True(t, now.AddDate(0, 0, -7).Equal(p.Since(now)))

	p.From = now.AddDate(0, 0, -2)
	assert.True(t, p.From.Equal(p.Since(now)), "later from wins")

	p.From = now.AddDate(0, 0, -30)
	assert.True(t, now.AddDate(0, 0, -7).Equal(p.Since(now)), "earlier from is ignored")
}

func TestResolveParams_HugeDayWindow(t *testing.T) {
	now := time.Date(2015, 6, 10, 12, 0, 0, 0, time.UTC)

	for _, days := range []int{200000, math.MaxInt} {
		params, err := ResolveParams(Request{Days: days}, testFeedConfig())
		require.NoError(t, err)
		assert.Equal(t, MaxDays, params.Days)

		since := params.Since(now)
		assert.True(t, since.Before(now), "days=%d gave %v", days, since)
		assert.Equal(t, 1915, since.Year())
	}

	// Params built directly are bounded too
	since := Params{Days: math.MaxInt}.Since(now)
	assert.True(t, since.Before(now))
}

func TestCachePolicy(t *testing.T) {
	tests := []struct {
		name    string
		sMaxAge int
		maxAge  int
		floor   time.Duration
		want    string
	}{
		{"absent", 0, 0, 15 * time.Second, "public, s-maxage=15, max-age=15"},
		{"above floor", 600, 120, 15 * time.Second, "public, s-maxage=600, max-age=120"},
		{"mixed", 600, 3, 15 * time.Second, "public, s-maxage=600, max-age=15"},
		{"unset floor uses default", 0, 0, 0, "public, s-maxage=15, max-age=15"},
		{"custom floor", 10, 0, time.Minute, "public, s-maxage=60, max-age=60"},
		{"one year", 31536000, 31536000, 15 * time.Second, "public, s-maxage=31536000, max-age=31536000"},
		{"beyond a year is capped", 10000000000, 40000000, 15 * time.Second, "public, s-maxage=31536000, max-age=31536000"},
		{"max int", math.MaxInt, math.MaxInt, 15 * time.Second, "public, s-maxage=31536000, max-age=31536000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCachePolicy(tt.sMaxAge, tt.maxAge, tt.floor).Header())
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, _, err := Render("rdf", Channel{Title: "x", Link: "https://wiki.test"}, nil, nil, time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidFeedFormat(err))
}

func TestRender_EmptyFeedUsesNow(t *testing.T) {
	now := time.Date(2015, 6, 10, 12, 0, 0, 0, time.UTC)

	body, contentType, err := Render("atom", Channel{Title: "Wiki blog", Link: "https://wiki.test/wiki/Blog"}, []*feeds.Item{}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeAtom, contentType)
	assert.Contains(t, string(body), "2015-06-10T12:00:00Z")
}

func TestLcfirst(t *testing.T) {
	assert.Equal(t, "foo", lcfirst("Foo"))
	assert.Equal(t, "éclair", lcfirst("Éclair"))
	assert.Equal(t, "", lcfirst(""))
}
