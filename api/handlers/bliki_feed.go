// ABOUTME: Bliki feed handlers for the Huma API
// ABOUTME: Serves categorised recent changes as RSS, Atom or JSON feeds

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"bliki-feed-api/core/blikifeed"
)

// FeedService interface defines the methods needed from the feed service
type FeedService interface {
	Handle(ctx context.Context, req blikifeed.Request) (*blikifeed.Document, error)
	InCat(ctx context.Context, category, title string) (bool, error)
}

// BlikiFeedHandler handles feed-related HTTP requests
type BlikiFeedHandler struct {
	feedService FeedService
}

// NewBlikiFeedHandler creates a new feed handler
func NewBlikiFeedHandler(feedService FeedService) *BlikiFeedHandler {
	return &BlikiFeedHandler{
		feedService: feedService,
	}
}

// RegisterRoutes registers all feed-related routes
func (h *BlikiFeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "blikiFeed",
		Method:      http.MethodGet,
		Path:        "/api/blikifeed",
		Summary:     "Bliki feed",
		Description: "Returns recent changes to pages in the given categories as a syndication feed",
		Tags:        []string{"Feeds"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.BlikiFeed)

	huma.Register(api, huma.Operation{
		OperationID: "categoryMembership",
		Method:      http.MethodGet,
		Path:        "/api/categorymembership",
		Summary:     "Check category membership",
		Description: "Reports whether a page belongs to a category",
		Tags:        []string{"Categories"},
	}, h.CategoryMembership)
}

// BlikiFeedInput defines the query of the feed operation
type BlikiFeedInput struct {
	FeedFormat     string `query:"feedformat" doc:"The format of the feed" example:"rss"`
	Days           int    `query:"days" minimum:"1" doc:"Days to limit the results to; defaults to the configured window"`
	Limit          int    `query:"limit" minimum:"1" doc:"Maximum number of results to return"`
	From           string `query:"from" doc:"Show changes since then" example:"20150601000000"`
	Q              string `query:"q" doc:"Categories to list, separated by |" example:"Blog|News"`
	SMaxAge        int    `query:"smaxage" minimum:"0" doc:"Shared cache lifetime in seconds"`
	MaxAge         int    `query:"maxage" minimum:"0" doc:"Client cache lifetime in seconds"`
	UseLang        string `query:"uselang" doc:"Interface language" example:"en"`
	AcceptLanguage string `header:"Accept-Language"`
}

// BlikiFeedOutput is the raw feed document
type BlikiFeedOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Vary         string `header:"Vary"`
	XCache       string `header:"X-Cache" doc:"HIT when served from the render cache"`
	Body         []byte
}

// BlikiFeed handles the GET /api/blikifeed endpoint
func (h *BlikiFeedHandler) BlikiFeed(ctx context.Context, input *BlikiFeedInput) (*BlikiFeedOutput, error) {
	doc, err := h.feedService.Handle(ctx, blikifeed.Request{
		FeedFormat:     input.FeedFormat,
		Days:           input.Days,
		Limit:          input.Limit,
		From:           input.From,
		Categories:     blikifeed.ParseCategories(input.Q),
		SMaxAge:        input.SMaxAge,
		MaxAge:         input.MaxAge,
		UseLang:        input.UseLang,
		AcceptLanguage: input.AcceptLanguage,
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	xcache := "MISS"
	if doc.Cached {
		xcache = "HIT"
	}
	return &BlikiFeedOutput{
		ContentType:  doc.ContentType,
		CacheControl: doc.CacheControl,
		Vary:         "Accept-Language",
		XCache:       xcache,
		Body:         doc.Body,
	}, nil
}

// CategoryMembershipInput names the page and category to check
type CategoryMembershipInput struct {
	Category string `query:"category" required:"true" minLength:"1" doc:"Category name, with or without prefix" example:"Tags"`
	Title    string `query:"title" required:"true" minLength:"1" doc:"Page title" example:"Cooking"`
}

// CategoryMembershipOutput reports the result of a membership check
type CategoryMembershipOutput struct {
	Body struct {
		Category string `json:"category"`
		Title    string `json:"title"`
		Member   bool   `json:"member"`
	}
}

// CategoryMembership handles the GET /api/categorymembership endpoint
func (h *BlikiFeedHandler) CategoryMembership(ctx context.Context, input *CategoryMembershipInput) (*CategoryMembershipOutput, error) {
	member, err := h.feedService.InCat(ctx, input.Category, input.Title)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &CategoryMembershipOutput{}
	out.Body.Category = input.Category
	out.Body.Title = input.Title
	out.Body.Member = member
	return out, nil
}
