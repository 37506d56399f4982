// Package api provides the HTTP API layer of the Bliki Feed API.
// It uses the Huma framework on a chi router for OpenAPI documentation
// and parameter validation.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: Request logging and per-IP rate limiting
//
// # Endpoints
//
//	GET /api/blikifeed            feed of recent changes in the given categories
//	GET /api/categorymembership   whether a page is in a category
//	GET /healthz                  database reachability
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewBlikiFeedHandler(feedService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format with an extra code field:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "Invalid subscription feed type: \"rdf\"",
//	    "code": "feed-invalid"
//	}
package api
