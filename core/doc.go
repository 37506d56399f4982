// Package core contains the business logic of the Bliki Feed API.
// It does not depend on the HTTP layer or on a particular database.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Title, Namespace, Change)
// - blikifeed: Builds RSS/Atom/JSON feeds of categorised recent changes
// - title: Parses page names and builds page URLs
// - messages: Localized interface messages
// - errors: Custom error types mapped to API error codes
// - interfaces: Contracts for external dependencies (store, cache, logger)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Store:  store,  // implements interfaces.WikiStore
//	    Cache:  cache,  // implements interfaces.Cache
//	    Logger: logger, // implements interfaces.Logger
//	}
//
//	svc := blikifeed.NewService(deps, cfg.Site, cfg.Feed)
//	doc, err := svc.Handle(ctx, blikifeed.Request{
//	    FeedFormat: "atom",
//	    Categories: []string{"Blog"},
//	})
package core
