// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-process cache backed by go-cache
// - cache/redis: Redis cache for deployments with several API instances
// - cache/sqlite: File cache that survives restarts
// - logger/structured: logrus logger with optional rotating file output
// - storage/sqldb: Read access to the wiki database (sqlite3 or postgres)
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(cfg.Cache.Memory)
//	err := cache.Set(ctx, "blikifeed:abc", body, 15*time.Second)
//	value, err := cache.Get(ctx, "blikifeed:abc")
//
// A missing key is reported as interfaces.ErrCacheMiss by every backend.
//
// # Wiki Database
//
//	store, err := sqldb.New(cfg.Database)
//	rows, err := store.RecentChanges(ctx, domain.ChangesQuery{
//	    Categories: []string{"Blog"},
//	    Since:      time.Now().AddDate(0, 0, -7),
//	    Limit:      50,
//	})
package infrastructure
