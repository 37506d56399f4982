// ABOUTME: Configuration management for the application with YAML and environment variable support
// ABOUTME: Defines configuration structures for server, site, feed, storage, cache and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Site describes the wiki the feeds are generated for
	Site SiteConfig `yaml:"site"`

	// Feed contains syndication settings
	Feed FeedConfig `yaml:"feed"`

	// Database contains the wiki database connection settings
	Database DatabaseConfig `yaml:"database"`

	// Cache contains render cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Log contains logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port" env:"PORT" env-default:"8000"`

	// RateLimit is the number of requests allowed per client per window; 0 disables limiting
	RateLimit int `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"100"`

	// RateWindow is the rate limit window
	RateWindow time.Duration `yaml:"rate_window" env:"RATE_WINDOW" env-default:"1m"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// SiteConfig describes the wiki
type SiteConfig struct {
	// Name is the site name, e.g. "Organic Design wiki"
	Name string `yaml:"name" env:"SITE_NAME" env-default:"MyWiki"`

	// Server is the scheme and host used for absolute URLs
	Server string `yaml:"server" env:"SITE_SERVER" env-default:"http://localhost"`

	// ArticlePath is the page URL pattern; $1 is replaced by the page name
	ArticlePath string `yaml:"article_path" env:"SITE_ARTICLE_PATH" env-default:"/wiki/$1"`

	// Script is the entry point path used for URLs with a query string
	Script string `yaml:"script" env:"SITE_SCRIPT" env-default:"/index.php"`

	// Language is the content language code
	Language string `yaml:"language" env:"SITE_LANGUAGE" env-default:"en"`
}

// FeedConfig holds syndication settings. It is reloaded at runtime.
type FeedConfig struct {
	// Enabled switches syndication feeds on or off
	Enabled bool `yaml:"enabled" env:"FEED_ENABLED"`

	// Formats lists the feed formats that may be requested
	Formats []string `yaml:"formats" env:"FEED_FORMATS" env-separator:","`

	// Limit is the maximum number of items in a feed
	Limit int `yaml:"limit" env:"FEED_LIMIT" env-default:"50"`

	// DefaultLimit is used when the request does not specify a limit
	DefaultLimit int `yaml:"default_limit" env:"FEED_DEFAULT_LIMIT" env-default:"50"`

	// DefaultCategory filters the feed when the request names no category
	DefaultCategory string `yaml:"default_category" env:"BLIKI_DEFAULT_CAT" env-default:"Blog"`

	// DefaultDays is the declared default of the days parameter
	DefaultDays int `yaml:"default_days" env:"FEED_DEFAULT_DAYS" env-default:"7"`

	// FallbackDays is used for a missing days parameter when DefaultDays is 0
	FallbackDays int `yaml:"fallback_days" env:"FEED_FALLBACK_DAYS" env-default:"1000"`

	// MinMaxAge is the lowest cache lifetime sent to clients
	MinMaxAge time.Duration `yaml:"min_max_age" env:"FEED_MIN_MAX_AGE" env-default:"15s"`

	// BlogPage is the page the feed links back to
	BlogPage string `yaml:"blog_page" env:"BLIKI_BLOG_PAGE" env-default:"Blog"`

	// TagCategory is the category whose members are treated as tags
	TagCategory string `yaml:"tag_category" env:"BLIKI_TAG_CATEGORY" env-default:"Tags"`
}

// DatabaseConfig holds the wiki database settings
type DatabaseConfig struct {
	// Driver is sqlite3 or postgres
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`

	// DSN is the driver specific data source name
	DSN string `yaml:"dsn" env:"DB_DSN" env-default:"wiki.db"`

	// MaxOpenConns limits open connections
	MaxOpenConns int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`

	// MaxIdleConns limits idle connections
	MaxIdleConns int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`

	// CreateSchema creates missing tables at start-up (sqlite development databases)
	CreateSchema bool `yaml:"create_schema" env:"DB_CREATE_SCHEMA"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string `yaml:"type" env:"CACHE_TYPE" env-default:"memory"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`

	// SQLite contains file cache configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`

	// Password is the Redis authentication password
	Password string `yaml:"password" env:"REDIS_PASSWORD"`

	// DB is the Redis database number
	DB int `yaml:"db" env:"REDIS_DB" env-default:"0"`

	// KeyPrefix namespaces every key so several wikis can share one server
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"bliki:"`

	// DialTimeout bounds the start-up ping
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries
	DefaultExpiration time.Duration `yaml:"default_expiration" env:"MEMORY_CACHE_EXPIRATION" env-default:"1h"`

	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"MEMORY_CACHE_CLEANUP" env-default:"10m"`
}

// SQLiteConfig holds file cache configuration
type SQLiteConfig struct {
	// Path is the cache database file
	Path string `yaml:"path" env:"SQLITE_CACHE_PATH" env-default:"cache.db"`

	// CleanupInterval is how often expired rows are purged
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"SQLITE_CACHE_CLEANUP" env-default:"5m"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`

	// Format is json or text
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`

	// File is an optional log file, rotated by size
	File string `yaml:"file" env:"LOG_FILE"`

	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
}

// Default returns a configuration with values that cleanenv cannot default,
// such as booleans that are true unless switched off.
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			Enabled: true,
			Formats: []string{"rss", "atom"},
		},
	}
}

// Load reads configuration from a YAML file overlaid by environment variables.
// A missing file is not an error; the environment and defaults are used instead.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return LoadFromEnv()
	}

	cfg := Default()
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Site.Server == "" {
		return errors.New("site server cannot be empty")
	}

	if err := c.Feed.Validate(); err != nil {
		return err
	}

	if c.Database.Driver != "sqlite3" && c.Database.Driver != "postgres" {
		return errors.New("database driver must be 'sqlite3' or 'postgres'")
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn cannot be empty")
	}

	if !slices.Contains([]string{"redis", "memory", "sqlite"}, c.Cache.Type) {
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	return nil
}

// Validate checks the feed settings
func (f *FeedConfig) Validate() error {
	if f.Limit < 1 {
		return errors.New("feed limit must be at least 1")
	}

	if f.DefaultLimit < 1 {
		return errors.New("feed default limit must be at least 1")
	}

	if f.DefaultDays < 0 || f.FallbackDays < 0 {
		return errors.New("feed day windows cannot be negative")
	}

	if f.DefaultDays == 0 && f.FallbackDays == 0 {
		return errors.New("either feed default_days or fallback_days must be set")
	}

	if f.DefaultCategory == "" {
		return errors.New("default category cannot be empty")
	}

	for _, format := range f.Formats {
		if !slices.Contains(SupportedFormats, format) {
			return fmt.Errorf("unsupported feed format %q", format)
		}
	}

	return nil
}

// SupportedFormats are the feed formats the renderer can produce
var SupportedFormats = []string{"rss", "atom", "json"}
