package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		expectedPort    string
		expectedLimit   int
		expectedEnabled bool
	}{
		{
			name:            "defaults when nothing is set",
			envVars:         map[string]string{},
			expectedPort:    "8000",
			expectedLimit:   50,
			expectedEnabled: true,
		},
		{
			name:            "uses PORT env var when set",
			envVars:         map[string]string{"PORT": "3000"},
			expectedPort:    "3000",
			expectedLimit:   50,
			expectedEnabled: true,
		},
		{
			name:            "uses FEED_LIMIT env var when set",
			envVars:         map[string]string{"FEED_LIMIT": "200"},
			expectedPort:    "8000",
			expectedLimit:   200,
			expectedEnabled: true,
		},
		{
			name:            "FEED_ENABLED=false disables feeds",
			envVars:         map[string]string{"FEED_ENABLED": "false"},
			expectedPort:    "8000",
			expectedLimit:   50,
			expectedEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}
			if cfg.Feed.Limit != tt.expectedLimit {
				t.Errorf("Feed.Limit = %v, want %v", cfg.Feed.Limit, tt.expectedLimit)
			}
			if cfg.Feed.Enabled != tt.expectedEnabled {
				t.Errorf("Feed.Enabled = %v, want %v", cfg.Feed.Enabled, tt.expectedEnabled)
			}
		})
	}
}

func TestLoadFromEnv_FeedDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"rss", "atom"}, cfg.Feed.Formats)
	assert.Equal(t, "Blog", cfg.Feed.DefaultCategory)
	assert.Equal(t, 7, cfg.Feed.DefaultDays)
	assert.Equal(t, 1000, cfg.Feed.FallbackDays)
	assert.Equal(t, 15*time.Second, cfg.Feed.MinMaxAge)
	assert.Equal(t, "Tags", cfg.Feed.TagCategory)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestLoadFromEnv_Formats(t *testing.T) {
	t.Setenv("FEED_FORMATS", "atom,json")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"atom", "json"}, cfg.Feed.Formats)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, `server:
  port: "9090"
site:
  name: "Organic Design wiki"
  server: "https://www.organicdesign.co.nz"
feed:
  enabled: false
  formats: [atom]
  limit: 25
  default_category: News
database:
  driver: postgres
  dsn: "dbname=wiki sslmode=disable"
cache:
  type: redis
  redis:
    address: "redis:6379"
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Organic Design wiki", cfg.Site.Name)
	assert.False(t, cfg.Feed.Enabled)
	assert.Equal(t, []string{"atom"}, cfg.Feed.Formats)
	assert.Equal(t, 25, cfg.Feed.Limit)
	assert.Equal(t, "News", cfg.Feed.DefaultCategory)
	assert.Equal(t, 7, cfg.Feed.DefaultDays, "unset keys keep their defaults")
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Address)
	assert.Equal(t, "bliki:", cfg.Cache.Redis.KeyPrefix)
	assert.Equal(t, 5*time.Second, cfg.Cache.Redis.DialTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.True(t, cfg.Feed.Enabled)
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeConfig(t, "feed: [unclosed")

	_, err := Load(p)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown cache type", func(c *Config) { c.Cache.Type = "memcached" }, true},
		{"sqlite cache", func(c *Config) { c.Cache.Type = "sqlite" }, false},
		{"redis without address", func(c *Config) { c.Cache.Type = "redis"; c.Cache.Redis.Address = "" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"zero feed limit", func(c *Config) { c.Feed.Limit = 0 }, true},
		{"unsupported format", func(c *Config) { c.Feed.Formats = []string{"rss", "rdf"} }, true},
		{"json format", func(c *Config) { c.Feed.Formats = []string{"json"} }, false},
		{"no day window", func(c *Config) { c.Feed.DefaultDays = 0; c.Feed.FallbackDays = 0 }, true},
		{"fallback only", func(c *Config) { c.Feed.DefaultDays = 0 }, false},
		{"empty default category", func(c *Config) { c.Feed.DefaultCategory = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "feed:\n  enabled: true\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var reloaded *Config
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, nopLogger{}, func(cfg *Config) {
			mu.Lock()
			reloaded = cfg
			mu.Unlock()
		})
	}()

	// Give the watcher time to register the file
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("feed:\n  enabled: false\n"), 0o600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloaded != nil && !reloaded.Feed.Enabled
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
