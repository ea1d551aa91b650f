// Package config loads application configuration for the CLI and server.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, an optional TOML file, and environment
// variables. The file lives at ~/.config/code-clarified/config.toml unless
// a path is given explicitly.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/yashsidana/code-clarified/pkg/cache"
	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/summarize"
)

// Cache backend names accepted in the [cache] section.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Summarizer SummarizerConfig `toml:"summarizer"`
	Cache      CacheConfig      `toml:"cache"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// AllowedOrigins lists origins permitted by the CORS middleware.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// SummarizerConfig configures the Gemini summarizer.
type SummarizerConfig struct {
	// APIKey authenticates against the Gemini API. The GEMINI_API_KEY
	// environment variable takes precedence when set.
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

// CacheConfig configures the pipeline result cache.
type CacheConfig struct {
	// Backend selects the cache implementation: none, file, or redis.
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the default
	// cache directory.
	Dir string `toml:"dir"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
		Summarizer: SummarizerConfig{
			Model:       summarize.DefaultModel,
			Temperature: summarize.DefaultTemperature,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "code-clarified", "config.toml")
}

// Load reads configuration from path, layered over defaults.
// An empty path means the default location; a missing file at the default
// location is not an error. Environment variables are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if key := os.Getenv(summarize.EnvAPIKey); key != "" {
		cfg.Summarizer.APIKey = key
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
	}
	return nil
}

// OpenCache constructs the cache backend selected by the configuration.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	default:
		return cache.NewFileCache(c.Dir)
	}
}

// SummarizeConfig converts the summarizer section to client configuration.
func (c SummarizerConfig) SummarizeConfig() summarize.Config {
	return summarize.Config{
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: c.Temperature,
	}
}
