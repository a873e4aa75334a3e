// Package config loads porter's TOML configuration file.
//
// The file is optional. Values it sets become the defaults for CLI flags;
// flags given on the command line still win.
//
//	[sort]
//	metric = "hue"
//	low = 180
//	high = 300
//	workers = 4
//
//	[output]
//	prefix = "sorted-"
//	dir = "out"
//
//	[cache]
//	backend = "redis"
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//
// Unknown keys are rejected so that typos surface instead of being ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/porter/pkg/cache"
	"github.com/matzehuels/porter/pkg/errors"
	"github.com/matzehuels/porter/pkg/pixelsort"
)

const (
	appName  = "porter"
	fileName = "config.toml"

	DefaultMetric = "luminance"
	DefaultLow    = 0
	DefaultHigh   = 255
	DefaultPrefix = "sorted-"
)

// Config is the root of the configuration file.
type Config struct {
	Sort   Sort   `toml:"sort"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
}

// Sort holds the default sort parameters.
type Sort struct {
	Metric  string `toml:"metric"`
	Low     int    `toml:"low"`
	High    int    `toml:"high"`
	Workers int    `toml:"workers"` // 0 means one per CPU
}

// Output controls where sorted images are written.
type Output struct {
	Prefix string `toml:"prefix"`
	Dir    string `toml:"dir"` // empty means the current directory
}

// Cache selects the result cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"` // empty means the XDG cache directory
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	RedisPrefix   string   `toml:"redis_prefix"`
}

// Duration is a time.Duration written as a Go duration string ("720h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sort: Sort{
			Metric: DefaultMetric,
			Low:    DefaultLow,
			High:   DefaultHigh,
		},
		Output: Output{
			Prefix: DefaultPrefix,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.TTLResult},
		},
	}
}

// Path returns the default configuration file path,
// $XDG_CONFIG_HOME/porter/config.toml or ~/.config/porter/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// CacheDir returns the default cache directory,
// $XDG_CACHE_HOME/porter or ~/.cache/porter.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration at path on top of [Default].
// A missing file is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile is like [Load] but fails when the file does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks values that can be checked without the command line.
// Thresholds are only clamped and ordered later, once the final metric is
// known.
func (c *Config) Validate() error {
	if _, err := pixelsort.ParseMetric(c.Sort.Metric); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMetric, err, "sort.metric")
	}
	if c.Sort.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sort.workers must not be negative")
	}
	if err := errors.ValidatePrefix(c.Output.Prefix); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// CacheOptions converts the cache section into backend options.
// An empty directory resolves to [CacheDir].
func (c *Config) CacheOptions() (cache.Options, error) {
	dir := c.Cache.Dir
	if dir == "" && c.Cache.Backend == cache.BackendFile {
		d, err := CacheDir()
		if err != nil {
			return cache.Options{}, fmt.Errorf("resolve cache dir: %w", err)
		}
		dir = d
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   c.Cache.RedisPrefix,
		},
	}, nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "create %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "encode %s", path)
	}
	return f.Close()
}
