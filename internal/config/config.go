// Package config loads the stylebox configuration file.
//
// The file lives at $XDG_CONFIG_HOME/stylebox/config.toml (falling back to
// ~/.config/stylebox/config.toml). A missing file is not an error: every
// field has a built-in default, and command-line flags override whatever
// the file sets.
//
//	[context]
//	viewport = { width = 1440, height = 900 }
//	font_size = 16
//
//	[grid]
//	x = 8
//	y = 8
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stylebox/pkg/units"
)

const appName = "stylebox"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ContextConfig is the reference context used when a layout document does
// not provide one.
type ContextConfig struct {
	Container    Size    `toml:"container"`
	Viewport     Size    `toml:"viewport"`
	FontSize     float64 `toml:"font_size"`
	RootFontSize float64 `toml:"root_font_size"`
}

// GridConfig is the snap grid. Values of 0 or 1 disable snapping.
type GridConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// CacheConfig selects where sprite scans are cached.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
	Prefix   string   `toml:"prefix"`
}

// ServerConfig configures `stylebox serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Config is the whole configuration file.
type Config struct {
	Context ContextConfig `toml:"context"`
	Grid    GridConfig    `toml:"grid"`
	Origin  string        `toml:"origin"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// Duration is a time.Duration written as a string such as "24h" in TOML.
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
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Context: ContextConfig{
			Viewport:     Size{Width: 1280, Height: 720},
			FontSize:     16,
			RootFontSize: 16,
		},
		Origin: "50% 50%",
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxBodyBytes: 32 << 20,
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at the default path.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path on top of the defaults. A missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and the cache backend name.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend %q needs redis_url", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Grid.X < 0 || c.Grid.Y < 0 {
		return fmt.Errorf("grid must not be negative")
	}
	if c.Context.FontSize < 0 || c.Context.RootFontSize < 0 {
		return fmt.Errorf("font sizes must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative")
	}
	return nil
}

// Units returns the configured reference context.
func (c ContextConfig) Units() units.Context {
	ctx := units.Context{
		Container:    units.Size(c.Container),
		Viewport:     units.Size(c.Viewport),
		FontSize:     c.FontSize,
		RootFontSize: c.RootFontSize,
	}
	if ctx.FontSize == 0 {
		ctx.FontSize = 16
	}
	if ctx.RootFontSize == 0 {
		ctx.RootFontSize = 16
	}
	return ctx
}
