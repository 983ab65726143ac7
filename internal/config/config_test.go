package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
origin = "0 0"

[context]
viewport = { width = 1440, height = 900 }

[grid]
x = 8
y = 4

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "1h"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := Default()
	want.Origin = "0 0"
	want.Context.Viewport = Size{Width: 1440, Height: 900}
	want.Grid = GridConfig{X: 8, Y: 4}
	want.Cache.Backend = BackendRedis
	want.Cache.RedisURL = "redis://localhost:6379/1"
	want.Cache.TTL = Duration{time.Hour}
	want.Server.Addr = "127.0.0.1:9000"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[grid\n", "parse"},
		{"unknown key", "colour = \"red\"\n", "unknown key"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "unknown cache backend"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", "needs redis_url"},
		{"negative grid", "[grid]\nx = -1\n", "grid"},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "stylebox", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	got, err = Path()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, filepath.Join(".config", "stylebox", "config.toml")) {
		t.Errorf("Path() = %q, want under ~/.config", got)
	}
}

func TestContextUnits(t *testing.T) {
	ctx := ContextConfig{Container: Size{Width: 800, Height: 600}}.Units()
	if ctx.Container.Width != 800 || ctx.FontSize != 16 || ctx.RootFontSize != 16 {
		t.Errorf("Units() = %+v", ctx)
	}
}
