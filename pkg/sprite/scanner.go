package sprite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stylebox/pkg/cache"
	"github.com/matzehuels/stylebox/pkg/observability"
)

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithKeyer sets the keyer used to build cache keys.
func WithKeyer(k cache.Keyer) ScannerOption {
	return func(s *Scanner) { s.keyer = k }
}

// WithTTL sets the lifetime of cached scans (default: no expiry).
func WithTTL(ttl time.Duration) ScannerOption {
	return func(s *Scanner) { s.ttl = ttl }
}

// WithMinArea drops regions with fewer than n pixels of bounding area,
// which filters stray antialiasing specks out of whole-sheet scans.
func WithMinArea(n int) ScannerOption {
	return func(s *Scanner) { s.minArea = n }
}

// WithLogger sets the logger for cache failures.
func WithLogger(l *log.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = l }
}

// Scanner lists every sprite on a sheet and remembers the result by image
// content, so a sheet that has been scanned once is never flood-filled
// again while the cache entry lives.
type Scanner struct {
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	minArea int
	logger  *log.Logger
}

// NewScanner returns a scanner backed by c. A nil cache disables caching.
func NewScanner(c cache.Cache, opts ...ScannerOption) *Scanner {
	if c == nil {
		c = cache.NewNullCache()
	}
	s := &Scanner{cache: c, keyer: cache.NewDefaultKeyer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the bounds of every sprite on sheet. Cache failures are
// logged and otherwise ignored.
func (s *Scanner) Scan(ctx context.Context, sheet *Sheet) ([]Bounds, error) {
	key := s.keyer.SpriteKey(sheet.Hash, cache.SpriteKeyOpts{MinArea: s.minArea})
	hooks := observability.Cache()

	if data, hit, err := s.cache.Get(ctx, key); err != nil {
		s.warn("sprite cache read failed", "source", sheet.Source, "err", err)
	} else if hit {
		var out []Bounds
		if err := json.Unmarshal(data, &out); err == nil {
			hooks.OnCacheHit(ctx, "sprite")
			return out, nil
		}
		if err := s.cache.Delete(ctx, key); err != nil {
			s.warn("sprite cache delete failed", "source", sheet.Source, "err", err)
		}
	}
	hooks.OnCacheMiss(ctx, "sprite")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	observability.Sprite().OnScanStart(ctx, sheet.Source)
	start := time.Now()
	out := s.filter(sheet.All())
	observability.Sprite().OnScanComplete(ctx, sheet.Source, len(out), time.Since(start), nil)

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.warn("sprite cache write failed", "source", sheet.Source, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "sprite", len(data))
	}
	return out, nil
}

func (s *Scanner) filter(all []Bounds) []Bounds {
	out := make([]Bounds, 0, len(all))
	for _, b := range all {
		if b.Width()*b.Height() >= s.minArea {
			out = append(out, b)
		}
	}
	return out
}

func (s *Scanner) warn(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, kv...)
	}
}
