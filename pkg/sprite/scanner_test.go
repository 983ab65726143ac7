package sprite

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/stylebox/pkg/cache"
	"github.com/matzehuels/stylebox/pkg/observability"
)

type countingHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	h.set++
	h.mu.Unlock()
}

func TestScannerCaches(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	store := cache.NewMemoryCache()
	sc := NewScanner(store)

	data := encodePNG(t, "#..#", "....", "##..")
	first, err := Decode(bytes.NewReader(data), "a")
	if err != nil {
		t.Fatal(err)
	}
	got, err := sc.Scan(ctx, first)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := []Bounds{
		{Top: 0, Left: 0, Bottom: 1, Right: 1},
		{Top: 0, Left: 3, Bottom: 1, Right: 4},
		{Top: 2, Left: 0, Bottom: 3, Right: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
	if store.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", store.Len())
	}

	// Same bytes under another name hit the cache.
	second, _ := Decode(bytes.NewReader(data), "b")
	again, err := sc.Scan(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("cached Scan() mismatch (-want +got):\n%s", diff)
	}
	if len(second.regions) != 0 {
		t.Error("cached scan should not flood-fill")
	}
	if hooks.hits != 1 || hooks.misses != 1 || hooks.set != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets; want 1, 1, 1", hooks.hits, hooks.misses, hooks.set)
	}
}

func TestScannerMinArea(t *testing.T) {
	s, err := Decode(bytes.NewReader(encodePNG(t, "#..##", "...##")), "a")
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewScanner(nil, WithMinArea(2)).Scan(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	want := []Bounds{{Top: 0, Left: 3, Bottom: 2, Right: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCache()
	s, _ := Decode(bytes.NewReader(encodePNG(t, "#")), "a")
	key := cache.NewDefaultKeyer().SpriteKey(s.Hash, cache.SpriteKeyOpts{})
	_ = store.Set(ctx, key, []byte("{broken"), 0)

	got, err := NewScanner(store).Scan(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Scan() = %+v, want one region", got)
	}
}

// stuckCache is a memory cache whose entries cannot be deleted.
type stuckCache struct {
	*cache.MemoryCache
}

func (stuckCache) Delete(context.Context, string) error {
	return errors.New("read-only")
}

func TestScannerCorruptEntryDeleteFails(t *testing.T) {
	ctx := context.Background()
	store := stuckCache{cache.NewMemoryCache()}
	s, _ := Decode(bytes.NewReader(encodePNG(t, "#")), "a")
	key := cache.NewDefaultKeyer().SpriteKey(s.Hash, cache.SpriteKeyOpts{})
	_ = store.Set(ctx, key, []byte("{broken"), 0)

	var buf bytes.Buffer
	got, err := NewScanner(store, WithLogger(log.New(&buf))).Scan(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Scan() = %+v, want one region", got)
	}
	if out := buf.String(); !strings.Contains(out, "sprite cache delete failed") || !strings.Contains(out, "read-only") {
		t.Errorf("log = %q, want the delete failure", out)
	}
}
