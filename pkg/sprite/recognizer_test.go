package sprite

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/stylebox/pkg/geom"
)

// sheet builds an NRGBA image from rows of '#' (opaque) and '.' (clear).
func sheet(rows ...string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
			}
		}
	}
	return img
}

func TestBoundsAtTransparent(t *testing.T) {
	r := New(sheet(
		"....",
		".##.",
		".##.",
		"....",
	))
	tests := []struct {
		name string
		x, y int
	}{
		{"clear pixel", 0, 0},
		{"left of image", -1, 1},
		{"below image", 1, 4},
		{"right of image", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b, ok := r.BoundsAt(tt.x, tt.y); ok {
				t.Errorf("BoundsAt(%d, %d) = %+v, want no sprite", tt.x, tt.y, b)
			}
		})
	}
}

func TestBoundsAtBlock(t *testing.T) {
	r := New(sheet(
		"....",
		".##.",
		".##.",
		"....",
	))
	b, ok := r.BoundsAt(2, 2)
	if !ok {
		t.Fatal("BoundsAt() found no sprite")
	}
	want := Bounds{Top: 1, Left: 1, Bottom: 3, Right: 3}
	if b != want {
		t.Errorf("BoundsAt() = %+v, want %+v", b, want)
	}
	if b.Width() != 2 || b.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", b.Width(), b.Height())
	}
	if got := b.Rect(); got != (geom.Rect{Left: 1, Top: 1, Width: 2, Height: 2}) {
		t.Errorf("Rect() = %+v", got)
	}
}

func TestBoundsAtFourConnected(t *testing.T) {
	r := New(sheet(
		"#...",
		".#..",
		".###",
		"...#",
	))

	// Diagonal neighbours are separate sprites.
	if b, _ := r.BoundsAt(0, 0); b != (Bounds{Top: 0, Left: 0, Bottom: 1, Right: 1}) {
		t.Errorf("BoundsAt(0,0) = %+v, want single pixel", b)
	}
	want := Bounds{Top: 1, Left: 1, Bottom: 4, Right: 4}
	if b, _ := r.BoundsAt(1, 1); b != want {
		t.Errorf("BoundsAt(1,1) = %+v, want %+v", b, want)
	}
	if b, _ := r.BoundsAt(3, 3); b != want {
		t.Errorf("BoundsAt(3,3) = %+v, want %+v", b, want)
	}
}

func TestBoundsAtConcave(t *testing.T) {
	// The fill has to wrap around the gap to reach the right arm.
	r := New(sheet(
		"#.#",
		"#.#",
		"###",
	))
	want := Bounds{Top: 0, Left: 0, Bottom: 3, Right: 3}
	if b, _ := r.BoundsAt(2, 0); b != want {
		t.Errorf("BoundsAt() = %+v, want %+v", b, want)
	}
}

func TestBoundsAtMemoized(t *testing.T) {
	r := New(sheet(
		"##.",
		"##.",
		"..#",
	))
	first, _ := r.BoundsAt(0, 0)
	if len(r.regions) != 1 {
		t.Fatalf("regions after first query = %d, want 1", len(r.regions))
	}
	for _, p := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
		if r.region[p[1]*3+p[0]] == 0 {
			t.Errorf("pixel %v not memoized", p)
		}
		b, _ := r.BoundsAt(p[0], p[1])
		if b != first {
			t.Errorf("BoundsAt(%v) = %+v, want %+v", p, b, first)
		}
	}
	if len(r.regions) != 1 {
		t.Errorf("repeat queries filled again: %d regions", len(r.regions))
	}
	if r.region[2*3+2] != 0 {
		t.Error("unrelated region was explored")
	}
}

func TestAll(t *testing.T) {
	r := New(sheet(
		"##..#",
		"##...",
		".....",
		"..###",
	))
	want := []Bounds{
		{Top: 0, Left: 0, Bottom: 2, Right: 2},
		{Top: 0, Left: 4, Bottom: 1, Right: 5},
		{Top: 3, Left: 2, Bottom: 4, Right: 5},
	}
	if diff := cmp.Diff(want, r.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFromOtherImageTypes(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 3, 1), color.Palette{color.Transparent, color.Black})
	pal.SetColorIndex(1, 0, 1)
	pal.SetColorIndex(2, 0, 1)

	r := New(pal)
	if b, ok := r.BoundsAt(2, 0); !ok || b != (Bounds{Top: 0, Left: 1, Bottom: 1, Right: 3}) {
		t.Errorf("paletted BoundsAt() = %+v, %v", b, ok)
	}

	alpha := image.NewAlpha(image.Rect(0, 0, 2, 2))
	alpha.SetAlpha(1, 1, color.Alpha{A: 1})
	r = New(alpha)
	if _, ok := r.BoundsAt(0, 0); ok {
		t.Error("alpha BoundsAt(0,0) should be clear")
	}
	if _, ok := r.BoundsAt(1, 1); !ok {
		t.Error("alpha BoundsAt(1,1) should be opaque")
	}
}

func TestNewSubImage(t *testing.T) {
	img := sheet(
		"....",
		"..#.",
		"....",
	)
	sub := img.SubImage(image.Rect(1, 1, 4, 3))
	r := New(sub)
	if w, h := r.Size(); w != 3 || h != 2 {
		t.Fatalf("Size() = %d,%d, want 3,2", w, h)
	}
	if b, ok := r.BoundsAt(1, 0); !ok || b != (Bounds{Top: 0, Left: 1, Bottom: 1, Right: 2}) {
		t.Errorf("BoundsAt() = %+v, %v", b, ok)
	}
}

func BenchmarkBoundsAt(b *testing.B) {
	rows := make([]string, 256)
	for i := range rows {
		rows[i] = strings.Repeat("#", 256)
	}
	img := sheet(rows...)
	for i := 0; i < b.N; i++ {
		New(img).BoundsAt(128, 128)
	}
}
