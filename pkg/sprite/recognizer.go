// Package sprite finds the opaque regions of a sprite sheet.
//
// A [Recognizer] is built from fully decoded pixel data, so it can only be
// queried once the image has loaded. [Recognizer.BoundsAt] flood-fills the
// alpha channel from a seed pixel and returns the bounding rectangle of the
// 4-connected opaque region under it. Every pixel visited is remembered
// against its region, so later queries anywhere inside an explored region
// are answered without scanning again.
package sprite

import (
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/matzehuels/stylebox/pkg/geom"
)

// Bounds is a pixel rectangle in image-local coordinates. Right and Bottom
// are exclusive, so Right-Left and Bottom-Top are the sprite's width and
// height.
type Bounds struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Width returns Right-Left.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height returns Bottom-Top.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// Rect converts the bounds to a geometry rectangle.
func (b Bounds) Rect() geom.Rect {
	return geom.Rect{
		Left:   float64(b.Left),
		Top:    float64(b.Top),
		Width:  float64(b.Width()),
		Height: float64(b.Height()),
	}
}

// Recognizer answers sprite-bounds queries over one image.
type Recognizer struct {
	width, height int
	alpha         []uint8

	mu      sync.Mutex
	region  []int32 // per pixel: 0 if unexplored, else index+1 into regions
	regions []Bounds
}

// New extracts the alpha channel of img.
func New(img image.Image) *Recognizer {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	alpha := make([]uint8, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				alpha[y*w+x] = row[x*4+3]
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				alpha[y*w+x] = row[x*4+3]
			}
		}
	case *image.Alpha:
		for y := 0; y < h; y++ {
			copy(alpha[y*w:(y+1)*w], src.Pix[y*src.Stride:])
		}
	default:
		// Paletted, YCbCr and 16-bit images are flattened to NRGBA first.
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
		for i := range alpha {
			alpha[i] = dst.Pix[i*4+3]
		}
	}

	return &Recognizer{
		width:  w,
		height: h,
		alpha:  alpha,
		region: make([]int32, w*h),
	}
}

// Size returns the image dimensions.
func (r *Recognizer) Size() (width, height int) { return r.width, r.height }

// BoundsAt returns the bounds of the opaque region containing (x, y). It
// reports false for coordinates outside the image and for fully
// transparent pixels.
func (r *Recognizer) BoundsAt(x, y int) (Bounds, bool) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return Bounds{}, false
	}
	i := y*r.width + x
	if r.alpha[i] == 0 {
		return Bounds{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id := r.region[i]; id != 0 {
		return r.regions[id-1], true
	}
	return r.fill(i), true
}

// All returns the bounds of every opaque region, ordered by the first
// pixel of each region in row-major order.
func (r *Recognizer) All() []Bounds {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Bounds
	seen := make(map[int32]bool)
	for i, a := range r.alpha {
		if a == 0 {
			continue
		}
		id := r.region[i]
		if id == 0 {
			r.fill(i)
			id = r.region[i]
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, r.regions[id-1])
		}
	}
	return out
}

// fill explores the region around seed pixel i with an iterative 4-connected
// flood fill. Each pixel is tagged with the region as it is discovered, and
// the region's bounds grow as the fill proceeds. The caller holds mu.
func (r *Recognizer) fill(i int) Bounds {
	r.regions = append(r.regions, Bounds{
		Top: i / r.width, Left: i % r.width,
		Bottom: i/r.width + 1, Right: i%r.width + 1,
	})
	id := int32(len(r.regions))
	b := &r.regions[id-1]

	r.region[i] = id
	stack := []int{i}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p%r.width, p/r.width

		if x < b.Left {
			b.Left = x
		}
		if x+1 > b.Right {
			b.Right = x + 1
		}
		if y < b.Top {
			b.Top = y
		}
		if y+1 > b.Bottom {
			b.Bottom = y + 1
		}

		if x > 0 {
			stack = r.visit(stack, p-1, id)
		}
		if x+1 < r.width {
			stack = r.visit(stack, p+1, id)
		}
		if y > 0 {
			stack = r.visit(stack, p-r.width, id)
		}
		if y+1 < r.height {
			stack = r.visit(stack, p+r.width, id)
		}
	}
	return *b
}

func (r *Recognizer) visit(stack []int, p int, id int32) []int {
	if r.region[p] != 0 || r.alpha[p] == 0 {
		return stack
	}
	r.region[p] = id
	return append(stack, p)
}
