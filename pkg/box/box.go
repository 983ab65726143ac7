// Package box implements the positioned rectangle that move and resize
// gestures operate on.
//
// A [Box] is described by two edge-anchored [Position] values and a width and
// height. Either axis may be anchored to its far edge (right or bottom), and
// every operation here works in screen terms regardless: a positive delta
// always moves or grows toward the right or bottom.
//
// Width and height may go negative while a resize drags one edge across the
// other. The box keeps that reflected state through further incremental
// resizes so the user can drag back through zero without jitter; call
// [Box.Normalize] when the box is rendered or committed.
package box

import (
	"math"

	"github.com/matzehuels/stylebox/pkg/geom"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Box is a rectangle positioned inside a containing block.
type Box struct {
	H, V          Position
	Width, Height units.Value

	// Container is the size of the containing block. It is only needed to
	// place end-anchored axes in absolute container coordinates; with a zero
	// container the coordinates are still consistent between calls, which is
	// all drift compensation requires.
	Container units.Size
}

// Move translates the box by dx, dy screen pixels.
func (b *Box) Move(dx, dy float64) {
	b.H = b.H.Move(dx)
	b.V = b.V.Move(dy)
}

// ResizeEdge drags the edges named by corner by dx, dy screen pixels.
//
// On each axis, dragging the edge the position is anchored to moves the
// anchor with the drag and shrinks the extent by the same amount; dragging
// the opposite edge leaves the anchor alone and grows the extent. This one
// rule covers all eight handles under both anchoring modes.
func (b *Box) ResizeEdge(dx, dy float64, corner Corner) {
	if corner&West != 0 {
		if b.H.Edge == Start {
			b.H = b.H.Move(dx)
		}
		b.Width = b.Width.AddPixels(-dx)
	} else if corner&East != 0 {
		if b.H.Edge == End {
			b.H = b.H.Move(dx)
		}
		b.Width = b.Width.AddPixels(dx)
	}

	if corner&North != 0 {
		if b.V.Edge == Start {
			b.V = b.V.Move(dy)
		}
		b.Height = b.Height.AddPixels(-dy)
	} else if corner&South != 0 {
		if b.V.Edge == End {
			b.V = b.V.Move(dy)
		}
		b.Height = b.Height.AddPixels(dy)
	}
}

// ConstrainRatio resizes like [Box.ResizeEdge] but keeps width/height equal
// to ratio. For a corner handle the axis that overshoots the ratio is
// shrunk, so neither extent ends up larger than the unconstrained drag would
// have made it. For a side handle the other axis follows the dragged one,
// growing from its far edge. A ratio <= 0 resizes freely.
func (b *Box) ConstrainRatio(dx, dy, ratio float64, corner Corner) {
	sx, sy := corner.signs()
	if ratio <= 0 || (sx == 0 && sy == 0) {
		b.ResizeEdge(dx, dy, corner)
		return
	}

	w0, h0 := b.Width.Pixels(), b.Height.Pixels()
	w1, h1 := w0+sx*dx, h0+sy*dy

	switch {
	case sx != 0 && sy != 0:
		aw, ah := math.Abs(w1), math.Abs(h1)
		if aw > ah*ratio {
			aw = ah * ratio
		} else {
			ah = aw / ratio
		}
		w1, h1 = signed(aw, w1), signed(ah, h1)
	case sx != 0:
		h1 = signed(math.Abs(w1)/ratio, h0)
		sy = 1
		corner |= South
	default:
		w1 = signed(math.Abs(h1)*ratio, w0)
		sx = 1
		corner |= East
	}

	b.ResizeEdge((w1-w0)*sx, (h1-h0)*sy, corner)
}

// signed returns mag with the sign of like, treating zero as positive.
func signed(mag, like float64) float64 {
	if like < 0 {
		return -mag
	}
	return mag
}

// Snap rounds position and size to the grid. See [Box.SnapPosition] and
// [Box.SnapSize].
func (b *Box) Snap(gridX, gridY float64) {
	b.SnapPosition(gridX, gridY)
	b.SnapSize(gridX, gridY)
}

// SnapPosition rounds both offsets to the nearest multiple of their grid.
// A grid of 0 or 1 leaves that axis alone.
func (b *Box) SnapPosition(gridX, gridY float64) {
	if gridX > 1 {
		b.H.Value = b.H.Value.WithPixels(snap(b.H.Offset(), gridX))
	}
	if gridY > 1 {
		b.V.Value = b.V.Value.WithPixels(snap(b.V.Offset(), gridY))
	}
}

// SnapSize rounds width and height to the nearest multiple of their grid.
// A grid of 0 or 1 leaves that axis alone.
func (b *Box) SnapSize(gridX, gridY float64) {
	if gridX > 1 {
		b.Width = b.Width.WithPixels(snap(b.Width.Pixels(), gridX))
	}
	if gridY > 1 {
		b.Height = b.Height.WithPixels(snap(b.Height.Pixels(), gridY))
	}
}

func snap(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}

// Bounds returns the normalized rectangle the box covers in container
// coordinates.
func (b Box) Bounds() geom.Rect {
	x0, x1 := span(b.H, b.Width.Pixels(), b.Container.Width)
	y0, y1 := span(b.V, b.Height.Pixels(), b.Container.Height)
	return geom.Rect{
		Left:   math.Min(x0, x1),
		Top:    math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// AnchorPosition returns where the anchor opposite corner sits on screen,
// ignoring translation. The anchor is located in the unrotated frame, then
// rotated by deg about origin, which is given relative to the top-left of
// the normalized box as transform-origin is.
//
// The anchor is the edge a resize from corner leaves in place, so for a
// reflected box it lies on the opposite side from the unreflected case.
func (b Box) AnchorPosition(corner Corner, deg float64, origin geom.Point) geom.Point {
	x0, x1 := span(b.H, b.Width.Pixels(), b.Container.Width)
	y0, y1 := span(b.V, b.Height.Pixels(), b.Container.Height)

	anchor := geom.Point{X: x0, Y: y0}
	if corner&West != 0 {
		anchor.X = x1
	}
	if corner&North != 0 {
		anchor.Y = y1
	}

	r := b.Bounds()
	pivot := geom.Point{X: r.Left + origin.X, Y: r.Top + origin.Y}
	return anchor.Rotate(pivot, deg)
}

// Reflected reports whether either extent is negative.
func (b Box) Reflected() bool {
	return b.Width.Pixels() < 0 || b.Height.Pixels() < 0
}

// Normalize flips any negative extent and shifts its anchor by the same
// amount, so the box covers the same area with non-negative width and
// height.
func (b *Box) Normalize() {
	if w := b.Width.Pixels(); w < 0 {
		b.H.Value = b.H.Value.AddPixels(w)
		b.Width = b.Width.WithPixels(-w)
	}
	if h := b.Height.Pixels(); h < 0 {
		b.V.Value = b.V.Value.AddPixels(h)
		b.Height = b.Height.WithPixels(-h)
	}
}

// Normalized returns a normalized copy, leaving b untouched.
func (b Box) Normalized() Box {
	b.Normalize()
	return b
}

// Update re-samples every value against ctx and adopts its container size.
func (b *Box) Update(ctx units.Context) {
	b.H = b.H.Update(ctx)
	b.V = b.V.Update(ctx)
	b.Width = b.Width.Update(ctx)
	b.Height = b.Height.Update(ctx)
	b.Container = ctx.Container
}
