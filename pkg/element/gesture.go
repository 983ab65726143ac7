package element

import (
	"math"

	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/geom"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Gesture is one pointer or keyboard step, already past any drag threshold.
type Gesture struct {
	DX, DY float64 // screen delta in pixels

	// Constrain limits a move or resize to its dominant screen axis.
	Constrain bool

	// GridX and GridY snap the edited values to multiples of the grid.
	// Values of 0 or 1 disable snapping on that axis.
	GridX, GridY float64

	// Ratio keeps width/height fixed during a resize when positive.
	Ratio float64
}

// delta returns the gesture's delta, with the minor axis dropped when the
// gesture is constrained.
func (g Gesture) delta() (dx, dy float64) {
	if !g.Constrain {
		return g.DX, g.DY
	}
	if math.Abs(g.DX) >= math.Abs(g.DY) {
		return g.DX, 0
	}
	return 0, g.DY
}

// Move moves the element and snaps its offsets to the grid.
func (e *Element) Move(g Gesture) {
	dx, dy := g.delta()
	e.Box.Move(dx, dy)
	e.Box.SnapPosition(g.GridX, g.GridY)
	e.refresh()
}

// Resize drags the handle corner by the gesture's screen delta.
//
// The delta is turned into the element's unrotated frame before it is
// applied, so dragging a rotated element's handle follows the pointer. When
// the element is rotated, or translated by a percentage of its own size,
// changing the size would also shift the element on screen: the rotation
// pivot moves with the box and the translation scales with it. That drift is
// measured at the anchor opposite the handle and cancelled through the
// translation, so only the dragged edges move.
func (e *Element) Resize(corner box.Corner, g Gesture) {
	dx, dy := g.delta()
	local := geom.Point{X: dx, Y: dy}.Rotate(geom.Point{}, -e.Rotation())
	e.resize(corner, func() {
		if g.Ratio > 0 {
			e.Box.ConstrainRatio(local.X, local.Y, g.Ratio, corner)
		} else {
			e.Box.ResizeEdge(local.X, local.Y, corner)
		}
		e.Box.SnapSize(g.GridX, g.GridY)
	})
}

// resize runs edit and then cancels the anchor drift it caused. The check
// must come after the box and every dependent value have been updated, and
// is skipped entirely when nothing can drift, where a correction would
// only move a translation that never changed.
func (e *Element) resize(corner box.Corner, edit func()) {
	drifts := e.Rotation() != 0 || e.Transform.HasPercentTranslation()

	var before geom.Point
	if drifts {
		before = e.AnchorPoint(corner)
	}
	edit()
	e.refresh()
	if drifts {
		e.Transform.Compensate(before, e.AnchorPoint(corner))
	}
}

// MoveBackground shifts the background image by the gesture delta.
func (e *Element) MoveBackground(g Gesture) {
	dx, dy := g.delta()
	x := e.Background[0].AddPixels(dx)
	y := e.Background[1].AddPixels(dy)
	if g.GridX > 1 {
		x = x.WithPixels(math.Round(x.Pixels()/g.GridX) * g.GridX)
	}
	if g.GridY > 1 {
		y = y.WithPixels(math.Round(y.Pixels()/g.GridY) * g.GridY)
	}
	e.Background = [2]units.Value{x, y}
}

// Rotate sets the rotation to deg degrees. The element turns about its
// transform origin.
func (e *Element) Rotate(deg float64) {
	e.Transform.SetRotation(deg)
}

// RotateBy turns the element by delta degrees. With a positive step the
// result is snapped to a multiple of step.
func (e *Element) RotateBy(delta, step float64) {
	deg := e.Rotation() + delta
	if step > 0 {
		deg = math.Round(deg/step) * step
	}
	e.Transform.SetRotation(deg)
}

// Translate moves the element through its transform rather than its
// positioning properties.
func (e *Element) Translate(dx, dy float64) {
	e.Transform.AddTranslation(geom.Point{X: dx, Y: dy})
}

// SetZIndex sets the stacking order.
func (e *Element) SetZIndex(z int) {
	e.ZIndex = e.ZIndex.WithPixels(float64(z))
}

// Layer returns the stacking order; an unset z-index is 0.
func (e *Element) Layer() int {
	return int(e.ZIndex.Pixels())
}

// Raise moves the element one layer up.
func (e *Element) Raise() { e.SetZIndex(e.Layer() + 1) }

// Lower moves the element one layer down.
func (e *Element) Lower() { e.SetZIndex(e.Layer() - 1) }

// SnapToSprite sizes the element to one sprite of its background sheet and
// shifts the background so that sprite shows. The corner opposite the
// bottom-right stays where it is on screen.
func (e *Element) SnapToSprite(r geom.Rect) {
	e.resize(box.SouthEast, func() {
		dw := r.Width - e.Box.Width.Pixels()
		dh := r.Height - e.Box.Height.Pixels()
		e.Box.ResizeEdge(dw, dh, box.SouthEast)
	})
	e.Background = [2]units.Value{
		units.New(-r.Left, units.Pixel, units.SlotFor(units.PropBackgroundPositionX), e.ctx),
		units.New(-r.Top, units.Pixel, units.SlotFor(units.PropBackgroundPositionY), e.ctx),
	}
}
