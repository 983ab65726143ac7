// Package element edits one positioned element.
//
// An [Element] ties together the pieces the lower packages model separately:
// a [box.Box] for the positioning properties, a [transform.Transform], the
// transform origin, the background position and the z-index. It turns user
// gestures into edits of those values and keeps the reference context of
// every value in step with the element's own size, so that percentages of
// the element box stay correct while it is being resized.
//
// Every edit leaves the element in a renderable state. The element never
// fails: malformed style input parses to initial values and gestures on a
// degenerate box produce a degenerate but valid result.
package element

import (
	"math"

	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/geom"
	"github.com/matzehuels/stylebox/pkg/transform"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Element is one positioned element and its editable style.
type Element struct {
	ID         string
	Box        box.Box
	Transform  *transform.Transform
	Origin     [2]units.Value // transform-origin x, y
	Background [2]units.Value // background-position x, y
	ZIndex     units.Value

	ctx units.Context
}

// DefaultOrigin is the transform-origin of an element whose style has none.
const DefaultOrigin = "50% 50%"

// Option configures FromStyle.
type Option func(*options)

type options struct {
	origin string
}

// WithOrigin sets the transform-origin used when the style gives none.
// An empty origin keeps DefaultOrigin.
func WithOrigin(origin string) Option {
	return func(o *options) {
		if origin != "" {
			o.origin = origin
		}
	}
}

// FromStyle builds an element from its style. ctx supplies the container,
// viewport, font and background image sizes; the element size is derived
// from the parsed width and height.
func FromStyle(id string, src StyleSource, ctx units.Context, opts ...Option) *Element {
	o := options{origin: DefaultOrigin}
	for _, opt := range opts {
		opt(&o)
	}
	e := &Element{ID: id, ctx: ctx}

	e.Box.H = position(src, units.PropLeft, units.PropRight, ctx)
	e.Box.V = position(src, units.PropTop, units.PropBottom, ctx)
	e.Box.Width = units.Parse(src.Get(units.PropWidth), units.SlotFor(units.PropWidth), ctx)
	e.Box.Height = units.Parse(src.Get(units.PropHeight), units.SlotFor(units.PropHeight), ctx)
	e.Box.Container = ctx.Container
	e.ZIndex = units.Parse(src.Get(units.PropZIndex), units.SlotFor(units.PropZIndex), ctx)

	e.ctx.Element = e.size()
	e.Transform = transform.Parse(src.Get(PropTransform), e.ctx)
	e.Origin = parsePair(src.Get(PropTransformOrigin), o.origin, units.PropOriginX, units.PropOriginY, e.ctx)
	e.Background = parsePair(src.Get(PropBackgroundPosition), "",
		units.PropBackgroundPositionX, units.PropBackgroundPositionY, e.ctx)
	return e
}

// position picks the anchoring edge of one axis: the start property when it
// is set, else the end property, else an initial start offset.
func position(src StyleSource, start, end string, ctx units.Context) box.Position {
	if raw := src.Get(start); authored(raw) {
		return box.Position{Value: units.Parse(raw, units.SlotFor(start), ctx), Edge: box.Start}
	}
	if raw := src.Get(end); authored(raw) {
		return box.Position{Value: units.Parse(raw, units.SlotFor(end), ctx), Edge: box.End}
	}
	return box.Position{Value: units.Initial(units.SlotFor(start), ctx), Edge: box.Start}
}

// Context returns the reference context the element's values resolve
// against.
func (e *Element) Context() units.Context { return e.ctx }

// SetContext adopts new container, viewport, font and image sizes. The
// element size keeps following the box.
func (e *Element) SetContext(ctx units.Context) {
	e.ctx = ctx
	e.refresh()
}

// SetImage records the background image size, which background-position
// percentages depend on.
func (e *Element) SetImage(size units.Size) {
	e.ctx.Image = size
	e.refresh()
}

func (e *Element) size() units.Size {
	r := e.Box.Bounds()
	return units.Size{Width: r.Width, Height: r.Height}
}

// refresh re-derives the element size from the box and re-samples every
// value against the current context.
func (e *Element) refresh() {
	e.ctx.Element = e.size()
	e.Box.Update(e.ctx)
	e.Transform.Update(e.ctx)
	for i := range e.Origin {
		e.Origin[i] = e.Origin[i].Update(e.ctx)
		e.Background[i] = e.Background[i].Update(e.ctx)
	}
	e.ZIndex = e.ZIndex.Update(e.ctx)
}

// origin returns the transform origin in pixels from the box's top-left.
func (e *Element) origin() geom.Point {
	return geom.Point{X: e.Origin[0].Pixels(), Y: e.Origin[1].Pixels()}
}

// Rotation returns the element's rotation in degrees.
func (e *Element) Rotation() float64 { return e.Transform.Rotation() }

// AnchorPoint returns where on screen the anchor of a resize from corner
// sits: the box corner or edge opposite the handle, rotated about the
// transform origin and translated.
func (e *Element) AnchorPoint(corner box.Corner) geom.Point {
	p := e.Box.AnchorPosition(corner, e.Rotation(), e.origin())
	return p.Add(e.Transform.Translation())
}

// Corners returns the four screen corners of the element in the order
// top-left, top-right, bottom-right, bottom-left.
func (e *Element) Corners() [4]geom.Point {
	r := e.Box.Bounds()
	pivot := geom.Point{X: r.Left, Y: r.Top}.Add(e.origin())
	t := e.Transform.Translation()
	pts := [4]geom.Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right(), Y: r.Top},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left, Y: r.Bottom()},
	}
	for i, p := range pts {
		pts[i] = p.Rotate(pivot, e.Rotation()).Add(t)
	}
	return pts
}

// Bounds returns the axis-aligned rectangle the element covers on screen,
// rotation and translation included.
func (e *Element) Bounds() geom.Rect {
	pts := e.Corners()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return geom.Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// MoveBy moves the element by screen pixels through its positioning
// properties.
func (e *Element) MoveBy(dx, dy float64) {
	e.Box.Move(dx, dy)
	e.refresh()
}

// Normalize resolves a reflected box into one with non-negative extents
// covering the same area.
func (e *Element) Normalize() {
	if e.Box.Reflected() {
		e.Box.Normalize()
		e.refresh()
	}
}
