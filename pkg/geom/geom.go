// Package geom provides the small set of planar primitives shared by the
// box, transform, and alignment packages.
//
// All coordinates are in CSS pixels with the y axis pointing down, so a
// positive rotation turns clockwise on screen.
package geom

import "math"

// Point is a position or displacement in pixel space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rotate turns p about origin by deg degrees.
func (p Point) Rotate(origin Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(origin)
	return Point{
		X: origin.X + d.X*cos - d.Y*sin,
		Y: origin.Y + d.X*sin + d.Y*cos,
	}
}

// Rect is an axis-aligned rectangle. Width and Height are expected to be
// non-negative; callers that carry reflected extents normalize first.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}
