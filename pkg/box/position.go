package box

import "github.com/matzehuels/stylebox/pkg/units"

// Edge is the side of the containing block a position measures from.
type Edge int

const (
	// Start anchors to the left or top edge.
	Start Edge = iota
	// End anchors to the right or bottom edge.
	End
)

// Position is one edge-anchored offset, such as left or right.
type Position struct {
	Value units.Value
	Edge  Edge
}

// Offset returns the offset in pixels, measured from the anchoring edge.
func (p Position) Offset() float64 { return p.Value.Pixels() }

// Move shifts the position by d pixels in screen space. A positive d always
// moves toward the right or bottom, which for an end-anchored position
// means shrinking its offset.
func (p Position) Move(d float64) Position {
	if p.Edge == End {
		d = -d
	}
	p.Value = p.Value.AddPixels(d)
	return p
}

// Update re-samples the position's reference sizes.
func (p Position) Update(ctx units.Context) Position {
	p.Value = p.Value.Update(ctx)
	return p
}

// span returns the near (start-side) and far edge of an axis in container
// coordinates. far-near equals the signed extent, so far lies before near
// while the box is reflected.
func span(p Position, extent, container float64) (near, far float64) {
	if p.Edge == End {
		far = container - p.Offset()
		return far - extent, far
	}
	near = p.Offset()
	return near, near + extent
}
