// Package align lines up and spaces out groups of boxes.
//
// Both operations work on the axis-aligned bounding rectangles of their
// items and move items only by whole translations: no item is resized. Each
// call builds a short-lived batch of records, resolves a target for every
// record, applies the moves and discards the batch.
package align

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/stylebox/pkg/geom"
)

// Item is anything with a bounding rectangle that can be moved.
type Item interface {
	Bounds() geom.Rect
	MoveBy(dx, dy float64)
}

// Edge selects the line items are aligned to.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
	HCenter
	VCenter
)

var edgeNames = [...]string{"top", "bottom", "left", "right", "hcenter", "vcenter"}

func (e Edge) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return "unknown"
	}
	return edgeNames[e]
}

// ParseEdge parses an edge name. "center" is accepted as hcenter and
// "middle" as vcenter.
func ParseEdge(s string) (Edge, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "center":
		return HCenter, true
	case "middle":
		return VCenter, true
	}
	for i, name := range edgeNames {
		if s == name {
			return Edge(i), true
		}
	}
	return 0, false
}

// Axis returns the direction items move when aligned to e.
func (e Edge) Axis() Axis {
	switch e {
	case Left, Right, HCenter:
		return Horizontal
	}
	return Vertical
}

// Axis is a direction of movement.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis parses "horizontal"/"x" or "vertical"/"y".
func ParseAxis(s string) (Axis, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "x", "h":
		return Horizontal, true
	case "vertical", "y", "v":
		return Vertical, true
	}
	return 0, false
}

// record is one entry of an alignment batch.
type record struct {
	item    Item
	current float64
	target  float64
}

func edgeValue(r geom.Rect, e Edge) float64 {
	switch e {
	case Top:
		return r.Top
	case Bottom:
		return r.Bottom()
	case Left:
		return r.Left
	case Right:
		return r.Right()
	case HCenter:
		return r.CenterX()
	}
	return r.CenterY()
}

// Align moves every item so that its e edge lines up with the others. Top
// and left align to the smallest edge, bottom and right to the largest, and
// the centers to the midpoint between the smallest and largest center.
// It returns the number of items that moved.
func Align(items []Item, e Edge) int {
	if len(items) < 2 {
		return 0
	}

	batch := make([]record, len(items))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, it := range items {
		v := edgeValue(it.Bounds(), e)
		batch[i] = record{item: it, current: v}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var target float64
	switch e {
	case Top, Left:
		target = lo
	case Bottom, Right:
		target = hi
	default:
		target = (lo + hi) / 2
	}

	moved := 0
	for i := range batch {
		batch[i].target = target
		if move(batch[i], e.Axis()) {
			moved++
		}
	}
	return moved
}

func move(r record, a Axis) bool {
	d := r.target - r.current
	if d == 0 {
		return false
	}
	if a == Horizontal {
		r.item.MoveBy(d, 0)
	} else {
		r.item.MoveBy(0, d)
	}
	return true
}

func span(r geom.Rect, a Axis) (near, far float64) {
	if a == Horizontal {
		return r.Left, r.Right()
	}
	return r.Top, r.Bottom()
}

// Distribute spaces items evenly along a. Items are ordered by their near
// edge; the first item never moves. Normally the last item stays put too
// and the items between are spread over the room between the two. When the
// first item reaches further than every other item, the others are spread
// inside it instead and the last item moves as well.
//
// With enough room the gaps are equal and items never overlap. Without it
// the near edges are placed at equal steps instead. Fewer than three items
// is a no-op. It returns the number of items that moved.
func Distribute(items []Item, a Axis) int {
	if len(items) < 3 {
		return 0
	}

	batch := make([]record, len(items))
	for i, it := range items {
		near, _ := span(it.Bounds(), a)
		batch[i] = record{item: it, current: near}
	}
	sort.SliceStable(batch, func(i, j int) bool { return batch[i].current < batch[j].current })

	firstNear, firstFar := span(batch[0].item.Bounds(), a)
	contained := true
	for _, r := range batch[1:] {
		if _, far := span(r.item.Bounds(), a); far >= firstFar {
			contained = false
			break
		}
	}

	// movable is the part of the batch that gets new positions; lo..hi is
	// the room it is spread over.
	var movable []record
	var lo, hi, stepHi float64
	if contained {
		movable = batch[1:]
		lo, hi = firstNear, firstFar
		stepHi = firstFar
	} else {
		last := batch[len(batch)-1]
		lastNear, _ := span(last.item.Bounds(), a)
		movable = batch[1 : len(batch)-1]
		lo, hi = firstFar, lastNear
		stepHi = lastNear
	}

	extents := make([]float64, len(movable))
	total := 0.0
	for i, r := range movable {
		near, far := span(r.item.Bounds(), a)
		extents[i] = far - near
		total += extents[i]
	}

	if total < hi-lo {
		gap := (hi - lo - total) / float64(len(movable)+1)
		pos := lo + gap
		for i := range movable {
			movable[i].target = pos
			pos += extents[i] + gap
		}
	} else {
		step := (stepHi - firstNear) / float64(len(movable)+1)
		for i := range movable {
			movable[i].target = firstNear + float64(i+1)*step
		}
	}

	moved := 0
	for _, r := range movable {
		if move(r, a) {
			moved++
		}
	}
	return moved
}
