// Package transform models an element's transform list.
//
// A [Transform] is an ordered list of operations. Two of them are owned by
// the engine and may be edited: the rotation (a plain single-axis rotate)
// and the leading translation (a translate that is the very first
// operation). Every other operation is opaque and is written back exactly as
// it was read, in its original position.
//
// Writes to a missing rotation or translation synthesize one. A new
// translation always goes to the front of the list, ahead of any rotation,
// because translating after rotating would move along the rotated axes.
package transform

import (
	"strings"

	"github.com/matzehuels/stylebox/pkg/geom"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Kind distinguishes the operations the engine edits from the ones it only
// preserves.
type Kind int

const (
	Opaque Kind = iota
	Rotation
	Translation
)

// Op is one transform operation. Rotation ops carry one angle and
// Translation ops carry an x and a y length. Raw holds the source text and
// is what gets written back until the engine edits the op.
type Op struct {
	Kind   Kind
	Name   string
	Raw    string
	Values []units.Value
}

// String renders the operation.
func (o Op) String() string {
	if o.Raw != "" {
		return o.Raw
	}
	switch o.Kind {
	case Rotation:
		return o.Name + "(" + arg(o.Values[0]) + ")"
	case Translation:
		if o.Values[1].IsInitial() {
			return o.Name + "(" + arg(o.Values[0]) + ")"
		}
		return o.Name + "(" + arg(o.Values[0]) + ", " + arg(o.Values[1]) + ")"
	}
	return ""
}

// arg renders a value inside a function, where an initial zero still has
// to be written out.
func arg(v units.Value) string {
	return v.Explicit().String()
}

func (o Op) clone() Op {
	o.Values = append([]units.Value(nil), o.Values...)
	return o
}

// Transform is an ordered transform list.
type Transform struct {
	ops []Op
	ctx units.Context
}

// New returns an empty transform whose synthesized values resolve against
// ctx.
func New(ctx units.Context) *Transform {
	return &Transform{ctx: ctx}
}

// Ops returns a copy of the operations in order.
func (t *Transform) Ops() []Op {
	out := make([]Op, len(t.ops))
	for i, op := range t.ops {
		out[i] = op.clone()
	}
	return out
}

// Len returns the number of operations.
func (t *Transform) Len() int { return len(t.ops) }

// Clone returns a deep copy.
func (t *Transform) Clone() *Transform {
	return &Transform{ops: t.Ops(), ctx: t.ctx}
}

// rotationIndex returns the position of the owned rotation, or -1.
func (t *Transform) rotationIndex() int {
	for i, op := range t.ops {
		if op.Kind == Rotation {
			return i
		}
	}
	return -1
}

// translationIndex returns the position of the owned translation, or -1.
// Only a translate in first position is owned.
func (t *Transform) translationIndex() int {
	if len(t.ops) > 0 && t.ops[0].Kind == Translation {
		return 0
	}
	return -1
}

// Rotation returns the owned rotation in degrees, or 0 if there is none.
func (t *Transform) Rotation() float64 {
	if i := t.rotationIndex(); i >= 0 {
		return t.ops[i].Values[0].Degrees()
	}
	return 0
}

// HasRotation reports whether an owned rotation exists.
func (t *Transform) HasRotation() bool { return t.rotationIndex() >= 0 }

// SetRotation sets the owned rotation to deg degrees, keeping its unit.
// Without a rotation a new rotate(...) is appended.
func (t *Transform) SetRotation(deg float64) {
	if i := t.rotationIndex(); i >= 0 {
		t.ops[i].Values[0] = t.ops[i].Values[0].WithDegrees(deg)
		t.ops[i].Raw = ""
		return
	}
	v := units.New(deg, units.Degree, units.SlotFor(units.PropRotate), t.ctx)
	t.ops = append(t.ops, Op{Kind: Rotation, Name: "rotate", Values: []units.Value{v}})
}

// AddRotation turns the owned rotation by delta degrees.
func (t *Transform) AddRotation(delta float64) {
	t.SetRotation(t.Rotation() + delta)
}

// Translation returns the owned translation in pixels.
func (t *Transform) Translation() geom.Point {
	if i := t.translationIndex(); i >= 0 {
		return geom.Point{X: t.ops[i].Values[0].Pixels(), Y: t.ops[i].Values[1].Pixels()}
	}
	return geom.Point{}
}

// HasTranslation reports whether an owned translation exists.
func (t *Transform) HasTranslation() bool { return t.translationIndex() >= 0 }

// SetTranslation sets the owned translation to p pixels, keeping the units
// of the existing components. Without an owned translation a new one is
// inserted at the front of the list.
func (t *Transform) SetTranslation(p geom.Point) {
	if i := t.translationIndex(); i >= 0 {
		vals := t.ops[i].Values
		vals[0] = vals[0].WithPixels(p.X)
		vals[1] = vals[1].WithPixels(p.Y)
		t.ops[i].Raw = ""
		return
	}
	x := units.New(p.X, units.Pixel, units.SlotFor(units.PropTranslateX), t.ctx)
	y := units.New(p.Y, units.Pixel, units.SlotFor(units.PropTranslateY), t.ctx)
	op := Op{Kind: Translation, Name: "translate", Values: []units.Value{x, y}}
	t.ops = append([]Op{op}, t.ops...)
}

// AddTranslation moves the owned translation by d pixels.
func (t *Transform) AddTranslation(d geom.Point) {
	t.SetTranslation(t.Translation().Add(d))
}

// HasPercentTranslation reports whether the owned translation is expressed
// in percentages of the element box. Such a translation changes in pixels
// whenever the element is resized.
func (t *Transform) HasPercentTranslation() bool {
	i := t.translationIndex()
	if i < 0 {
		return false
	}
	return t.ops[i].Values[0].IsPercent() || t.ops[i].Values[1].IsPercent()
}

// Update re-samples the reference sizes of the owned values. Opaque
// operations are untouched.
func (t *Transform) Update(ctx units.Context) {
	t.ctx = ctx
	for i := range t.ops {
		for j := range t.ops[i].Values {
			t.ops[i].Values[j] = t.ops[i].Values[j].Update(ctx)
		}
	}
}

// Apply maps a pre-transform point to the screen: it rotates p about origin
// by the owned rotation, then adds the owned translation. Opaque operations
// are not modelled.
func (t *Transform) Apply(p, origin geom.Point) geom.Point {
	return p.Rotate(origin, t.Rotation()).Add(t.Translation())
}

// Compensate cancels the drift of an anchor that moved from before to after
// as a side effect of an edit, by shifting the translation back.
func (t *Transform) Compensate(before, after geom.Point) {
	d := after.Sub(before)
	if d.X == 0 && d.Y == 0 {
		return
	}
	t.AddTranslation(geom.Point{X: -d.X, Y: -d.Y})
}

// String serializes the list, or returns "" when it is empty.
func (t *Transform) String() string {
	parts := make([]string, len(t.ops))
	for i, op := range t.ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// Header renders the rotation and translation for on-screen display, for
// example "45deg, 20px, 30px".
func (t *Transform) Header() string {
	rot := "0deg"
	if i := t.rotationIndex(); i >= 0 {
		rot = arg(t.ops[i].Values[0])
	}
	x, y := "0px", "0px"
	if i := t.translationIndex(); i >= 0 {
		x, y = arg(t.ops[i].Values[0]), arg(t.ops[i].Values[1])
	}
	return rot + ", " + x + ", " + y
}
