package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Value is a magnitude with a unit, bound to the slot it was parsed for and
// to a sample of the reference sizes it converts against.
type Value struct {
	mag     float64
	unit    Unit
	initial bool
	slot    Slot
	ref     reference
}

// numberRe splits a CSS dimension into its number and suffix.
var numberRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)([a-zA-Z%]*)$`)

// keywordPercents are the position keywords accepted by origin and
// background slots.
var keywordPercents = map[string]float64{
	"left":   0,
	"top":    0,
	"center": 50,
	"right":  100,
	"bottom": 100,
}

// New returns an explicit value.
func New(mag float64, unit Unit, slot Slot, ctx Context) Value {
	if slot.Kind == Integer {
		mag = math.Round(mag)
	}
	return Value{mag: mag, unit: unit, slot: slot, ref: sample(slot, ctx)}
}

// Initial returns the zero value of slot, marked as never authored.
func Initial(slot Slot, ctx Context) Value {
	return Value{unit: defaultUnit(slot.Kind), initial: true, slot: slot, ref: sample(slot, ctx)}
}

// Parse reads raw as a value for slot. Empty, keyword-only ("auto", "none",
// "initial"), and unparsable input all yield [Initial].
func Parse(raw string, slot Slot, ctx Context) Value {
	v, ok := ParseStrict(raw, slot, ctx)
	if !ok {
		return Initial(slot, ctx)
	}
	return v
}

// ParseStrict is like [Parse] but reports whether raw was understood as an
// explicit value.
func ParseStrict(raw string, slot Slot, ctx Context) (Value, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Value{}, false
	}
	if pct, ok := keywordPercents[s]; ok && slot.Kind == Length && slot.Frame != FrameContainer {
		return New(pct, Percent, slot, ctx), true
	}

	m := numberRe.FindStringSubmatch(s)
	if m == nil {
		return Value{}, false
	}
	mag, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, false
	}

	unit := defaultUnit(slot.Kind)
	if m[2] != "" {
		u, ok := ParseUnit(m[2])
		if !ok || !slot.Kind.accepts(u) {
			return Value{}, false
		}
		unit = u
	} else if slot.Kind == Integer && mag != math.Trunc(mag) {
		return Value{}, false
	}
	return New(mag, unit, slot, ctx), true
}

func defaultUnit(k Kind) Unit {
	switch k {
	case Angle:
		return Degree
	case Integer:
		return Number
	}
	return Pixel
}

// Magnitude returns the number as authored, in the value's own unit.
func (v Value) Magnitude() float64 { return v.mag }

// Unit returns the value's unit.
func (v Value) Unit() Unit { return v.unit }

// Slot returns the slot the value was parsed for.
func (v Value) Slot() Slot { return v.slot }

// IsInitial reports whether the value was never explicitly authored.
func (v Value) IsInitial() bool { return v.initial }

// IsRelative reports whether the value's pixel size depends on a reference.
func (v Value) IsRelative() bool { return v.unit.IsRelative() }

// IsPercent reports whether the value is a percentage.
func (v Value) IsPercent() bool { return v.unit == Percent }

// Explicit returns v marked as authored, so it serializes even when zero.
func (v Value) Explicit() Value {
	v.initial = false
	return v
}

// Pixels converts the value to pixels using its sampled reference. Angles
// have no pixel size and report zero.
func (v Value) Pixels() float64 {
	switch v.unit {
	case Pixel, Number:
		return v.mag
	case Percent:
		return v.mag / 100 * v.ref.percent
	case Em:
		return v.mag * v.ref.font
	case Rem:
		return v.mag * v.ref.rootFont
	case ViewportWidth:
		return v.mag / 100 * v.ref.vw
	case ViewportHeight:
		return v.mag / 100 * v.ref.vh
	case ViewportMin:
		return v.mag / 100 * math.Min(v.ref.vw, v.ref.vh)
	case ViewportMax:
		return v.mag / 100 * math.Max(v.ref.vw, v.ref.vh)
	}
	return 0
}

// WithPixels returns the value whose pixel size is px, keeping the unit.
// A relative unit whose reference is zero stores a zero magnitude.
func (v Value) WithPixels(px float64) Value {
	switch v.unit {
	case Pixel:
		v.mag = px
	case Number:
		v.mag = math.Round(px)
	case Percent:
		v.mag = ratio(px, v.ref.percent) * 100
	case Em:
		v.mag = ratio(px, v.ref.font)
	case Rem:
		v.mag = ratio(px, v.ref.rootFont)
	case ViewportWidth:
		v.mag = ratio(px, v.ref.vw) * 100
	case ViewportHeight:
		v.mag = ratio(px, v.ref.vh) * 100
	case ViewportMin:
		v.mag = ratio(px, math.Min(v.ref.vw, v.ref.vh)) * 100
	case ViewportMax:
		v.mag = ratio(px, math.Max(v.ref.vw, v.ref.vh)) * 100
	default:
		return v
	}
	v.initial = false
	return v
}

// AddPixels returns the value grown by d pixels.
func (v Value) AddPixels(d float64) Value {
	return v.WithPixels(v.Pixels() + d)
}

// Degrees converts an angle to degrees. Non-angles report zero.
func (v Value) Degrees() float64 {
	switch v.unit {
	case Degree:
		return v.mag
	case Radian:
		return v.mag * 180 / math.Pi
	case Gradian:
		return v.mag * 0.9
	case Turn:
		return v.mag * 360
	}
	return 0
}

// WithDegrees returns the angle equal to deg degrees, keeping the unit.
func (v Value) WithDegrees(deg float64) Value {
	switch v.unit {
	case Degree:
		v.mag = deg
	case Radian:
		v.mag = deg * math.Pi / 180
	case Gradian:
		v.mag = deg / 0.9
	case Turn:
		v.mag = deg / 360
	default:
		return v
	}
	v.initial = false
	return v
}

// Convert re-expresses the value in unit u without changing its size.
// Conversions across kinds are ignored.
func (v Value) Convert(u Unit) Value {
	if !v.slot.Kind.accepts(u) || u == v.unit {
		return v
	}
	out := v
	out.unit = u
	if v.unit.IsAngle() {
		return out.WithDegrees(v.Degrees())
	}
	return out.WithPixels(v.Pixels())
}

// Update re-samples the value's reference sizes from ctx. It must be called
// whenever a referenced dimension may have changed; until then percentages
// and font-relative values keep converting against the old sizes.
func (v Value) Update(ctx Context) Value {
	v.ref = sample(v.slot, ctx)
	return v
}

// String serializes the value, or returns "" if it is initial.
func (v Value) String() string {
	if v.initial {
		return ""
	}
	return FormatNumber(v.mag, v.precision()) + v.unit.String()
}

// precision is the number of decimals kept when serializing. Pixel lengths
// round to whole pixels unless the slot takes part in rotation or
// translation math, where two decimals absorb trigonometric drift.
// Relative units always keep two decimals: one percent of a 1000px
// container or one em is 10px or more, so whole numbers cannot hold a
// pixel-accurate edit.
func (v Value) precision() int {
	switch {
	case v.unit == Radian || v.unit == Turn:
		return 4
	case v.unit == Number:
		return 0
	case v.slot.Precise, v.unit.IsAngle(), v.unit.IsRelative():
		return 2
	}
	return 0
}

// FormatNumber rounds f to prec decimals and trims trailing zeros.
func FormatNumber(f float64, prec int) string {
	p := math.Pow(10, float64(prec))
	r := math.Round(f*p) / p
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func ratio(px, base float64) float64 {
	if base == 0 {
		return 0
	}
	return px / base
}
