package units

import "strings"

// Unit identifies the suffix of a value.
type Unit int

const (
	Pixel Unit = iota
	Percent
	Number // unitless integer, e.g. z-index
	Degree
	Radian
	Gradian
	Turn
	Em
	Rem
	ViewportWidth
	ViewportHeight
	ViewportMin
	ViewportMax
)

var suffixes = [...]string{
	Pixel:          "px",
	Percent:        "%",
	Number:         "",
	Degree:         "deg",
	Radian:         "rad",
	Gradian:        "grad",
	Turn:           "turn",
	Em:             "em",
	Rem:            "rem",
	ViewportWidth:  "vw",
	ViewportHeight: "vh",
	ViewportMin:    "vmin",
	ViewportMax:    "vmax",
}

// String returns the CSS suffix of the unit.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(suffixes) {
		return ""
	}
	return suffixes[u]
}

// IsAngle reports whether u measures rotation.
func (u Unit) IsAngle() bool {
	switch u {
	case Degree, Radian, Gradian, Turn:
		return true
	}
	return false
}

// IsRelative reports whether converting u requires a reference size.
func (u Unit) IsRelative() bool {
	switch u {
	case Percent, Em, Rem, ViewportWidth, ViewportHeight, ViewportMin, ViewportMax:
		return true
	}
	return false
}

// ParseUnit maps a CSS suffix to its Unit. Matching is case-insensitive.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(s)
	for u, suffix := range suffixes {
		if suffix == s {
			return Unit(u), true
		}
	}
	return Pixel, false
}

// accepts reports whether kind k can carry unit u.
func (k Kind) accepts(u Unit) bool {
	switch k {
	case Angle:
		return u.IsAngle()
	case Integer:
		return u == Number
	default:
		return !u.IsAngle() && u != Number
	}
}
