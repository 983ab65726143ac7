package element

import (
	"strings"

	"github.com/matzehuels/stylebox/pkg/units"
)

// CSS property names read from a style source.
const (
	PropTransform          = "transform"
	PropTransformOrigin    = "transform-origin"
	PropBackgroundPosition = "background-position"
	PropBackgroundImage    = "background-image"
)

// StyleSource holds the two views of an element's style: the declarations as
// authored (Raw) and the values the browser resolved (Computed).
//
// Authored values are preferred because they keep the author's units. A few
// properties are always taken from the computed view because their authored
// form is too loose to edit safely: transform-origin, and background-position
// when the background is a gradient.
type StyleSource struct {
	Raw      map[string]string `json:"raw,omitempty" toml:"raw" yaml:"raw,omitempty"`
	Computed map[string]string `json:"computed,omitempty" toml:"computed" yaml:"computed,omitempty"`
}

// Get returns the value to parse for prop, or "" if neither view has one.
func (s StyleSource) Get(prop string) string {
	if !s.computedOnly(prop) {
		if v := strings.TrimSpace(s.Raw[prop]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(s.Computed[prop])
}

func (s StyleSource) computedOnly(prop string) bool {
	switch prop {
	case PropTransformOrigin:
		return true
	case PropBackgroundPosition:
		img := s.Raw[PropBackgroundImage]
		if img == "" {
			img = s.Computed[PropBackgroundImage]
		}
		return strings.Contains(strings.ToLower(img), "gradient(")
	}
	return false
}

// authored reports whether prop has a usable value other than auto.
func authored(raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return raw != "" && raw != "auto"
}

// parsePair reads a two-component position such as "left 20%" or "10px".
// A single component leaves the other centered, and vertical keywords
// written first are swapped into place. Empty input falls back to def, or
// to a pair of initial values when def is empty too.
func parsePair(raw string, def string, xProp, yProp string, ctx units.Context) [2]units.Value {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		fields = strings.Fields(def)
	}
	if len(fields) == 0 {
		return [2]units.Value{
			units.Initial(units.SlotFor(xProp), ctx),
			units.Initial(units.SlotFor(yProp), ctx),
		}
	}
	x, y := fields[0], "center"
	if len(fields) > 1 {
		y = fields[1]
	}
	if isVertical(x) || isHorizontal(y) {
		x, y = y, x
	}
	return [2]units.Value{
		units.Parse(x, units.SlotFor(xProp), ctx),
		units.Parse(y, units.SlotFor(yProp), ctx),
	}
}

func isVertical(s string) bool {
	s = strings.ToLower(s)
	return s == "top" || s == "bottom"
}

func isHorizontal(s string) bool {
	s = strings.ToLower(s)
	return s == "left" || s == "right"
}

// pairString renders a two-component value, writing initial components as
// zero so the pair keeps both positions.
func pairString(p [2]units.Value) string {
	return p[0].Explicit().String() + " " + p[1].Explicit().String()
}
