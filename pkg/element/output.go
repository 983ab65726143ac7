package element

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Declaration is one CSS property and value.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

// Declarations returns the element's authored style in a fixed property
// order. The box is normalized first, so a reflected box is written with
// non-negative extents. Properties still at their initial value are left
// out.
func (e *Element) Declarations() []Declaration {
	b := e.Box.Normalized()
	var out []Declaration
	add := func(prop, val string) {
		if val != "" {
			out = append(out, Declaration{Property: prop, Value: val})
		}
	}

	add(edgeProp(b.H.Edge, units.PropLeft, units.PropRight), b.H.Value.String())
	add(edgeProp(b.V.Edge, units.PropTop, units.PropBottom), b.V.Value.String())
	add(units.PropWidth, b.Width.String())
	add(units.PropHeight, b.Height.String())
	add(units.PropZIndex, e.ZIndex.String())
	add(PropTransform, e.Transform.String())
	if !e.Background[0].IsInitial() || !e.Background[1].IsInitial() {
		add(PropBackgroundPosition, pairString(e.Background))
	}
	return out
}

func edgeProp(edge box.Edge, start, end string) string {
	if edge == box.End {
		return end
	}
	return start
}

// StylePatch returns the declarations as a property map, ready to be merged
// into an inline style. The property of the unused anchoring edge of each
// axis maps to "auto" so that a stale value cannot pin the other edge.
func (e *Element) StylePatch() map[string]string {
	patch := make(map[string]string)
	for _, d := range e.Declarations() {
		patch[d.Property] = d.Value
	}
	b := e.Box
	if _, ok := patch[edgeProp(b.H.Edge, units.PropLeft, units.PropRight)]; ok {
		patch[edgeProp(b.H.Edge, units.PropRight, units.PropLeft)] = "auto"
	}
	if _, ok := patch[edgeProp(b.V.Edge, units.PropTop, units.PropBottom)]; ok {
		patch[edgeProp(b.V.Edge, units.PropBottom, units.PropTop)] = "auto"
	}
	return patch
}

// CSS renders the declarations as a rule body, one per line.
func (e *Element) CSS() string {
	var sb strings.Builder
	for _, d := range e.Declarations() {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Headers is the short on-screen summary of an element.
type Headers struct {
	Position   string `json:"position"`
	Size       string `json:"size"`
	Transform  string `json:"transform"`
	Background string `json:"background"`
	ZIndex     string `json:"z_index"`
}

// Headers summarizes the element for display, for example position
// "10px, 20px", size "100px × 50px" and transform "45deg, 0px, 0px".
func (e *Element) Headers() Headers {
	b := e.Box.Normalized()
	z := e.ZIndex.String()
	if z == "" {
		z = "auto"
	}
	return Headers{
		Position:   b.H.Value.Explicit().String() + ", " + b.V.Value.Explicit().String(),
		Size:       fmt.Sprintf("%s × %s", b.Width.Explicit(), b.Height.Explicit()),
		Transform:  e.Transform.Header(),
		Background: e.Background[0].Explicit().String() + ", " + e.Background[1].Explicit().String(),
		ZIndex:     z,
	}
}
