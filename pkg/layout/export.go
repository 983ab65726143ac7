package layout

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/stylebox/pkg/element"
)

// WriteCSS writes one `#id { ... }` rule per element. Elements with no
// authored properties are skipped.
func (l *Layout) WriteCSS(w io.Writer) error {
	first := true
	for _, e := range l.Elements {
		decls := e.Declarations()
		if len(decls) == 0 {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprintf(w, "#%s {\n", e.ID); err != nil {
			return err
		}
		for _, d := range decls {
			if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return err
		}
	}
	return nil
}

// ElementReport is the JSON export of one element.
type ElementReport struct {
	ID           string                `json:"id"`
	Declarations []element.Declaration `json:"declarations"`
	Headers      element.Headers       `json:"headers"`
	Bounds       Rect                  `json:"bounds"`
}

// Rect is a rectangle in JSON output.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Report builds the JSON export of every element.
func (l *Layout) Report() []ElementReport {
	out := make([]ElementReport, 0, len(l.Elements))
	for _, e := range l.Elements {
		decls := e.Declarations()
		if decls == nil {
			decls = []element.Declaration{}
		}
		b := e.Bounds()
		out = append(out, ElementReport{
			ID:           e.ID,
			Declarations: decls,
			Headers:      e.Headers(),
			Bounds:       Rect{Left: b.Left, Top: b.Top, Width: b.Width, Height: b.Height},
		})
	}
	return out
}

// WriteJSON writes [Layout.Report] as indented JSON.
func (l *Layout) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.Report())
}
