package transform

import (
	"strings"

	"github.com/matzehuels/stylebox/pkg/units"
)

// Parse reads a transform list such as "translate(10px, 5%) rotate(45deg)".
// Operations the engine does not edit are kept as opaque text. Input that
// cannot be tokenized is kept whole as a single opaque operation so that
// nothing the author wrote is lost.
func Parse(raw string, ctx units.Context) *Transform {
	t := &Transform{ctx: ctx}
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "none") {
		return t
	}

	for s != "" {
		open := strings.IndexByte(s, '(')
		if open <= 0 {
			t.ops = append(t.ops, Op{Kind: Opaque, Raw: s})
			return t
		}
		end := matchParen(s, open)
		if end < 0 {
			t.ops = append(t.ops, Op{Kind: Opaque, Raw: s})
			return t
		}

		text := s[:end+1]
		name := strings.TrimSpace(s[:open])
		args := splitArgs(s[open+1 : end])
		t.ops = append(t.ops, classify(name, args, text, ctx))
		s = strings.TrimSpace(s[end+1:])
	}
	return t
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// classify decides whether an operation is one the engine may edit. Only a
// plain single-axis rotate and a two-dimensional translate qualify; anything
// else, including rotate3d, rotateX, and matrix forms, stays opaque.
func classify(name string, args []string, text string, ctx units.Context) Op {
	opaque := Op{Kind: Opaque, Name: name, Raw: text}

	switch strings.ToLower(name) {
	case "rotate", "rotatez":
		if len(args) != 1 {
			return opaque
		}
		v, ok := units.ParseStrict(args[0], units.SlotFor(units.PropRotate), ctx)
		if !ok {
			return opaque
		}
		return Op{Kind: Rotation, Name: name, Raw: text, Values: []units.Value{v}}

	case "translate":
		if len(args) < 1 || len(args) > 2 {
			return opaque
		}
		x, ok := units.ParseStrict(args[0], units.SlotFor(units.PropTranslateX), ctx)
		if !ok {
			return opaque
		}
		y := units.Initial(units.SlotFor(units.PropTranslateY), ctx)
		if len(args) == 2 {
			if y, ok = units.ParseStrict(args[1], units.SlotFor(units.PropTranslateY), ctx); !ok {
				return opaque
			}
		}
		return Op{Kind: Translation, Name: name, Raw: text, Values: []units.Value{x, y}}
	}
	return opaque
}
