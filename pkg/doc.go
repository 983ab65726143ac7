// Package pkg provides the core libraries of stylebox, a geometry engine for
// absolutely positioned elements.
//
// # Overview
//
// Stylebox edits the position, size, rotation and stacking order of
// elements described by CSS-like style declarations, and writes the result
// back in the units the author used. The pkg directory is organized in
// layers, each depending only on the ones above it:
//
//  1. [geom], [units] - Points, rectangles and CSS values with units
//  2. [box], [transform] - The positioning box and the transform list
//  3. [element] - Gestures on one element, undo history and output
//  4. [align], [layout] - Batch edits and layout documents
//  5. [sprite] - Sprite sheet recognition
//  6. [cache], [httputil], [observability], [errors] - Infrastructure
//
// # Data Flow
//
//	layout document (TOML, YAML, JSON)
//	         ↓
//	    [layout] package (decode, build elements)
//	         ↓
//	    [element] package (move, resize, rotate, snap)
//	         ↓
//	    [layout] package (patch the raw style)
//	         ↓
//	document / CSS / JSON report
//
// # Quick Start
//
//	l, err := layout.Load("page.toml")
//	if err != nil {
//	    return err
//	}
//	e, err := l.Find("logo")
//	if err != nil {
//	    return err
//	}
//	e.Resize(box.SouthEast, element.Gesture{DX: 20, DY: 10})
//	return l.WriteCSS(os.Stdout)
//
// The stylebox command in cmd/stylebox wraps these packages in a CLI, and
// internal/api exposes them over HTTP.
package pkg
