package element

import (
	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/transform"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Snapshot is an opaque copy of an element's editable state.
type Snapshot struct {
	box        box.Box
	transform  *transform.Transform
	origin     [2]units.Value
	background [2]units.Value
	zIndex     units.Value
	ctx        units.Context
}

// Snapshot captures the element's current state.
func (e *Element) Snapshot() Snapshot {
	return Snapshot{
		box:        e.Box,
		transform:  e.Transform.Clone(),
		origin:     e.Origin,
		background: e.Background,
		zIndex:     e.ZIndex,
		ctx:        e.ctx,
	}
}

// Restore puts the element back into the state of s.
func (e *Element) Restore(s Snapshot) {
	e.Box = s.box
	e.Transform = s.transform.Clone()
	e.Origin = s.origin
	e.Background = s.background
	e.ZIndex = s.zIndex
	e.ctx = s.ctx
}

// DefaultHistoryLimit is the undo depth of a zero History.
const DefaultHistoryLimit = 100

// History is a LIFO undo/redo stack of snapshots for one element.
type History struct {
	Limit int

	undo []Snapshot
	redo []Snapshot
}

// Record saves the element's state before an edit. Recording clears the
// redo stack.
func (h *History) Record(e *Element) {
	limit := h.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h.undo = append(h.undo, e.Snapshot())
	if len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
	h.redo = h.redo[:0]
}

// Undo restores the most recently recorded state. It reports false when
// there is nothing to undo.
func (h *History) Undo(e *Element) bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, e.Snapshot())
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	e.Restore(s)
	return true
}

// Redo re-applies the most recently undone state.
func (h *History) Redo(e *Element) bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = append(h.undo, e.Snapshot())
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	e.Restore(s)
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
