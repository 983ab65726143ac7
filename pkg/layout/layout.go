// Package layout holds a flat list of positioned elements.
//
// A layout is loaded from a TOML, YAML or JSON document describing the
// reference context and the style of each element. It is a list, not a
// scene graph: elements share one containing block and the only relation
// between them is their stacking order. Batch edits (align, distribute,
// re-layering) run over any subset of the elements and the result can be
// written back as a document or exported as CSS or JSON.
package layout

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stylebox/pkg/align"
	"github.com/matzehuels/stylebox/pkg/element"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/httputil"
	"github.com/matzehuels/stylebox/pkg/observability"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Layout is a loaded document.
type Layout struct {
	Context  units.Context
	Elements []*element.Element

	spec  ContextSpec
	specs []ElementSpec
	dir   string

	defaults units.Context
	origin   string
}

// Option configures New and Load.
type Option func(*Layout)

// WithContext supplies the reference sizes the document leaves at zero: the
// container, the viewport and the two font sizes.
func WithContext(ctx units.Context) Option {
	return func(l *Layout) { l.defaults = ctx }
}

// WithOrigin sets the transform-origin of elements whose style has none.
func WithOrigin(origin string) Option {
	return func(l *Layout) { l.origin = origin }
}

// Load reads the document at path. The format follows the extension.
func Load(path string, opts ...Option) (*Layout, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such layout: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "open %s", path)
	}
	defer f.Close()

	doc, err := DecodeDocument(f, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	l, err := New(doc, opts...)
	if err != nil {
		return nil, err
	}
	l.dir = filepath.Dir(path)
	return l, nil
}

// New builds a layout from a decoded document. Elements without an id get
// a generated one.
func New(doc *Document, opts ...Option) (*Layout, error) {
	l := &Layout{spec: doc.Context}
	for _, opt := range opts {
		opt(l)
	}
	l.Context = doc.Context.over(l.defaults).Units()
	seen := make(map[string]bool)

	for i, spec := range doc.Elements {
		if spec.ID == "" {
			spec.ID = "el-" + uuid.NewString()
		}
		if err := validate(spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "element %d", i)
		}
		if seen[spec.ID] {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "duplicate element id %q", spec.ID)
		}
		seen[spec.ID] = true

		ctx := l.Context
		if spec.Image != nil {
			ctx.Image = units.Size(*spec.Image)
		}
		src := element.StyleSource{Raw: spec.Raw, Computed: spec.Computed}
		l.Elements = append(l.Elements, element.FromStyle(spec.ID, src, ctx, element.WithOrigin(l.origin)))
		l.specs = append(l.specs, spec)
	}
	return l, nil
}

func validate(spec ElementSpec) error {
	if err := errors.ValidateElementID(spec.ID); err != nil {
		return err
	}
	if spec.Sheet != "" {
		if err := errors.ValidatePath(spec.Sheet); err != nil {
			return err
		}
	}
	for _, m := range []map[string]string{spec.Raw, spec.Computed} {
		for prop := range m {
			if err := errors.ValidateProperty(prop); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the element with the given id.
func (l *Layout) Find(id string) (*element.Element, error) {
	if i := l.index(id); i >= 0 {
		return l.Elements[i], nil
	}
	return nil, errors.New(errors.ErrCodeElementNotFound, "no element %q", id)
}

func (l *Layout) index(id string) int {
	for i, e := range l.Elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Select returns the elements with the given ids in that order, or every
// element when ids is empty.
func (l *Layout) Select(ids []string) ([]*element.Element, error) {
	if len(ids) == 0 {
		return append([]*element.Element(nil), l.Elements...), nil
	}
	out := make([]*element.Element, 0, len(ids))
	for _, id := range ids {
		e, err := l.Find(id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SheetPath returns the sprite sheet of an element resolved against the
// document's directory, or "" if it has none. URLs are returned as is.
func (l *Layout) SheetPath(id string) string {
	i := l.index(id)
	if i < 0 || l.specs[i].Sheet == "" {
		return ""
	}
	if sheet := l.specs[i].Sheet; httputil.IsRemote(sheet) {
		return sheet
	}
	return filepath.Join(l.dir, filepath.FromSlash(l.specs[i].Sheet))
}

func items(els []*element.Element) []align.Item {
	out := make([]align.Item, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

// Align aligns the selected elements to edge and returns how many moved.
func (l *Layout) Align(ctx context.Context, ids []string, edge align.Edge) (int, error) {
	els, err := l.Select(ids)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n := align.Align(items(els), edge)
	observability.Edit().OnEdit(ctx, "align", len(els), time.Since(start))
	return n, nil
}

// Distribute spaces the selected elements along axis and returns how many
// moved.
func (l *Layout) Distribute(ctx context.Context, ids []string, axis align.Axis) (int, error) {
	els, err := l.Select(ids)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n := align.Distribute(items(els), axis)
	observability.Edit().OnEdit(ctx, "distribute", len(els), time.Since(start))
	return n, nil
}

// BringToFront puts the element above every other element.
func (l *Layout) BringToFront(id string) error {
	e, err := l.Find(id)
	if err != nil {
		return err
	}
	top := e.Layer()
	for _, o := range l.Elements {
		if o != e && o.Layer() >= top {
			top = o.Layer() + 1
		}
	}
	e.SetZIndex(top)
	return nil
}

// SendToBack puts the element below every other element.
func (l *Layout) SendToBack(id string) error {
	e, err := l.Find(id)
	if err != nil {
		return err
	}
	bottom := e.Layer()
	for _, o := range l.Elements {
		if o != e && o.Layer() <= bottom {
			bottom = o.Layer() - 1
		}
	}
	e.SetZIndex(bottom)
	return nil
}

// Document returns the layout as a document. Each element's authored style
// is its original raw style with the edited properties patched in.
func (l *Layout) Document() *Document {
	doc := &Document{Context: l.spec}
	for i, e := range l.Elements {
		spec := l.specs[i]
		raw := maps.Clone(spec.Raw)
		if raw == nil {
			raw = make(map[string]string)
		}
		for k, v := range e.StylePatch() {
			raw[k] = v
		}
		spec.Raw = raw
		doc.Elements = append(doc.Elements, spec)
	}
	return doc
}
