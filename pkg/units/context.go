package units

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Context carries every reference size a relative unit may resolve against.
// It is passed explicitly into parsing and [Value.Update]; nothing in this
// package reads ambient document state.
type Context struct {
	Container    Size    // containing block
	Element      Size    // the element's own border box
	Image        Size    // background image drawn inside the element
	Viewport     Size    // layout viewport
	FontSize     float64 // computed font size of the element
	RootFontSize float64 // computed font size of the root element
}

// Kind is the family of values a slot holds.
type Kind int

const (
	Length Kind = iota
	Angle
	Integer
)

// Frame selects the box a percentage resolves against.
type Frame int

const (
	// FrameContainer resolves against the containing block.
	FrameContainer Frame = iota
	// FrameElement resolves against the element's own box.
	FrameElement
	// FrameBackground resolves against the element box minus the
	// background image size, as background-position does.
	FrameBackground
)

// Axis selects which dimension of the frame a percentage uses.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Slot describes what a property expects: the kind of value, the frame and
// axis percentages resolve against, and whether serialization keeps
// sub-pixel precision.
type Slot struct {
	Kind    Kind
	Frame   Frame
	Axis    Axis
	Precise bool
}

// Base returns the pixel size a percentage in frame f along axis a is
// relative to.
func (c Context) Base(f Frame, a Axis) float64 {
	var s Size
	switch f {
	case FrameElement:
		s = c.Element
	case FrameBackground:
		s = Size{Width: c.Element.Width - c.Image.Width, Height: c.Element.Height - c.Image.Height}
	default:
		s = c.Container
	}
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

// reference is the sample of a Context that one value converts against.
type reference struct {
	percent  float64
	font     float64
	rootFont float64
	vw, vh   float64
}

func sample(s Slot, ctx Context) reference {
	return reference{
		percent:  ctx.Base(s.Frame, s.Axis),
		font:     ctx.FontSize,
		rootFont: ctx.RootFontSize,
		vw:       ctx.Viewport.Width,
		vh:       ctx.Viewport.Height,
	}
}
