package units

// Property names understood by the engine. The translate, transform-origin,
// and background-position names address single components of their
// shorthand so each gets its own slot.
const (
	PropLeft                = "left"
	PropRight               = "right"
	PropTop                 = "top"
	PropBottom              = "bottom"
	PropWidth               = "width"
	PropHeight              = "height"
	PropZIndex              = "z-index"
	PropRotate              = "rotate"
	PropTranslateX          = "translate-x"
	PropTranslateY          = "translate-y"
	PropOriginX             = "transform-origin-x"
	PropOriginY             = "transform-origin-y"
	PropBackgroundPositionX = "background-position-x"
	PropBackgroundPositionY = "background-position-y"
)

// slots maps each property to the reference it resolves against. Transform
// components resolve against the element's own box and background-position
// against the area left over by the image; this mirrors what browsers render
// rather than a literal reading of the containing-block rules.
var slots = map[string]Slot{
	PropLeft:                {Kind: Length, Frame: FrameContainer, Axis: Horizontal},
	PropRight:               {Kind: Length, Frame: FrameContainer, Axis: Horizontal},
	PropWidth:               {Kind: Length, Frame: FrameContainer, Axis: Horizontal},
	PropTop:                 {Kind: Length, Frame: FrameContainer, Axis: Vertical},
	PropBottom:              {Kind: Length, Frame: FrameContainer, Axis: Vertical},
	PropHeight:              {Kind: Length, Frame: FrameContainer, Axis: Vertical},
	PropZIndex:              {Kind: Integer},
	PropRotate:              {Kind: Angle, Precise: true},
	PropTranslateX:          {Kind: Length, Frame: FrameElement, Axis: Horizontal, Precise: true},
	PropTranslateY:          {Kind: Length, Frame: FrameElement, Axis: Vertical, Precise: true},
	PropOriginX:             {Kind: Length, Frame: FrameElement, Axis: Horizontal, Precise: true},
	PropOriginY:             {Kind: Length, Frame: FrameElement, Axis: Vertical, Precise: true},
	PropBackgroundPositionX: {Kind: Length, Frame: FrameBackground, Axis: Horizontal},
	PropBackgroundPositionY: {Kind: Length, Frame: FrameBackground, Axis: Vertical},
}

// SlotFor returns the slot of a property. Unknown properties get a plain
// horizontal container length so callers always have something to parse with.
func SlotFor(property string) Slot {
	if s, ok := slots[property]; ok {
		return s
	}
	return Slot{Kind: Length}
}

// KnownProperty reports whether property has an entry in the slot table.
func KnownProperty(property string) bool {
	_, ok := slots[property]
	return ok
}
