// Package units models the typed numeric values of the styling language and
// converts them to and from a common pixel (or degree) space.
//
// # Values
//
// A [Value] pairs a magnitude with a [Unit] and remembers which [Slot] it was
// parsed for. The slot fixes the value's kind (length, angle, or unitless
// integer), which dimension percentages resolve against ([Frame] and [Axis]),
// and the precision used when the value is serialized.
//
// Relative units (percent, em, rem, and the viewport units) need a reference
// size to convert. Rather than consulting a live document, every conversion
// reads a sample of the [Context] taken when the value was created or last
// refreshed with [Value.Update]:
//
//	ctx := units.Context{Container: units.Size{Width: 800, Height: 600}}
//	v := units.Parse("25%", units.SlotFor("left"), ctx)
//	v.Pixels() // 200
//
//	ctx.Container.Width = 400
//	v.Pixels()             // still 200: the sample is stale
//	v.Update(ctx).Pixels() // 100
//
// # Immutability
//
// Values are small immutable structs. Mutating operations such as
// [Value.WithPixels] and [Value.AddPixels] return a new value, so copying a
// Value is a deep clone that preserves its conversion context.
//
// # Fallbacks
//
// Parsing never fails: unparsable text degrades to an initial, zero pixel
// value, and conversions whose reference size is zero report zero instead of
// dividing by it. Use [ParseStrict] when the caller needs to know whether the
// text was understood.
package units
