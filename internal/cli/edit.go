package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/element"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/layout"
	"github.com/matzehuels/stylebox/pkg/sprite"
	"github.com/matzehuels/stylebox/pkg/units"
)

// editOpts holds the command-line flags for the edit command. Edits run in
// the order the fields are listed.
type editOpts struct {
	id        string
	move      string  // "dx,dy"
	resize    string  // "dx,dy", applied at handle
	handle    string  // corner name: n, ne, e, se, s, sw, w, nw
	ratio     float64 // keep width/height during resize
	constrain bool    // drop the minor axis of move and resize
	translate string  // "dx,dy" through the transform
	rotate    string  // absolute degrees
	rotateBy  float64
	step      float64 // rotation snap step
	z         string  // absolute z-index
	front     bool
	back      bool
	snap      string // "x,y" pixel of the element's sprite sheet
	bg        string // "dx,dy" background shift
	write     bool
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [layout]",
		Short: "Move, resize, rotate or re-layer one element",
		Long: `Apply gestures to one element of a layout and print its new declarations.

Resizing keeps the corner opposite the handle fixed on screen, also for
rotated elements and elements translated by a percentage of their own size.
Values keep the units they were written in.

Use --write to save the layout in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "element id (required)")
	cmd.Flags().StringVar(&opts.move, "move", "", "move by dx,dy pixels")
	cmd.Flags().StringVar(&opts.resize, "resize", "", "drag the --handle by dx,dy screen pixels")
	cmd.Flags().StringVar(&opts.handle, "handle", "se", "resize handle: n, ne, e, se, s, sw, w, nw")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "keep this width/height ratio while resizing")
	cmd.Flags().BoolVar(&opts.constrain, "constrain", false, "limit move and resize to the dominant axis")
	cmd.Flags().StringVar(&opts.translate, "translate", "", "translate by dx,dy pixels")
	cmd.Flags().StringVar(&opts.rotate, "rotate", "", "set rotation in degrees")
	cmd.Flags().Float64Var(&opts.rotateBy, "rotate-by", 0, "rotate by degrees")
	cmd.Flags().Float64Var(&opts.step, "step", 0, "snap rotation to multiples of this angle")
	cmd.Flags().StringVar(&opts.z, "z", "", "set z-index")
	cmd.Flags().BoolVar(&opts.front, "front", false, "bring to front")
	cmd.Flags().BoolVar(&opts.back, "back", false, "send to back")
	cmd.Flags().StringVar(&opts.snap, "snap-sprite", "", "fit the element to the sprite at x,y of its sheet")
	cmd.Flags().StringVar(&opts.bg, "background", "", "shift the background by dx,dy pixels")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the layout back to its file")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path string, opts editOpts) error {
	l, err := c.loadLayout(path)
	if err != nil {
		return err
	}
	e, err := l.Find(opts.id)
	if err != nil {
		return err
	}
	if err := c.applyEdits(ctx, l, e, opts); err != nil {
		return err
	}
	e.Normalize()

	if opts.write {
		if err := saveLayout(l, path); err != nil {
			return err
		}
		printSuccess("Updated %s", e.ID)
		printFile(path)
		return nil
	}
	printElement(e)
	return nil
}

func (c *CLI) applyEdits(ctx context.Context, l *layout.Layout, e *element.Element, opts editOpts) error {
	grid := element.Gesture{
		Constrain: opts.constrain,
		GridX:     c.Config.Grid.X,
		GridY:     c.Config.Grid.Y,
	}

	if opts.move != "" {
		dx, dy, err := parsePair(opts.move)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--move")
		}
		g := grid
		g.DX, g.DY = dx, dy
		e.Move(g)
	}
	if opts.resize != "" {
		corner, ok := box.ParseCorner(opts.handle)
		if !ok {
			return errors.New(errors.ErrCodeInvalidCorner, "unknown handle %q", opts.handle)
		}
		dx, dy, err := parsePair(opts.resize)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--resize")
		}
		g := grid
		g.DX, g.DY, g.Ratio = dx, dy, opts.ratio
		e.Resize(corner, g)
	}
	if opts.translate != "" {
		dx, dy, err := parsePair(opts.translate)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--translate")
		}
		e.Translate(dx, dy)
	}
	if opts.rotate != "" {
		v, ok := units.ParseStrict(opts.rotate, units.SlotFor(units.PropRotate), e.Context())
		if !ok {
			return errors.New(errors.ErrCodeInvalidUnit, "bad angle %q", opts.rotate)
		}
		e.Rotate(v.Degrees())
	}
	if opts.rotateBy != 0 || opts.step > 0 {
		e.RotateBy(opts.rotateBy, opts.step)
	}
	if opts.z != "" {
		v, ok := units.ParseStrict(opts.z, units.SlotFor(units.PropZIndex), e.Context())
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "bad z-index %q", opts.z)
		}
		e.SetZIndex(int(v.Pixels()))
	}
	if opts.front {
		if err := l.BringToFront(e.ID); err != nil {
			return err
		}
	}
	if opts.back {
		if err := l.SendToBack(e.ID); err != nil {
			return err
		}
	}
	if opts.snap != "" {
		if err := c.snapToSprite(ctx, l, e, opts.snap); err != nil {
			return err
		}
	}
	if opts.bg != "" {
		dx, dy, err := parsePair(opts.bg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--background")
		}
		g := grid
		g.DX, g.DY = dx, dy
		e.MoveBackground(g)
	}
	return nil
}

// snapToSprite fits e to the sprite under the sheet pixel at "x,y".
func (c *CLI) snapToSprite(ctx context.Context, l *layout.Layout, e *element.Element, at string) error {
	path := l.SheetPath(e.ID)
	if path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "element %q has no sprite sheet", e.ID)
	}
	x, y, err := parsePair(at)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "--snap-sprite")
	}

	sheet, err := sprite.Open(ctx, path)
	if err != nil {
		return err
	}
	b, ok := sheet.BoundsAt(int(x), int(y))
	if !ok {
		return errors.New(errors.ErrCodeNoSprite, "no sprite at %d,%d in %s", int(x), int(y), path)
	}
	w, h := sheet.Size()
	e.SetImage(units.Size{Width: float64(w), Height: float64(h)})
	e.SnapToSprite(b.Rect())
	c.Logger.Debug("snapped to sprite", "id", e.ID, "bounds", b)
	return nil
}

// printElement shows the element's headers and declarations.
func printElement(e *element.Element) {
	h := e.Headers()
	fmt.Fprintln(stdout, StyleTitle.Render("#"+e.ID))
	printKeyValue("position", h.Position)
	printKeyValue("size", h.Size)
	printKeyValue("transform", h.Transform)
	printKeyValue("background", h.Background)
	printKeyValue("z-index", h.ZIndex)
	printNewline()
	for _, d := range e.Declarations() {
		fmt.Fprintln(stdout, "  "+StyleValue.Render(d.String()))
	}
}
