package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/pkg/align"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/layout"
)

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var (
		ids   string
		edge  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "align [layout]",
		Short: "Align elements to a common edge or center",
		Long: `Align elements to a common edge or center.

Edges: top, bottom, left, right, hcenter (center), vcenter (middle).
Top and left align to the smallest edge, bottom and right to the largest,
and centers to the midpoint between the outermost centers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := align.ParseEdge(edge)
			if !ok {
				return errors.New(errors.ErrCodeInvalidEdge, "unknown edge %q", edge)
			}
			return c.runBatch(cmd.Context(), args[0], write, "Aligned", func(ctx context.Context, l *layout.Layout) (int, error) {
				return l.Align(ctx, splitIDs(ids), e)
			})
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated element ids (default: all)")
	cmd.Flags().StringVarP(&edge, "edge", "e", "left", "edge: top, bottom, left, right, hcenter, vcenter")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the layout back to its file")

	return cmd
}

// distributeCommand creates the distribute command.
func (c *CLI) distributeCommand() *cobra.Command {
	var (
		ids   string
		axis  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "distribute [layout]",
		Short: "Space elements evenly along an axis",
		Long: `Space elements evenly along an axis.

The element with the smallest near edge stays put, and so does the one with
the largest, unless the first element already spans all others. At least
three elements are needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := align.ParseAxis(axis)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "unknown axis %q", axis)
			}
			return c.runBatch(cmd.Context(), args[0], write, "Distributed", func(ctx context.Context, l *layout.Layout) (int, error) {
				return l.Distribute(ctx, splitIDs(ids), a)
			})
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated element ids (default: all)")
	cmd.Flags().StringVarP(&axis, "axis", "a", "x", "axis: x (horizontal) or y (vertical)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the layout back to its file")

	return cmd
}

// runBatch loads a layout, runs a batch edit over it, and either writes the
// result back or prints the new CSS.
func (c *CLI) runBatch(ctx context.Context, path string, write bool, verb string, edit func(context.Context, *layout.Layout) (int, error)) error {
	l, err := c.loadLayout(path)
	if err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	n, err := edit(ctx, l)
	if err != nil {
		return err
	}
	prog.debug("batch edit")

	if !write {
		return writeLayout(stdout, l, formatCSS)
	}
	if err := saveLayout(l, path); err != nil {
		return err
	}
	printSuccess("%s %d of %d elements", verb, n, len(l.Elements))
	printFile(path)
	return nil
}
