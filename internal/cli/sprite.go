package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/sprite"
)

// spriteOpts holds the command-line flags for the sprite command.
type spriteOpts struct {
	at      string // "x,y" single query
	minArea int    // drop regions smaller than this many pixels
	jobs    int    // concurrent decodes
	jsonOut bool
	noCache bool
}

// sheetResult is the JSON output for one sheet.
type sheetResult struct {
	Source  string          `json:"source"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Sprites []sprite.Bounds `json:"sprites"`
}

// spriteCommand creates the sprite command.
func (c *CLI) spriteCommand() *cobra.Command {
	opts := spriteOpts{jobs: 4}

	cmd := &cobra.Command{
		Use:   "sprite [image...]",
		Short: "List the sprites of one or more sprite sheets",
		Long: `List the opaque regions of sprite sheets.

A sprite is a 4-connected region of pixels with non-zero alpha. Bounds are
printed as left, top, width and height, ready for use as an element size and
a negative background-position.

With --at x,y only the sprite under that pixel of the first image is shown.
Whole-sheet scans are cached by image content.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.at != "" {
				return c.runSpriteAt(cmd.Context(), args[0], opts)
			}
			return c.runSpriteScan(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "only show the sprite under pixel x,y")
	cmd.Flags().IntVar(&opts.minArea, "min-area", 0, "ignore sprites smaller than this many pixels")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "images decoded in parallel")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSpriteAt(ctx context.Context, path string, opts spriteOpts) error {
	x, y, err := parsePair(opts.at)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "--at")
	}
	sheet, err := sprite.Open(ctx, path)
	if err != nil {
		return err
	}
	b, ok := sheet.BoundsAt(int(x), int(y))
	if !ok {
		return errors.New(errors.ErrCodeNoSprite, "no sprite at %d,%d in %s", int(x), int(y), path)
	}

	if opts.jsonOut {
		return encodeJSON(b)
	}
	printSuccess("Sprite at %d,%d", int(x), int(y))
	printKeyValue("bounds", fmt.Sprintf("%dpx, %dpx, %dpx × %dpx", b.Left, b.Top, b.Width(), b.Height()))
	printKeyValue("background", fmt.Sprintf("%dpx %dpx", -b.Left, -b.Top))
	return nil
}

func (c *CLI) runSpriteScan(ctx context.Context, paths []string, opts spriteOpts) error {
	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	scanner := sprite.NewScanner(store,
		sprite.WithKeyer(c.keyer()),
		sprite.WithTTL(c.Config.Cache.TTL.Duration),
		sprite.WithMinArea(opts.minArea),
		sprite.WithLogger(c.Logger),
	)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %d sheets...", len(paths)))
	spinner.Start()

	sheets, err := sprite.LoadAll(ctx, paths, opts.jobs)
	if err != nil {
		spinner.StopWithError("Decode failed")
		return err
	}
	results := make([]sheetResult, 0, len(sheets))
	for _, sheet := range sheets {
		found, err := scanner.Scan(ctx, sheet)
		if err != nil {
			spinner.StopWithError("Scan failed")
			return err
		}
		w, h := sheet.Size()
		if found == nil {
			found = []sprite.Bounds{}
		}
		results = append(results, sheetResult{Source: sheet.Source, Width: w, Height: h, Sprites: found})
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Scanned %d sheets", len(sheets)))

	if opts.jsonOut {
		return encodeJSON(results)
	}
	for _, r := range results {
		printSheet(r)
	}
	return nil
}

func encodeJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSheet prints one sheet's sprites as a table.
func printSheet(r sheetResult) {
	fmt.Fprintln(stdout, StyleTitle.Render(r.Source)+" "+StyleDim.Render(fmt.Sprintf("%d×%d", r.Width, r.Height)))
	if len(r.Sprites) == 0 {
		printInfo("No sprites")
		return
	}

	rows := make([][]string, len(r.Sprites))
	for i, b := range r.Sprites {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(b.Left), strconv.Itoa(b.Top),
			strconv.Itoa(b.Width()), strconv.Itoa(b.Height()),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Left", "Top", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			return StyleNumber
		})
	fmt.Fprintln(stdout, t.Render())
	printDetail("%d sprites", len(r.Sprites))
}
