package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/pkg/layout"
)

// Output formats besides the document formats.
const (
	formatCSS    = "css"
	formatReport = "report"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert [layout]",
		Short: "Convert a layout document to another format or to CSS",
		Long: `Convert a layout document between TOML, YAML and JSON, or export it.

Target formats:
  toml, yaml, json   the layout document itself
  css                one #id rule per element
  report             JSON declarations, display headers and screen bounds

The target format defaults to the extension of --output, or css when writing
to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], output, to)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format: toml, yaml, json, css, report")

	return cmd
}

func (c *CLI) runConvert(input, output, to string) error {
	l, err := c.loadLayout(input)
	if err != nil {
		return err
	}

	if to == "" {
		to = formatCSS
		if output != "" {
			to = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		}
	}

	var w io.Writer = stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeLayout(w, l, to); err != nil {
		return err
	}
	c.Logger.Debug("converted layout", "input", input, "format", to, "elements", len(l.Elements))

	if output != "" {
		printSuccess("Converted %d elements", len(l.Elements))
		printFile(output)
	}
	return nil
}

// writeLayout writes l to w in the named format.
func writeLayout(w io.Writer, l *layout.Layout, format string) error {
	switch format {
	case formatCSS:
		return l.WriteCSS(w)
	case formatReport:
		return l.WriteJSON(w)
	}
	f, ok := layout.ParseFormat(format)
	if !ok {
		return fmt.Errorf("unknown format %q (use toml, yaml, json, css or report)", format)
	}
	return l.Document().Encode(w, f)
}
