package layout

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/units"
)

// Format is a document encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// are read as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	}
	return TOML
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case TOML, YAML, JSON:
		return f, true
	case "yml":
		return YAML, true
	}
	return "", false
}

// Size is a width and height in a document.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// ContextSpec is the reference context of a document.
type ContextSpec struct {
	Container    Size    `json:"container" toml:"container" yaml:"container"`
	Viewport     Size    `json:"viewport" toml:"viewport" yaml:"viewport"`
	FontSize     float64 `json:"font_size,omitempty" toml:"font_size,omitempty" yaml:"font_size,omitempty"`
	RootFontSize float64 `json:"root_font_size,omitempty" toml:"root_font_size,omitempty" yaml:"root_font_size,omitempty"`
}

// Units converts the spec, defaulting unset font sizes to 16px.
func (c ContextSpec) Units() units.Context {
	ctx := units.Context{
		Container:    units.Size(c.Container),
		Viewport:     units.Size(c.Viewport),
		FontSize:     c.FontSize,
		RootFontSize: c.RootFontSize,
	}
	if ctx.FontSize == 0 {
		ctx.FontSize = 16
	}
	if ctx.RootFontSize == 0 {
		ctx.RootFontSize = 16
	}
	return ctx
}

// over fills the sizes c leaves at zero from def. Container and viewport
// count as unset only when both dimensions are zero.
func (c ContextSpec) over(def units.Context) ContextSpec {
	if c.Container == (Size{}) {
		c.Container = Size(def.Container)
	}
	if c.Viewport == (Size{}) {
		c.Viewport = Size(def.Viewport)
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	if c.RootFontSize == 0 {
		c.RootFontSize = def.RootFontSize
	}
	return c
}

// ElementSpec is one element entry of a document.
type ElementSpec struct {
	ID       string            `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Sheet    string            `json:"sheet,omitempty" toml:"sheet,omitempty" yaml:"sheet,omitempty"`
	Image    *Size             `json:"image,omitempty" toml:"image,omitempty" yaml:"image,omitempty"`
	Raw      map[string]string `json:"raw,omitempty" toml:"raw,omitempty" yaml:"raw,omitempty"`
	Computed map[string]string `json:"computed,omitempty" toml:"computed,omitempty" yaml:"computed,omitempty"`
}

// Document is the serialized form of a layout:
//
//	[context]
//	container = { width = 1280, height = 720 }
//
//	[[element]]
//	id = "logo"
//	raw = { left = "10px", top = "5%", width = "120px", height = "40px" }
type Document struct {
	Context  ContextSpec   `json:"context" toml:"context" yaml:"context"`
	Elements []ElementSpec `json:"elements" toml:"element" yaml:"elements"`
}

// DecodeDocument reads a document in format f.
func DecodeDocument(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "read layout")
	}

	var doc Document
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case JSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse %s layout", f)
	}
	return &doc, nil
}

// Encode writes the document in format f.
func (d *Document) Encode(w io.Writer, f Format) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	return toml.NewEncoder(w).Encode(d)
}

// Bytes encodes the document into memory.
func (d *Document) Bytes(f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
