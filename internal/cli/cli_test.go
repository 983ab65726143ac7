package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stylebox/pkg/cache"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/layout"
)

const testDoc = `
[context]
container = { width = 1000, height = 500 }
viewport = { width = 1000, height = 500 }

[[element]]
id = "a"
sheet = "sheet.png"
raw = { left = "10px", top = "10px", width = "10px", height = "10px" }

[[element]]
id = "b"
raw = { left = "20px", top = "60px", width = "10px", height = "10px" }

[[element]]
id = "c"
raw = { left = "90px", top = "30px", width = "10px", height = "10px" }
`

// captureStdout redirects the package's stdout into a buffer for the rest
// of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// isolate points the config and cache directories at fresh temp dirs and
// returns the cache home.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// writeFile writes content to name in a temp dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeSheet writes a 4x4 PNG with a 2x2 sprite at (1,1) and a 1x1 sprite
// at (3,3).
func writeSheet(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}} {
		img.Set(p[0], p[1], color.NRGBA{G: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return writeFile(t, dir, "sheet.png", buf.String())
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := captureStdout(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func reload(t *testing.T, path string) *layout.Document {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := layout.DecodeDocument(f, layout.FormatFromPath(path))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestConvertToCSS(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)

	out, err := runCLI(t, "convert", path)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	want := "#b {\n  left: 20px;\n  top: 60px;\n  width: 10px;\n  height: 10px;\n}\n"
	if !strings.Contains(out, want) {
		t.Errorf("output =\n%s\nwant it to contain\n%s", out, want)
	}
}

func TestConvertToFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "page.toml", testDoc)
	target := filepath.Join(dir, "page.yaml")

	out, err := runCLI(t, "convert", path, "-o", target)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(out, "Converted 3 elements") {
		t.Errorf("output = %q", out)
	}
	doc := reload(t, target)
	if len(doc.Elements) != 3 || doc.Elements[2].Raw["left"] != "90px" {
		t.Errorf("converted document = %+v", doc.Elements)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)
	if _, err := runCLI(t, "convert", path, "-t", "xml"); err == nil {
		t.Error("convert -t xml should fail")
	}
}

func TestAlignWrite(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)

	out, err := runCLI(t, "align", path, "-e", "top", "--ids", "a,b", "-w")
	if err != nil {
		t.Fatalf("align error = %v", err)
	}
	if !strings.Contains(out, "Aligned 1 of 3 elements") {
		t.Errorf("output = %q", out)
	}
	doc := reload(t, path)
	if got := doc.Elements[1].Raw["top"]; got != "10px" {
		t.Errorf("b top = %q, want 10px", got)
	}
	if got := doc.Elements[2].Raw["top"]; got != "30px" {
		t.Errorf("c top = %q, want 30px", got)
	}
}

func TestDistributePrintsCSS(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)

	out, err := runCLI(t, "distribute", path, "-a", "x")
	if err != nil {
		t.Fatalf("distribute error = %v", err)
	}
	if !strings.Contains(out, "#b {\n  left: 50px;") {
		t.Errorf("output =\n%s\nwant b at 50px", out)
	}
	if doc := reload(t, path); doc.Elements[1].Raw["left"] != "20px" {
		t.Error("distribute without -w changed the file")
	}
}

func TestBatchErrors(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad edge", []string{"align", path, "-e", "diagonal"}, errors.ErrCodeInvalidEdge},
		{"bad axis", []string{"distribute", path, "-a", "z"}, errors.ErrCodeInvalidInput},
		{"unknown id", []string{"align", path, "--ids", "a,zz"}, errors.ErrCodeElementNotFound},
		{"missing file", []string{"align", filepath.Join(t.TempDir(), "nope.toml")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"move", []string{"--id", "b", "--move", "5,5"}, []string{"left: 25px;", "top: 65px;"}},
		{"resize", []string{"--id", "b", "--resize", "10,0", "--handle", "e"}, []string{"left: 20px;", "width: 20px;"}},
		{"rotate", []string{"--id", "b", "--rotate", "45deg"}, []string{"transform: rotate(45deg);"}},
		{"rotate by with step", []string{"--id", "b", "--rotate-by", "44", "--step", "15"}, []string{"transform: rotate(45deg);"}},
		{"translate", []string{"--id", "b", "--translate", "3,4"}, []string{"transform: translate(3px, 4px);"}},
		{"z-index", []string{"--id", "b", "--z", "5"}, []string{"z-index: 5;"}},
		{"front", []string{"--id", "a", "--front"}, []string{"z-index: 1;"}},
		{"background", []string{"--id", "a", "--background", "-2,-3"}, []string{"background-position: -2px -3px;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeFile(t, t.TempDir(), "page.toml", testDoc)
			out, err := runCLI(t, append([]string{"edit", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("edit error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output =\n%s\nwant it to contain %q", out, w)
				}
			}
		})
	}
}

func TestEditErrors(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.toml", testDoc)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown element", []string{"--id", "zz", "--move", "1,1"}, errors.ErrCodeElementNotFound},
		{"bad handle", []string{"--id", "a", "--resize", "1,1", "--handle", "up"}, errors.ErrCodeInvalidCorner},
		{"bad angle", []string{"--id", "a", "--rotate", "sideways"}, errors.ErrCodeInvalidUnit},
		{"bad pair", []string{"--id", "a", "--move", "1"}, errors.ErrCodeInvalidInput},
		{"no sheet", []string{"--id", "b", "--snap-sprite", "1,1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append([]string{"edit", path}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEditWrite(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.json", `{
  "context": {"container": {"width": 1000, "height": 500}},
  "elements": [{"id": "a", "raw": {"right": "10%", "top": "10px", "width": "50px", "height": "10px"}}]
}`)

	out, err := runCLI(t, "edit", path, "--id", "a", "--move", "-100,0", "-w")
	if err != nil {
		t.Fatalf("edit error = %v", err)
	}
	if !strings.Contains(out, "Updated a") {
		t.Errorf("output = %q", out)
	}
	raw := reload(t, path).Elements[0].Raw
	if raw["right"] != "20%" {
		t.Errorf("right = %q, want 20%% (unit kept)", raw["right"])
	}
	if raw["left"] != "auto" {
		t.Errorf("left = %q, want auto", raw["left"])
	}
}

func TestEditSnapSprite(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeSheet(t, dir)
	path := writeFile(t, dir, "page.toml", testDoc)

	out, err := runCLI(t, "edit", path, "--id", "a", "--snap-sprite", "2,2")
	if err != nil {
		t.Fatalf("edit error = %v", err)
	}
	for _, w := range []string{"width: 2px;", "height: 2px;", "background-position: -1px -1px;"} {
		if !strings.Contains(out, w) {
			t.Errorf("output =\n%s\nwant it to contain %q", out, w)
		}
	}

	_, err = runCLI(t, "edit", path, "--id", "a", "--snap-sprite", "0,0")
	if !errors.Is(err, errors.ErrCodeNoSprite) {
		t.Errorf("snap on a transparent pixel: error = %v, want NO_SPRITE", err)
	}
}

func TestSpriteAt(t *testing.T) {
	isolate(t)
	sheet := writeSheet(t, t.TempDir())

	out, err := runCLI(t, "sprite", sheet, "--at", "1,2")
	if err != nil {
		t.Fatalf("sprite error = %v", err)
	}
	if !strings.Contains(out, "1px, 1px, 2px × 2px") {
		t.Errorf("output =\n%s", out)
	}
	if !strings.Contains(out, "-1px -1px") {
		t.Errorf("output =\n%s\nwant background offset", out)
	}
}

func TestSpriteScanJSON(t *testing.T) {
	cacheHome := isolate(t)
	sheet := writeSheet(t, t.TempDir())

	out, err := runCLI(t, "sprite", sheet, "--json")
	if err != nil {
		t.Fatalf("sprite error = %v", err)
	}
	var results []sheetResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output %q is not JSON: %v", out, err)
	}
	if len(results) != 1 || len(results[0].Sprites) != 2 {
		t.Fatalf("results = %+v, want one sheet with 2 sprites", results)
	}

	// The scan was stored in the file cache.
	fc, err := cache.NewFileCache(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatal(err)
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("cached entries = %d, want 1", n)
	}
}

func TestSpriteMinArea(t *testing.T) {
	isolate(t)
	sheet := writeSheet(t, t.TempDir())

	out, err := runCLI(t, "sprite", sheet, "--json", "--no-cache", "--min-area", "2")
	if err != nil {
		t.Fatalf("sprite error = %v", err)
	}
	var results []sheetResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatal(err)
	}
	if len(results[0].Sprites) != 1 {
		t.Errorf("sprites = %+v, want only the 2x2 one", results[0].Sprites)
	}
}

func TestCachePathAndClear(t *testing.T) {
	cacheHome := isolate(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cacheHome, appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("cache clear = %q", out)
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "page.toml", testDoc)
	cfg := writeFile(t, dir, "config.toml", "[grid]\nx = 8\ny = 8\n")

	out, err := runCLI(t, "--config", cfg, "edit", path, "--id", "b", "--move", "5,0")
	if err != nil {
		t.Fatalf("edit error = %v", err)
	}
	if !strings.Contains(out, "left: 24px;") {
		t.Errorf("output =\n%s\nwant left snapped to 24px", out)
	}

	bad := writeFile(t, dir, "bad.toml", "[cache]\nbackend = \"floppy\"\n")
	if _, err := runCLI(t, "--config", bad, "cache", "path"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestLoadLayoutFillsContext(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "page.yaml", `
elements:
  - id: hero
    raw: {left: "50vw", top: "0px", width: "10vw", height: "10px"}
`)
	c := New(io.Discard, LogInfo)
	l, err := c.loadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Context.Viewport.Width; got != 1280 {
		t.Errorf("viewport width = %v, want the configured 1280", got)
	}
	e, _ := l.Find("hero")
	if got := e.Box.Width.Pixels(); got != 128 {
		t.Errorf("10vw = %vpx, want 128", got)
	}
}

func TestLoadLayoutUsesConfigDefaults(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "page.yaml", `
elements:
  - id: hero
    raw: {left: "1em", top: "1rem", width: "100px", height: "50px"}
`)
	cfg := writeFile(t, dir, "config.toml", "origin = \"0 0\"\n\n[context]\nfont_size = 20\nroot_font_size = 12\n")

	c := New(io.Discard, LogInfo)
	if err := c.loadConfig(cfg); err != nil {
		t.Fatal(err)
	}
	l, err := c.loadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := l.Find("hero")
	if got := e.Box.H.Value.Pixels(); got != 20 {
		t.Errorf("1em = %vpx, want 20", got)
	}
	if got := e.Box.V.Value.Pixels(); got != 12 {
		t.Errorf("1rem = %vpx, want 12", got)
	}
	if x, y := e.Origin[0].Pixels(), e.Origin[1].Pixels(); x != 0 || y != 0 {
		t.Errorf("origin = %v, %v; want 0, 0", x, y)
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"1,2", 1, 2, false},
		{" -3.5 , 4 ", -3.5, 4, false},
		{"1", 0, 0, true},
		{"a,2", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parsePair(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePair(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if x != tt.x || y != tt.y {
			t.Errorf("parsePair(%q) = %v,%v, want %v,%v", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestSplitIDs(t *testing.T) {
	if got := splitIDs(""); got != nil {
		t.Errorf("splitIDs(\"\") = %v, want nil", got)
	}
	got := splitIDs("a, b,,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitIDs() = %v, want [a b c]", got)
	}
}

func TestListenURL(t *testing.T) {
	if got := listenURL(":8080"); got != "http://localhost:8080" {
		t.Errorf("listenURL() = %q", got)
	}
	if got := listenURL("0.0.0.0:9000"); got != "http://0.0.0.0:9000" {
		t.Errorf("listenURL() = %q", got)
	}
}
