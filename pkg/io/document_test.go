package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/layout"
)

const sampleJSON = `{
  "viewport": {"width": 300, "height": 200},
  "root": {
    "direction": "vertical",
    "width": "grow",
    "height": "grow",
    "padding": 10,
    "spacing": 5,
    "children": [
      {"name": "header", "width": "grow", "height": 40, "color": "#336699"},
      {"name": "body", "width": "grow", "height": "grow"}
    ]
  }
}`

const sampleTOML = `
[viewport]
width = 300
height = 200

[root]
direction = "vertical"
width = "grow"
height = "grow"
padding = 10
spacing = 5

[[root.children]]
name = "header"
width = "grow"
height = 40
color = "#336699"

[[root.children]]
name = "body"
width = "grow"
height = "grow"
`

const sampleYAML = `
viewport:
  width: 300
  height: 200
root:
  direction: vertical
  width: grow
  height: grow
  padding: 10
  spacing: 5
  children:
    - name: header
      width: grow
      height: 40
      color: "#336699"
    - name: body
      width: grow
      height: grow
`

var samples = map[Format]string{
	FormatJSON: sampleJSON,
	FormatTOML: sampleTOML,
	FormatYAML: sampleYAML,
}

func TestParseFormats(t *testing.T) {
	for format, src := range samples {
		t.Run(string(format), func(t *testing.T) {
			doc, err := Parse([]byte(src), format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if doc.Viewport == nil || *doc.Viewport != (Viewport{300, 200}) {
				t.Errorf("Viewport = %+v", doc.Viewport)
			}
			if doc.Count() != 3 {
				t.Errorf("Count() = %d, want 3", doc.Count())
			}

			root := doc.Root
			if root.Direction != "vertical" || root.Spacing != 5 {
				t.Errorf("root = %+v", root)
			}
			if root.Padding.Padding != layout.PadAll(10) {
				t.Errorf("padding = %+v", root.Padding)
			}
			if !root.Width.IsSet() || root.Width.Size != layout.Grow() {
				t.Errorf("root width = %v", root.Width.Size)
			}

			header := root.Children[0]
			if header.Name != "header" || header.Height.Size != layout.Fixed(40) || header.Color != "#336699" {
				t.Errorf("header = %+v", header)
			}
			if err := doc.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestSizeValueUnset(t *testing.T) {
	doc, err := Parse([]byte(`{"root": {"text": "hi"}}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Width.IsSet() || doc.Root.Height.IsSet() {
		t.Error("omitted sizes should be unset")
	}
	if doc.Root.Width.Size != layout.FitContent() {
		t.Errorf("unset width = %v, want fit", doc.Root.Width.Size)
	}
}

func TestPaddingForms(t *testing.T) {
	tests := map[string]struct {
		format Format
		src    string
		want   layout.Padding
	}{
		"json number": {FormatJSON, `{"root": {"padding": 4}}`, layout.PadAll(4)},
		"json sides":  {FormatJSON, `{"root": {"padding": {"left": 1, "right": 2, "top": 3, "bottom": 4}}}`, layout.Padding{Left: 1, Right: 2, Top: 3, Bottom: 4}},
		"toml axes":   {FormatTOML, "[root]\npadding = { x = 6, y = 2 }\n", layout.PadSymmetric(2, 6)},
		"yaml mixed":  {FormatYAML, "root:\n  padding: {x: 4, top: 1}\n", layout.Padding{Left: 4, Right: 4, Top: 1}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src), tt.format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := doc.Root.Padding.Padding; got != tt.want {
				t.Errorf("padding = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	tests := map[Format]string{
		FormatJSON: `{"root": {"colour": "red"}}`,
		FormatTOML: "[root]\ncolour = \"red\"\n",
		FormatYAML: "root:\n  colour: red\n",
	}
	for format, src := range tests {
		t.Run(string(format), func(t *testing.T) {
			if _, err := Parse([]byte(src), format); err == nil {
				t.Error("expected error for unknown field")
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]struct {
		format Format
		src    string
		code   errors.Code
	}{
		"negative width": {FormatJSON, `{"root": {"width": -5}}`, errors.ErrCodeInvalidSize},
		"bad size":       {FormatJSON, `{"root": {"width": "wide"}}`, errors.ErrCodeInvalidSize},
		"bad padding":    {FormatJSON, `{"root": {"padding": {"middle": 3}}}`, errors.ErrCodeInvalidDocument},
		"syntax":         {FormatJSON, `{"root": `, errors.ErrCodeInvalidDocument},
		"empty yaml":     {FormatYAML, ``, errors.ErrCodeInvalidDocument},
		"unknown format": {Format("xml"), `<root/>`, errors.ErrCodeInvalidFormat},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateNamesNode(t *testing.T) {
	src := `{"root": {"children": [{}, {"direction": "diagonal"}]}}`
	doc, err := Parse([]byte(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Fatalf("Validate error = %v", err)
	}
	if !strings.Contains(err.Error(), "root.children[1]") {
		t.Errorf("error %q should name root.children[1]", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]string{
		"inverted fit":    `{"root": {"width": "fit(50,10)"}}`,
		"bad color":       `{"root": {"color": "blurple"}}`,
		"bad text align":  `{"root": {"text": "x", "text_align": "left-ish"}}`,
		"bad minor":       `{"root": {"align": {"minor": "middle"}}}`,
		"negative space":  `{"root": {"spacing": -1}}`,
		"zero viewport":   `{"viewport": {"width": -1, "height": 10}, "root": {}}`,
		"control in name": "{\"root\": {\"name\": \"a\\u0007b\"}}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(src), FormatJSON)
			if err != nil {
				// some values are rejected while decoding already
				return
			}
			if err := doc.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"ui.json":     FormatJSON,
		"ui.TOML":     FormatTOML,
		"dir/ui.yml":  FormatYAML,
		"dir/ui.yaml": FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	for _, path := range []string{"ui", "ui.xml"} {
		if _, err := FormatFromPath(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("FormatFromPath(%q) error = %v", path, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ui.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Count() != 3 {
		t.Errorf("Count() = %d, want 3", doc.Count())
	}

	_, err = Load(filepath.Join(dir, "missing.json"), "")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := WriteJSON(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"height": 40`) {
		t.Errorf("fixed size should be written as a number:\n%s", buf.String())
	}

	back, err := Parse([]byte(buf.String()), FormatJSON)
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, buf.String())
	}
	if back.Root.Children[1].Height.Size != layout.Grow() {
		t.Errorf("body height = %v, want grow", back.Root.Children[1].Height.Size)
	}
	if back.Root.Padding.Padding != layout.PadAll(10) {
		t.Errorf("padding = %+v", back.Root.Padding)
	}
}
