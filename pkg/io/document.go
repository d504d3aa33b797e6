package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/layout"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported document formats.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q (want json, toml or yaml)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %s without an extension", path)
	}
	return ParseFormat(ext)
}

// Document is a layout tree as read from a file.
type Document struct {
	// Viewport is the size of the window the tree is laid out in. Callers
	// may override it.
	Viewport *Viewport `json:"viewport,omitempty" toml:"viewport" yaml:"viewport,omitempty"`
	Root     Node      `json:"root" toml:"root" yaml:"root"`
}

// Viewport is the window size.
type Viewport struct {
	Width  float32 `json:"width" toml:"width" yaml:"width"`
	Height float32 `json:"height" toml:"height" yaml:"height"`
}

// Node is one box of a document.
type Node struct {
	Name      string       `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Direction string       `json:"direction,omitempty" toml:"direction" yaml:"direction,omitempty"`
	Width     SizeValue    `json:"width,omitzero" toml:"width" yaml:"width,omitempty"`
	Height    SizeValue    `json:"height,omitzero" toml:"height" yaml:"height,omitempty"`
	Padding   PaddingValue `json:"padding,omitzero" toml:"padding" yaml:"padding,omitempty"`
	Spacing   float32      `json:"spacing,omitempty" toml:"spacing" yaml:"spacing,omitempty"`
	Align     Align        `json:"align,omitzero" toml:"align" yaml:"align,omitempty"`
	Color     string       `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	Text      string       `json:"text,omitempty" toml:"text" yaml:"text,omitempty"`
	TextAlign string       `json:"text_align,omitempty" toml:"text_align" yaml:"text_align,omitempty"`
	TextColor string       `json:"text_color,omitempty" toml:"text_color" yaml:"text_color,omitempty"`
	Children  []Node       `json:"children,omitempty" toml:"children" yaml:"children,omitempty"`
}

// Align holds the child alignment of a node.
type Align struct {
	Major string `json:"major,omitempty" toml:"major" yaml:"major,omitempty"`
	Minor string `json:"minor,omitempty" toml:"minor" yaml:"minor,omitempty"`
}

// Read decodes a document from r. Unknown fields are rejected so typos
// surface as errors instead of silently ignored settings. Read does not
// validate the tree; call Validate or Build.
func Read(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, decodeErr(format, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, decodeErr(format, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown field %s", keys[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "empty document")
			}
			return nil, decodeErr(format, err)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	return &doc, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte, format Format) (*Document, error) {
	return Read(bytes.NewReader(data), format)
}

// Load reads a document file. An empty format is inferred from the
// extension.
func Load(path string, format Format) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

func decodeErr(format Format, err error) error {
	if code := errors.GetCode(err); code != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", format)
}

// Count returns the number of nodes in the document.
func (d *Document) Count() int {
	var count func(n *Node) int
	count = func(n *Node) int {
		total := 1
		for i := range n.Children {
			total += count(&n.Children[i])
		}
		return total
	}
	return count(&d.Root)
}

// Validate checks the whole tree: node count, dimensions, enum names and
// colors. Errors name the offending node by path, e.g. root.children[2].
func (d *Document) Validate() error {
	if err := errors.ValidateNodeCount(d.Count()); err != nil {
		return err
	}
	if d.Viewport != nil {
		if err := d.Viewport.Validate(); err != nil {
			return err
		}
	}
	return d.Root.validate("root")
}

func (n *Node) validate(path string) error {
	if err := errors.ValidateName(n.Name); err != nil {
		return fieldErr(path, err)
	}
	if _, err := n.spec(); err != nil {
		return fieldErr(path, err)
	}
	if _, err := n.textStyle(); err != nil {
		return fieldErr(path, err)
	}
	if _, err := frame.ParseColor(n.Color); err != nil {
		return fieldErr(path, err)
	}
	for i := range n.Children {
		if err := n.Children[i].validate(childPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// spec converts the node's box settings into a layout.Spec.
func (n *Node) spec() (layout.Spec, error) {
	dir, err := layout.ParseDirection(n.Direction)
	if err != nil {
		return layout.Spec{}, err
	}
	major, err := layout.ParseAlignment(n.Align.Major)
	if err != nil {
		return layout.Spec{}, err
	}
	minor, err := layout.ParseAlignment(n.Align.Minor)
	if err != nil {
		return layout.Spec{}, err
	}
	if err := errors.ValidateDimension("spacing", float64(n.Spacing)); err != nil {
		return layout.Spec{}, err
	}
	for _, s := range []layout.Size{n.Width.Size, n.Height.Size} {
		if s.Kind() == layout.KindFit || s.Kind() == layout.KindFlex {
			if err := errors.ValidateRange("size", float64(s.Min()), float64(s.Max())); err != nil {
				return layout.Spec{}, err
			}
		}
	}
	return layout.Spec{
		Width:      n.Width.Size,
		Height:     n.Height.Size,
		Direction:  dir,
		MajorAlign: major,
		MinorAlign: minor,
		Padding:    n.Padding.Padding,
		Spacing:    n.Spacing,
	}, nil
}

func (n *Node) textStyle() (frame.TextStyle, error) {
	align, err := layout.ParseAlignment(n.TextAlign)
	if err != nil {
		return frame.TextStyle{}, err
	}
	c, err := frame.ParseColor(n.TextColor)
	if err != nil {
		return frame.TextStyle{}, err
	}
	return frame.TextStyle{Color: c, Align: align}, nil
}
