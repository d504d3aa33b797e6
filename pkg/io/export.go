package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/plinth/pkg/frame"
)

// LayoutFile is the solved layout of a frame in exportable form.
type LayoutFile struct {
	Width  float32       `json:"width"`
	Height float32       `json:"height"`
	Nodes  []LayoutEntry `json:"nodes"`
}

// LayoutEntry is one solved node. Coordinates are absolute.
type LayoutEntry struct {
	ID     int      `json:"id"`
	Parent *int     `json:"parent,omitempty"`
	Name   string   `json:"name,omitempty"`
	X      float32  `json:"x"`
	Y      float32  `json:"y"`
	Width  float32  `json:"width"`
	Height float32  `json:"height"`
	Color  string   `json:"color,omitempty"`
	Text   string   `json:"text,omitempty"`
	Lines  []string `json:"lines,omitempty"`
}

// NewLayoutFile collects every node of a finished frame, in construction
// order, including nodes with no area.
func NewLayoutFile(f *frame.Frame, list *frame.DrawList) LayoutFile {
	t := f.Tree()
	out := LayoutFile{Nodes: make([]LayoutEntry, 0, t.Len())}
	if list != nil {
		out.Width, out.Height = list.Width, list.Height
	}

	lines := map[int][]string{}
	if list != nil {
		for _, c := range list.Commands {
			if c.Kind != frame.KindText || c.Text == nil {
				continue
			}
			for _, l := range c.Text.Lines {
				lines[c.Node.Index()] = append(lines[c.Node.Index()], l.Text)
			}
		}
	}

	for id, n := range t.Nodes() {
		e := LayoutEntry{
			ID:     id.Index(),
			Name:   f.Name(id),
			X:      n.Result.X,
			Y:      n.Result.Y,
			Width:  n.Result.Width,
			Height: n.Result.Height,
			Lines:  lines[id.Index()],
		}
		if p, ok := t.Parent(id); ok {
			idx := p.Index()
			e.Parent = &idx
		}
		if c := f.Color(id); c.A != 0 {
			e.Color = frame.FormatColor(c)
		}
		if s, ok := f.Text(id); ok {
			e.Text = s
		}
		out.Nodes = append(out.Nodes, e)
	}
	return out
}

// WriteLayoutJSON writes the solved layout of a frame as indented JSON.
func WriteLayoutJSON(w io.Writer, f *frame.Frame, list *frame.DrawList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewLayoutFile(f, list)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayoutJSON writes the solved layout to a file at path.
func ExportLayoutJSON(path string, f *frame.Frame, list *frame.DrawList) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteLayoutJSON(out, f, list)
}

// WriteJSON encodes a document as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
