package io

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/layout"
)

// SizeValue is a layout.Size as written in a document: a number for a fixed
// size, or one of "fit", "fit(min,max)", "grow", "flex(min,max)".
type SizeValue struct {
	Size layout.Size
	set  bool
}

// Sized returns a SizeValue holding s.
func Sized(s layout.Size) SizeValue {
	return SizeValue{Size: s, set: true}
}

// IsSet reports whether the document gave a value.
func (v SizeValue) IsSet() bool { return v.set }

func (v *SizeValue) fromAny(raw any) error {
	switch x := raw.(type) {
	case nil:
		*v = SizeValue{}
		return nil
	case string:
		s, err := layout.ParseSize(x)
		if err != nil {
			return err
		}
		*v = Sized(s)
		return nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSize, "size must be a number or string, got %T", raw)
	}
	if err := errors.ValidateDimension("size", f); err != nil {
		return err
	}
	*v = Sized(layout.Fixed(float32(f)))
	return nil
}

func (v *SizeValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return v.fromAny(raw)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *SizeValue) UnmarshalTOML(raw any) error { return v.fromAny(raw) }

func (v *SizeValue) UnmarshalYAML(n *yaml.Node) error {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	return v.fromAny(raw)
}

// MarshalJSON writes fixed sizes as numbers and everything else as strings.
func (v SizeValue) MarshalJSON() ([]byte, error) {
	if v.Size.Kind() == layout.KindFixed {
		return json.Marshal(v.Size.Value())
	}
	return json.Marshal(v.Size.String())
}

// PaddingValue is layout.Padding as written in a document: either one number
// for all sides or a table with left, right, top and bottom.
type PaddingValue struct {
	layout.Padding
}

func (p *PaddingValue) fromAny(raw any) error {
	switch x := raw.(type) {
	case nil:
		p.Padding = layout.Padding{}
		return nil
	case map[string]any:
		var pad layout.Padding
		for k, val := range x {
			f, ok := toFloat(val)
			if !ok {
				return errors.New(errors.ErrCodeInvalidSize, "padding.%s must be a number", k)
			}
			if err := errors.ValidateDimension("padding."+k, f); err != nil {
				return err
			}
			switch k {
			case "left":
				pad.Left = float32(f)
			case "right":
				pad.Right = float32(f)
			case "top":
				pad.Top = float32(f)
			case "bottom":
				pad.Bottom = float32(f)
			case "x":
				pad.Left, pad.Right = float32(f), float32(f)
			case "y":
				pad.Top, pad.Bottom = float32(f), float32(f)
			default:
				return errors.New(errors.ErrCodeInvalidDocument, "unknown padding side %q", k)
			}
		}
		p.Padding = pad
		return nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSize, "padding must be a number or table, got %T", raw)
	}
	if err := errors.ValidateDimension("padding", f); err != nil {
		return err
	}
	p.Padding = layout.PadAll(float32(f))
	return nil
}

func (p *PaddingValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return p.fromAny(raw)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *PaddingValue) UnmarshalTOML(raw any) error { return p.fromAny(raw) }

func (p *PaddingValue) UnmarshalYAML(n *yaml.Node) error {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	return p.fromAny(raw)
}

// MarshalJSON writes uniform padding as a single number.
func (p PaddingValue) MarshalJSON() ([]byte, error) {
	if p.Padding == layout.PadAll(p.Left) {
		return json.Marshal(p.Left)
	}
	return json.Marshal(map[string]float32{
		"left": p.Left, "right": p.Right, "top": p.Top, "bottom": p.Bottom,
	})
}

func toFloat(raw any) (float64, bool) {
	switch x := raw.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return math.NaN(), false
}

func fieldErr(path string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInvalidDocument
	}
	return errors.Wrap(code, err, "%s", path)
}

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s.children[%d]", parent, i)
}
