package cli

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/plinth/pkg/errors"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/pipeline"
)

// requestFormat picks the document format from ?input= or the Content-Type.
// Anything unrecognised is treated as JSON.
func requestFormat(r *http.Request) (pio.Format, error) {
	if v := r.URL.Query().Get("input"); v != "" {
		return pio.ParseFormat(v)
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return pio.FormatJSON, nil
	}
	switch {
	case strings.HasSuffix(mt, "toml"):
		return pio.FormatTOML, nil
	case strings.HasSuffix(mt, "yaml"), strings.HasSuffix(mt, "yml"):
		return pio.FormatYAML, nil
	}
	return pio.FormatJSON, nil
}

// queryOptions applies numeric and boolean query overrides to opts.
func queryOptions(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()
	floats := []struct {
		key string
		dst *float32
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"font_size", &opts.FontSize},
		{"line_height", &opts.LineHeight},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return perrors.New(perrors.ErrCodeInvalidInput, "%s: not a number: %q", f.key, v)
		}
		*f.dst = float32(n)
	}
	if v := q.Get("scale"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return perrors.New(perrors.ErrCodeInvalidInput, "scale: not a number: %q", v)
		}
		opts.Scale = n
	}
	if v := q.Get("outlines"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return perrors.New(perrors.ErrCodeInvalidInput, "outlines: not a boolean: %q", v)
		}
		opts.Outlines = b
	}
	if v := q.Get("refresh"); v != "" {
		opts.Refresh, _ = strconv.ParseBool(v)
	}
	return nil
}
