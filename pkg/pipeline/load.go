package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/errors"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/observability"
)

// Source is where a document comes from: a file, or bytes already in memory
// such as an HTTP request body.
type Source struct {
	Path   string
	Data   []byte
	Format pio.Format
}

// String names the source in logs.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return "<" + string(s.Format) + " input>"
}

// Load reads and validates a document. It returns the document and the hash
// of its normalized form, so equivalent JSON, TOML and YAML documents share
// cache entries.
func Load(ctx context.Context, src Source) (doc *pio.Document, hash string, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.String())
	defer func() {
		nodes := 0
		if doc != nil {
			nodes = doc.Count()
		}
		hooks.OnLoadComplete(ctx, src.String(), nodes, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	data, format := src.Data, src.Format
	if src.Path != "" && data == nil {
		if err := errors.ValidatePath(src.Path); err != nil {
			return nil, "", err
		}
		if format == "" {
			if format, err = pio.FormatFromPath(src.Path); err != nil {
				return nil, "", err
			}
		}
		if data, err = os.ReadFile(src.Path); err != nil {
			if os.IsNotExist(err) {
				return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", src.Path)
			}
			return nil, "", err
		}
	}
	if format == "" {
		format = pio.FormatJSON
	}

	doc, err = pio.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, "", err
	}
	if err := doc.Validate(); err != nil {
		return nil, "", err
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "normalize document")
	}
	return doc, cache.Hash(normalized), nil
}
