package render

import (
	"encoding/json"

	"github.com/matzehuels/plinth/pkg/frame"
	pio "github.com/matzehuels/plinth/pkg/io"
)

// RenderJSON exports the solved layout as a pretty-printed JSON document:
// the frame size and every node with its parent, rectangle, color and
// wrapped text lines. The shape is [pio.LayoutFile].
func RenderJSON(f *frame.Frame, list *frame.DrawList) ([]byte, error) {
	data, err := json.MarshalIndent(pio.NewLayoutFile(f, list), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
