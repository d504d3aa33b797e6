package cache

// LayoutKeyOpts are the inputs besides the document that change a layout.
type LayoutKeyOpts struct {
	Width      float32 `json:"w"`
	Height     float32 `json:"h"`
	Font       string  `json:"font,omitempty"`
	FontSize   float32 `json:"fs"`
	LineHeight float32 `json:"lh"`
}

// RenderKeyOpts are the inputs besides the layout that change an artifact.
type RenderKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Outlines bool    `json:"outlines,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the solved layout of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// RenderKey identifies one rendered artifact of a layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render:"+opts.Format, layoutHash, opts)
}
