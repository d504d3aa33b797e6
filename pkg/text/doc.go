// Package text measures and wraps text for layout.
//
// A [Face] is an OpenType font at a pixel size (Go Regular unless a font file
// is configured). A [Measurer] answers the two questions the layout engine
// asks about text: how wide it can be ([Measurer.Widths], used for a text
// node's Flex width) and how tall it is once wrapped to a width
// ([Measurer.Layout], used from the layout content hook).
//
// [Pool] is a generational allocator used by frame builders to hand out
// short-lived handles to per-frame text blocks.
package text
