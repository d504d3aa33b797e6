package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/pipeline"
)

const (
	resizeStep     = 10
	resizeStepFast = 100
	minViewport    = 10
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(colorCyan)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand opens an interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Interactively preview a layout in the terminal",
		Long: `Interactively preview a layout in the terminal.

The preview draws every node's outline scaled to the terminal. Arrow keys
resize the viewport (shift for larger steps) and the layout is solved again
for every change. Press r to reset and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}
	addLayoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options) error {
	doc, _, err := pipeline.Load(ctx, pipeline.Source{Path: input})
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	m := newPreviewModel(ctx, pipeline.NewRunner(nil, nil, c.Logger), doc, opts)
	m.title = input
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	doc    *pio.Document
	opts   pipeline.Options
	title  string

	initial pio.Viewport
	vp      pio.Viewport

	cols, rows int // terminal size

	nodes   []pio.LayoutEntry
	elapsed time.Duration
	err     error
}

func newPreviewModel(ctx context.Context, r *pipeline.Runner, doc *pio.Document, opts pipeline.Options) previewModel {
	vp := opts.Viewport(doc)
	m := previewModel{
		ctx:     ctx,
		runner:  r,
		doc:     doc,
		opts:    opts,
		initial: vp,
		vp:      vp,
		cols:    80,
		rows:    24,
	}
	m.solve()
	return m
}

// solve lays the document out again at the current viewport.
func (m *previewModel) solve() {
	opts := m.opts
	opts.Width, opts.Height = m.vp.Width, m.vp.Height

	start := time.Now()
	solved, err := m.runner.Solve(m.ctx, m.doc, opts)
	m.elapsed = time.Since(start)
	m.err = err
	if err != nil {
		m.nodes = nil
		return
	}
	m.nodes = pio.NewLayoutFile(solved.Frame, solved.List).Nodes
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		w, h := m.vp.Width, m.vp.Height
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right":
			w += resizeStep
		case "left":
			w -= resizeStep
		case "down":
			h += resizeStep
		case "up":
			h -= resizeStep
		case "shift+right":
			w += resizeStepFast
		case "shift+left":
			w -= resizeStepFast
		case "shift+down":
			h += resizeStepFast
		case "shift+up":
			h -= resizeStepFast
		case "r":
			w, h = m.initial.Width, m.initial.Height
		default:
			return m, nil
		}
		w = min(max(w, minViewport), pipeline.MaxViewport)
		h = min(max(h, minViewport), pipeline.MaxViewport)
		if w != m.vp.Width || h != m.vp.Height {
			m.vp = pio.Viewport{Width: w, Height: h}
			m.solve()
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf("%g×%g · %d nodes · %s",
		m.vp.Width, m.vp.Height, len(m.nodes), m.elapsed.Round(time.Microsecond))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(previewBorderStyle.Render(drawOutlines(m.nodes, m.vp, m.cols, max(1, m.rows-3))))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ height  shift: ×10  r reset  q quit"))
	return b.String()
}

// =============================================================================
// Outline rendering
// =============================================================================

// cellGrid is a terminal-sized rune canvas. A zero rune marks the second
// cell of a double-width rune and is skipped on output.
type cellGrid struct {
	cols, rows int
	cells      [][]rune
}

func newCellGrid(cols, rows int) *cellGrid {
	g := &cellGrid{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for y := range g.cells {
		g.cells[y] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune) {
	if x >= 0 && x < g.cols && y >= 0 && y < g.rows {
		g.cells[y][x] = r
	}
}

// text writes s starting at (x, y), clipped to limit cells.
func (g *cellGrid) text(x, y, limit int, s string) {
	s = runewidth.Truncate(s, limit, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.set(x, y, r)
		if w == 2 {
			g.set(x+1, y, 0)
		}
		x += w
	}
}

func (g *cellGrid) box(x0, y0, x1, y1 int) {
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, '─')
		g.set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, '│')
		g.set(x1, y, '│')
	}
	g.set(x0, y0, '┌')
	g.set(x1, y0, '┐')
	g.set(x0, y1, '└')
	g.set(x1, y1, '┘')
}

func (g *cellGrid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			if r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// drawOutlines scales the viewport onto a cols×rows grid and draws every
// node with area as a box, parents before children, labelled with its name.
func drawOutlines(nodes []pio.LayoutEntry, vp pio.Viewport, cols, rows int) string {
	g := newCellGrid(cols, rows)
	if vp.Width <= 0 || vp.Height <= 0 {
		return g.String()
	}
	sx := float32(cols-1) / vp.Width
	sy := float32(rows-1) / vp.Height

	for _, n := range nodes {
		if n.Width == 0 || n.Height == 0 {
			continue
		}
		x0, y0 := int(n.X*sx), int(n.Y*sy)
		x1, y1 := int((n.X+n.Width)*sx), int((n.Y+n.Height)*sy)
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		g.box(x0, y0, x1, y1)
		if x1-x0 > 2 {
			g.text(x0+1, y0, x1-x0-1, n.Name)
		}
	}
	return g.String()
}
