package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/pipeline"
)

// maxLabel bounds the name and text columns of the inspect table.
const maxLabel = 24

// inspectCommand prints the solved rectangles as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Print the computed rectangles of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runInspect(cmd.Context(), cmd, args[0], opts)
		},
	}
	addLayoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, cmd *cobra.Command, input string, opts pipeline.Options) error {
	doc, _, err := pipeline.Load(ctx, pipeline.Source{Path: input})
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	solved, err := runner.Solve(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	file := pio.NewLayoutFile(solved.Frame, solved.List)
	fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(fmt.Sprintf("%s  %g×%g", input, file.Width, file.Height)))
	fmt.Fprintln(cmd.OutOrStdout(), layoutTable(file.Nodes))
	return nil
}

// layoutTable renders entries as a rounded lipgloss table. Zero-area nodes
// are dimmed since they draw nothing.
func layoutTable(nodes []pio.LayoutEntry) string {
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		parent := "—"
		if n.Parent != nil {
			parent = strconv.Itoa(*n.Parent)
		}
		rows[i] = []string{
			strconv.Itoa(n.ID),
			parent,
			runewidth.Truncate(n.Name, maxLabel, "…"),
			formatNum(n.X),
			formatNum(n.Y),
			formatNum(n.Width),
			formatNum(n.Height),
			n.Color,
			runewidth.Truncate(n.Text, maxLabel, "…"),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Parent", "Name", "X", "Y", "W", "H", "Color", "Text").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(nodes) && (nodes[row].Width == 0 || nodes[row].Height == 0) {
				return StyleDim
			}
			if col >= 3 && col <= 6 {
				return numStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func formatNum(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
