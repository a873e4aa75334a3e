package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/porter/pkg/pixelsort"
)

var metricDescriptions = map[pixelsort.Metric]string{
	pixelsort.Luminance:  "perceived brightness (Rec. 709)",
	pixelsort.Hue:        "HSL hue angle in degrees, gray is 0",
	pixelsort.Saturation: "HSL saturation, gray is 0",
}

// metricsCommand creates the metrics command listing the sort keys.
func (c *CLI) metricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the available sort metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderMetrics(cmd.OutOrStdout())
			return nil
		},
	}
}

func renderMetrics(w io.Writer) {
	rows := make([][]string, 0, len(pixelsort.Metrics))
	for _, m := range pixelsort.Metrics {
		rows = append(rows, []string{
			m.String(),
			m.Alias(),
			fmt.Sprintf("0-%d", m.MaxKey()),
			metricDescriptions[m],
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Alias", "Keys", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return cellStyle.Foreground(colorCyan)
			case 2:
				return cellStyle.Foreground(colorWhite)
			}
			return cellStyle.Foreground(colorGray)
		})

	fmt.Fprintln(w, t.Render())
}
