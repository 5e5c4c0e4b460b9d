package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/clustertop/internal/monitor"
	"github.com/rileyhilliard/clustertop/internal/ui"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available grid presets",
	Long: `List the grid presets the dashboard can lay out, with their node capacity.

Nodes beyond the capacity are left out of the grid but still counted in the
cluster summary and alerts.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), renderPresets())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

// renderPresets draws the preset table, marking the default.
func renderPresets() string {
	columns := []ui.TableColumn{
		{Title: "Preset", Width: 10},
		{Title: "Columns", Width: 8},
		{Title: "Rows", Width: 6},
		{Title: "Nodes", Width: 6},
	}

	rows := make([][]string, len(monitor.Presets))
	for i, p := range monitor.Presets {
		name := p.Name
		if name == monitor.DefaultPresetName {
			name += " *"
		}
		rows[i] = []string{
			name,
			strconv.Itoa(p.Cols),
			strconv.Itoa(p.Rows),
			strconv.Itoa(p.Capacity()),
		}
	}
	return ui.RenderSimpleTable(columns, rows) + "\n" + ui.Muted("* default")
}
