package evalboard

import (
	"github.com/fatih/color"
	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// summaryCmd implements the 'summary' command, which prints the overview dashboard.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the overview dashboard for the current report",
	Long:  `Show the overall pass rate, estimated tokens processed, critical failure count, per-category pass rates and the latest edge case failures.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ov := loadOverview(cmd)
		if GetConfig().JSONMode {
			return render.WriteJSON(cmd.OutOrStdout(), ov)
		}
		return render.WriteSummary(cmd.OutOrStdout(), ov, styles())
	},
}

// styles follows fatih/color's terminal detection.
func styles() render.Styles {
	return render.NewStyles(!color.NoColor)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
