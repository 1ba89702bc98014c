package evalboard

import (
	"fmt"

	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// validateCmd implements the 'validate' command. It exits non-zero when the
// report cannot be loaded, which makes it usable as a CI gate after a run.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the report loads and print case counts per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, ov := loadOverview(cmd)
		out := cmd.OutOrStdout()
		if !o.Available() {
			return fmt.Errorf("report %s is unavailable: %w", o.Source(), o.Reason())
		}

		fmt.Fprintf(out, "OK: %s (%d test cases, %d failed)\n", o.Source(), ov.TotalCases, ov.FailureCount)
		if total := ov.Metadata.TotalTests; total != nil && *total != ov.TotalCases {
			fmt.Fprintf(out, "WARNING: metadata.total_tests is %d but %d results were recorded\n", *total, ov.TotalCases)
		}
		fmt.Fprintln(out)
		if GetConfig().JSONMode {
			return render.WriteJSON(out, ov.Categories)
		}
		return render.WriteCategories(out, ov.Categories, styles())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
