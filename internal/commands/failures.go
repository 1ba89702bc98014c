package evalboard

import (
	"fmt"

	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// failuresCmd implements the 'failures' command, which prints failure logs for
// the whole report or for one analysis view.
var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "Show failed test cases",
	Long: `Show every failed test case with its full prompt, actual output and expected constraint.
Use --view to restrict the log to one analysis view and --preview for the truncated
dashboard preview.`,
	Example: `  evalboard failures
  evalboard failures --view reasoning
  evalboard failures --preview --limit 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		viewName, _ := cmd.Flags().GetString("view")
		preview, _ := cmd.Flags().GetBool("preview")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg := GetConfig()
		if cmd.Flags().Changed("limit") && limit < 0 {
			return fmt.Errorf("--limit must not be negative, got %d", limit)
		}
		o, ov := loadOverview(cmd)

		title := "Failure Logs"
		cases := o.Cases()
		if viewName != "" {
			rule, ok := evalreport.LookupView(cfg.Options().Views, viewName)
			if !ok {
				return fmt.Errorf("unknown view %q (see 'evalboard views')", viewName)
			}
			title = rule.DisplayTitle()
			cases = rule.Filter(cases)
		}

		var failures []evalreport.TestCase
		switch {
		case preview:
			n := cfg.Options().PreviewLimit
			if cmd.Flags().Changed("limit") {
				n = limit
			}
			failures = evalreport.PreviewFailures(cases, n, cfg.Options().PreviewWidth)
		default:
			failures = evalreport.FilterFailed(cases)
			if cmd.Flags().Changed("limit") && limit < len(failures) {
				failures = failures[:limit]
			}
		}

		if cfg.JSONMode {
			return render.WriteJSON(cmd.OutOrStdout(), failures)
		}
		if !ov.Available {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n", render.NoDataMessage, ov.Reason)
		}
		render.WriteFailureLog(cmd.OutOrStdout(), title, failures, styles())
		return nil
	},
}

func init() {
	failuresCmd.Flags().String("view", "", "restrict to one analysis view (e.g. reasoning, hallucination, bias)")
	failuresCmd.Flags().Bool("preview", false, "show the truncated preview instead of the full log")
	failuresCmd.Flags().Int("limit", 0, "maximum number of failures to show")
	rootCmd.AddCommand(failuresCmd)
}
