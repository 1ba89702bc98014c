package evalboard

import (
	"fmt"

	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/render"
	"github.com/mwiater/evalboard/internal/util"
	"github.com/spf13/cobra"
)

// reportCmd implements the 'report' command, which renders a shareable markdown
// or HTML document from the current report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the report as a markdown or HTML document",
	Example: `  evalboard report --format markdown --output reports/summary.md
  evalboard report --format html --output reports/dashboard.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		_, ov := loadOverview(cmd)
		doc, err := render.Document(ov, format)
		if err != nil {
			return err
		}
		return writeOutput(cmd, output, []byte(doc))
	},
}

// writeOutput writes data to path, or to the command output when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logging.LogEvent("[REPORT] wrote %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func init() {
	reportCmd.Flags().String("format", render.FormatMarkdown, "document format: markdown or html")
	reportCmd.Flags().StringP("output", "o", "", "write the document to this file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
