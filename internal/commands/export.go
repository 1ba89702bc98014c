package evalboard

import (
	"bytes"

	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// exportCmd implements the 'export' command, which writes the derived overview
// as JSON or YAML for other tools.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report overview as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		_, ov := loadOverview(cmd)
		var buf bytes.Buffer
		if err := render.Export(&buf, ov, outputFormat(cmd, render.FormatJSON)); err != nil {
			return err
		}
		return writeOutput(cmd, output, buf.Bytes())
	},
}

func init() {
	exportCmd.Flags().String("format", render.FormatJSON, "export format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "write the export to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
