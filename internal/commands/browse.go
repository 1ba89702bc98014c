package evalboard

import (
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd implements the 'browse' command, which opens the interactive report browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the report interactively in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := logging.InitFileOnly(cfg.LogFilePath()); err != nil {
			return err
		}
		return startBrowser(cmd.Context(), tui.SourceLoader(cfg.ReportSource(), cfg.Options()))
	},
}

// startBrowser is swapped out in tests.
var startBrowser = tui.Start

func init() {
	rootCmd.AddCommand(browseCmd)
}
