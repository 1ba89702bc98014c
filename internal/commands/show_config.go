package evalboard

import (
	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by environment variables and flags accordingly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.JSONMode {
			return render.WriteJSON(cmd.OutOrStdout(), cfg)
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg)
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
