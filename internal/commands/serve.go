package evalboard

import (
	"github.com/mwiater/evalboard/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd implements the 'serve' command, which exposes the report over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, JSON API and metrics over HTTP",
	Long: `Serve the HTML dashboard at /, the JSON API under /api/ and Prometheus metrics at /metrics.
The report is loaded afresh on every request, so a new evaluation run shows up without a restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		addr := cfg.Addr()
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		srv := server.New(cfg.ReportSource(), cfg.Options())
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from listenAddr, 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
