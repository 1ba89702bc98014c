package evalboard

import (
	"fmt"
	"strings"

	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// viewsCmd implements the 'views' command, which lists the analysis views and their pass rates.
var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List analysis views and their pass rates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ov := loadOverview(cmd)
		out := cmd.OutOrStdout()
		if GetConfig().JSONMode {
			return render.WriteJSON(out, ov.Views)
		}
		if err := render.WriteViews(out, ov.Views, styles()); err != nil {
			return err
		}
		fmt.Fprintln(out)
		for _, rule := range GetConfig().Options().Views {
			fmt.Fprintf(out, "  %-14s %s match on %s\n", rule.Name, rule.Mode, strings.Join(rule.Terms, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
}
