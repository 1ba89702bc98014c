package evalboard

import (
	"github.com/mwiater/evalboard/internal/render"
	"github.com/spf13/cobra"
)

// categoriesCmd implements the 'categories' command, which prints per-category pass rates.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show pass rates per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ov := loadOverview(cmd)
		if GetConfig().JSONMode {
			return render.WriteJSON(cmd.OutOrStdout(), ov.Categories)
		}
		return render.WriteCategories(cmd.OutOrStdout(), ov.Categories, styles())
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
