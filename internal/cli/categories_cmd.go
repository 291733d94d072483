package cli

import (
	"fmt"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List dataset categories with their option counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := app.Data.Resolver().Table()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategories(table, app.Data.Source().Dataset))
			return nil
		},
	}
}
