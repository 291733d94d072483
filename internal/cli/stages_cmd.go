package cli

import (
	"fmt"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Inspect the stage dependency document",
	}
	cmd.AddCommand(newStagesCheckCmd(app))
	return cmd
}

func newStagesCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check [SOURCE]",
		Short: "Validate the stage document's structure",
		Long: `Checks the loaded stage document, or the one at SOURCE (a path or an
http(s) URL), for count mismatches, duplicate codes and dependency keys that
no parent produces. Exits non-zero when anything is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := app.Data.LoadStages(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			graph := app.Data.Resolver().Graph()
			if graph == nil {
				return errStagesNotLoaded
			}
			findings := app.Data.StageFindings()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFindings(app.Data.Source().Stages, graph.Len(), findings))
			if len(findings) > 0 {
				return fmt.Errorf("stage document has %d findings", len(findings))
			}
			return nil
		},
	}
}
