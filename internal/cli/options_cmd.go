package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/spf13/cobra"
)

var errStagesNotLoaded = errors.New("stage document is not loaded; check --stages")

func newOptionsCmd(app *App) *cobra.Command {
	var sel domain.Selection

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the next stage list for a service and upstream stages",
		Long: `Prints the options of the first empty stage after the given codes,
with its requirement and any inline advisory.

  rpdform options --service 5               stage-1 list
  rpdform options --service 5 --stage1 18   stage-2 list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := app.Data.Resolver()
			if r.Graph() == nil {
				return errStagesNotLoaded
			}

			pruned := r.Prune(sel)
			for _, f := range []domain.Field{domain.FieldService, domain.FieldStage1, domain.FieldStage2} {
				if v := sel.Get(f); v != "" && pruned.Get(f) != v {
					return fmt.Errorf("%s: unknown code %q for the given upstream", f.Title(), v)
				}
			}

			f := nextStage(sel)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOptions(f, r.Options(sel, f), r.Required(sel, f), r.Advisory(sel, f)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.Service, "service", "", "RPD service type code")
	cmd.Flags().StringVar(&sel.Stage1, "stage1", "", "stage-1 code")
	cmd.Flags().StringVar(&sel.Stage2, "stage2", "", "stage-2 code")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

// nextStage returns the first stage field after the filled ones.
func nextStage(sel domain.Selection) domain.Field {
	switch {
	case sel.Stage2 != "":
		return domain.FieldStage3
	case sel.Stage1 != "":
		return domain.FieldStage2
	default:
		return domain.FieldStage1
	}
}
