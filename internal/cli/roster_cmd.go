package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/spf13/cobra"
)

func newRosterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roster [CODE]",
		Short: "Show the student roster matched to a class/section",
		Long: `With a class/section code, prints the matched roster sheet, how it was
matched and its students. Without one, lists every class/section with its
match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), rosterOverview(cmd, app))
				return nil
			}

			r := app.Data.Resolver()
			cs, ok := r.Table().Lookup(domain.CategoryClassSection, args[0])
			if !ok {
				return fmt.Errorf("unknown class/section code %q", args[0])
			}
			sel := domain.Selection{ClassSection: cs.Code}
			m := app.Data.Roster(cmd.Context(), sel)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(cs, m, r.Advisory(sel, domain.FieldStudent)))
			return nil
		},
	}
}

func rosterOverview(cmd *cobra.Command, app *App) string {
	table := app.Data.Resolver().Table()
	classes := table.Options(domain.CategoryClassSection)

	rows := make([][]string, 0, len(classes))
	for _, cs := range classes {
		m := app.Data.Roster(cmd.Context(), domain.Selection{ClassSection: cs.Code})
		sheet := m.Sheet
		if sheet == "" {
			sheet = formatter.Dim("-")
		}
		rows = append(rows, []string{
			cs.Code,
			cs.Label,
			formatter.MatchLevelIndicator(m.Level),
			sheet,
			strconv.Itoa(len(m.Students)),
		})
	}
	return formatter.Header("Öğrenci Listeleri") + "\n" +
		formatter.RenderTable([]string{"DEĞER", "ŞUBE", "EŞLEŞME", "SAYFA", "ÖĞRENCİ"}, rows)
}
