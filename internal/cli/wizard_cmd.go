package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
	"github.com/alexanderramin/rpdform/internal/script"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("the wizard needs an interactive terminal; use \"rpdform emit\" for files")

type wizardOptions struct {
	batch  bool
	output string
}

func newWizardCmd(app *App) *cobra.Command {
	var opts wizardOptions

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill the intake form interactively and print the automation script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			return runWizard(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.batch, "batch", false, "start in batch mode")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the script to a file instead of stdout")

	return cmd
}

func runWizard(cmd *cobra.Command, app *App, opts wizardOptions) error {
	mode := form.ModeSingle
	if opts.batch {
		mode = form.ModeBatch
	}

	p := tea.NewProgram(newWizardModel(app, mode),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	wm, ok := final.(wizardModel)
	if !ok || wm.cancelled || len(wm.result) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Vazgeçildi."))
		return nil
	}
	return writeScript(cmd, app, wm.result, wm.machine.Mode() == form.ModeBatch, opts.output)
}

// writeScript renders records to path, or to stdout when path is "" or "-".
// A file whose render fails is removed.
func writeScript(cmd *cobra.Command, app *App, recs []form.Record, batch bool, path string) error {
	sels := make([]domain.Selection, len(recs))
	for i, rec := range recs {
		sels[i] = rec.Selection
	}
	opts := script.Options{
		TargetURL: app.Config.Script.TargetURL,
		Batch:     batch,
	}

	toFile := path != "" && path != "-"
	if !toFile {
		if err := script.Render(cmd.OutOrStdout(), app.Data.Resolver(), sels, opts); err != nil {
			return err
		}
	} else if err := renderToFile(path, app, sels, opts); err != nil {
		return err
	}

	app.logger().InfoContext(cmd.Context(), "script written", "records", len(recs), "batch", batch, "output", outputName(path))
	if toFile {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d kayıt %s dosyasına yazıldı.\n",
			formatter.StyleGreen.Render("✔"), len(recs), formatter.Bold(path))
	}
	return nil
}

func renderToFile(path string, app *App, sels []domain.Selection, opts script.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return script.Render(f, app.Data.Resolver(), sels, opts)
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
