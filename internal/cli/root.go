package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/config"
	"github.com/alexanderramin/rpdform/internal/service"
	"github.com/spf13/cobra"
)

// App holds the runtime state shared by all commands.
type App struct {
	Data   service.DataService
	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

// Setup builds the logger and the data workspace from cfg. The dataset is
// required; a stage document that fails to load only disables the stage
// fields.
func (a *App) Setup(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	a.Config = cfg
	a.Logger = config.NewLogger(cfg, logOut)

	ws, err := service.NewWorkspace(service.WorkspaceOptions{
		Roster:        cascade.RosterOptions{Fold: cfg.Roster.Fold},
		StagesTimeout: cfg.StagesTimeout(),
		Logger:        a.Logger,
	}, service.NewLogObserver(a.Logger))
	if err != nil {
		return err
	}
	if cfg.Data.Dataset != "" {
		if err := ws.LoadDataset(ctx, cfg.Data.Dataset); err != nil {
			return err
		}
	}
	if err := ws.LoadStages(ctx, cfg.Data.Stages); err != nil {
		a.Logger.WarnContext(ctx, "stage fields disabled", "error", err)
	}
	a.Data = ws
	return nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// NewRootCmd creates the top-level "rpdform" command and registers all
// subcommands against the provided App. Setup runs before any subcommand
// unless the App already carries a DataService.
func NewRootCmd(app *App) *cobra.Command {
	var flags *config.Flags

	root := &cobra.Command{
		Use:   "rpdform",
		Short: "RPD intake form wizard and automation script generator",
		Long: `rpdform fills the RPD intake form by cascading selection over a
class/student dataset and the stage dependency document, then emits a
Selenium script that replays the chosen values.

Run without arguments in a terminal to start the wizard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Data != nil {
				return nil
			}
			cfg, err := flags.Resolve()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return app.Setup(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runWizard(cmd, app, wizardOptions{})
		},
	}
	flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newWizardCmd(app),
		newCategoriesCmd(app),
		newOptionsCmd(app),
		newRosterCmd(app),
		newStagesCmd(app),
		newEmitCmd(app),
	)

	return root
}
