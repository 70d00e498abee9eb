package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/spf13/cobra"
)

// App holds the use cases CLI commands run against.
type App struct {
	Schedule app.ScheduleUseCase
	Weights  app.WeightsUseCase
	Runs     app.RunHistoryUseCase

	// IsInteractive reports whether stdin and stdout are terminals. Forms
	// and spinners are only shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Bootstrap opens storage and wires services once flags are parsed. The
// returned closer runs after the command finishes.
type Bootstrap func(cfg config.Config) (*App, io.Closer, error)

type session struct {
	cfg    *config.Config
	boot   Bootstrap
	app    *App
	closer io.Closer
}

// NewRootCmd creates the top-level "dayplan" command. cfg carries the
// environment defaults; persistent flags override them before boot runs.
func NewRootCmd(cfg *config.Config, boot Bootstrap) *cobra.Command {
	s := &session{cfg: cfg, boot: boot}

	root := &cobra.Command{
		Use:           "dayplan",
		Short:         "Single-day task scheduler",
		Long:          "Plans one working day: places tasks around calendar events, keeps mandatory work first and shapes the rest by learned preferences.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a, closer, err := s.boot(*s.cfg)
			if err != nil {
				return err
			}
			s.app, s.closer = a, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.closer == nil {
				return nil
			}
			return s.closer.Close()
		},
	}
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newScheduleCmd(s),
		newWeightsCmd(s),
		newRunsCmd(s),
	)
	return root
}
