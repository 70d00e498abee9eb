package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout) {
		formatter.DisableColor()
	}

	cfg := config.LoadConfig()
	rootCmd := cli.NewRootCmd(&cfg, bootstrap)
	return rootCmd.ExecuteContext(ctx)
}

// bootstrap opens the database and wires repositories -> services -> App.
func bootstrap(cfg config.Config) (*cli.App, io.Closer, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	weightRepo := repository.NewSQLiteWeightRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogCalls {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	schedule, err := service.NewScheduleService(weightRepo, uow, cfg, observer)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	app := &cli.App{
		Schedule: schedule,
		Weights:  service.NewWeightService(weightRepo, uow, observer),
		Runs:     service.NewRunHistoryService(uow),
		IsInteractive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
	}
	return app, closerFunc(func() error {
		schedule.Close()
		return database.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
