package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/rgaitan/wotrack/internal/cli"
	"github.com/rgaitan/wotrack/internal/config"
	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/repository"
	"github.com/rgaitan/wotrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	workOrderRepo := repository.NewSQLiteWorkOrderRepo(database)
	findingRepo := repository.NewSQLiteFindingRepo(database)
	materialRepo := repository.NewSQLiteMaterialRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Manhours:   service.NewManhourService(eventRepo, findingRepo, uow),
		WorkOrders: service.NewWorkOrderService(workOrderRepo, findingRepo, materialRepo, eventRepo),
		Import:     service.NewImportService(workOrderRepo, uow),
		Cfg:        cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
