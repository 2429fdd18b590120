package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gantt/internal/cli"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/gateway"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Logs go to a file; stderr belongs to the TUI.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		observer = service.NewLogUseCaseObserver(f)
	}

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	allocationRepo := repository.NewSQLiteAllocationRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	projects := service.NewProjectService(projectRepo)
	allocations := service.NewAllocationService(allocationRepo, uow, observer)

	app := &cli.App{
		Projects:    projects,
		Resources:   service.NewResourceService(resourceRepo, allocationRepo, projectRepo, observer),
		Allocations: allocations,
		Timeline:    gateway.New(allocations, projects, cfg.Location, observer),
		Config:      cfg,
	}

	// Detect interactive terminal for the bare-command entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
