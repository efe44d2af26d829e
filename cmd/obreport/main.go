package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/cli"
	"github.com/alexanderramin/obreport/internal/config"
	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/importer"
	"github.com/alexanderramin/obreport/internal/repository"
	"github.com/alexanderramin/obreport/internal/service"
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

	app := &cli.App{}
	var database *sql.DB
	var logger *zap.Logger
	defer func() {
		if database != nil {
			database.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	}()

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wiring waits for the root command so its flags apply.
	app.Setup = func(flags cli.GlobalFlags) error {
		overrides := flags.Config
		if flags.Verbose {
			overrides = append(overrides, config.WithVerbose())
		}
		cfg, err := config.Load(flags.ConfigPath, overrides...)
		if err != nil {
			return err
		}

		logger, err = config.NewLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		employeeRepo := repository.NewSQLiteEmployeeRepo(database)
		draftRepo := repository.NewSQLiteOverrideDraftRepo(database)
		runRepo := repository.NewSQLiteReportRunRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)
		observer := service.NewZapUseCaseObserver(logger)

		settings := service.ReportSettings{
			Daily:      cfg.DailyOptions(logger),
			Efficiency: cfg.EfficiencyOptions(logger),
			Location:   loc,
			Department: cfg.Department,
			Logger:     logger,
		}
		loader := importer.Normalizer{Location: loc, Logger: logger}

		app.Reports = service.NewReportService(loader, draftRepo, runRepo, uow, settings, observer)
		app.Employees = service.NewEmployeeService(employeeRepo)
		app.Overrides = service.NewOverrideService(draftRepo, uow, observer)
		app.Location = loc
		app.OutputDir = cfg.OutputDir
		app.Logger = logger

		logger.Debug("configured",
			zap.String("db", cfg.DBPath),
			zap.String("timezone", loc.String()),
			zap.String("output_dir", cfg.OutputDir))
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
