package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/todate/internal/cli"
	"github.com/alexanderramin/todate/internal/config"
	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/alexanderramin/todate/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	todateRepo := repository.NewSQLiteTodateRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)
	schoolRepo := repository.NewSQLiteSchoolCalendarRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Todates:  service.NewTodateService(todateRepo, uow, observers...),
		Tags:     service.NewTagService(tagRepo, observers...),
		School:   service.NewSchoolService(schoolRepo, uow, observers...),
		Timeline: service.NewTimelineService(todateRepo, schoolRepo),
		Exchange: service.NewExchangeService(todateRepo, tagRepo, schoolRepo, uow, observers...),
		Config:   cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
