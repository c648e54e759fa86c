package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/avdelgado/paideia/internal/cli"
	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.paideia/paideia.db
	dbPath := os.Getenv("PAIDEIA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".paideia", "paideia.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	blockRepo := repository.NewSQLiteTimeBlockRepo(database)
	exceptionRepo := repository.NewSQLiteExceptionRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	unitRepo := repository.NewSQLiteUnitRepo(database)
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case logging, enabled by PAIDEIA_LOG=1
	var logWriter io.Writer
	if os.Getenv("PAIDEIA_LOG") == "1" {
		logWriter = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logWriter)

	app := &cli.App{
		Subjects:   service.NewSubjectService(subjectRepo),
		Timetable:  service.NewTimetableService(blockRepo, subjectRepo),
		Calendar:   service.NewCalendarService(exceptionRepo),
		Milestones: service.NewMilestoneService(milestoneRepo, unitRepo, subjectRepo),
		WorkItems:  service.NewWorkItemService(uow, workItemRepo),
		Plan:       service.NewPlanService(uow, scheduleRepo, observer),
		Status:     service.NewStatusService(subjectRepo, milestoneRepo, unitRepo),
	}

	// Detect interactive terminal for forms and the schedule browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
