package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"strconv"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	dbConfig := database.NewConfig(cfg)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&upCmd{db: dbConfig}, "")
	commander.Register(&downCmd{db: dbConfig}, "")
	commander.Register(&versionCmd{db: dbConfig}, "")

	flag.Parse()
	status := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(status))
}

// withMigrator opens a migrate instance, runs fn and reports the exit status.
func withMigrator(db *database.Config, fn func(m *migrate.Migrate) error) subcommands.ExitStatus {
	m, err := database.NewMigrator(db)
	if err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	defer database.CloseMigrator(m)

	if err := fn(m); err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type upCmd struct {
	db *database.Config
}

func (*upCmd) Name() string     { return "up" }
func (*upCmd) Synopsis() string { return "apply all pending migrations" }
func (*upCmd) Usage() string {
	return `migrate up

  Applies every pending migration from the migrations/ directory.
`
}
func (c *upCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db.MigrationsSource, "source", c.db.MigrationsSource, "Migrations source URL.")
}

func (c *upCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withMigrator(c.db, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")
		return nil
	})
}

type downCmd struct {
	db *database.Config
}

func (*downCmd) Name() string     { return "down" }
func (*downCmd) Synopsis() string { return "roll back migrations" }
func (*downCmd) Usage() string {
	return `migrate down [N]

  Rolls back the last N migrations (default 1).
`
}
func (c *downCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db.MigrationsSource, "source", c.db.MigrationsSource, "Migrations source URL.")
}

func (c *downCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	steps, err := parseSteps(f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	return withMigrator(c.db, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)
		return nil
	})
}

// parseSteps reads the optional positive step count of the down command.
func parseSteps(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 1, nil
	case 1:
		steps, err := strconv.Atoi(args[0])
		if err != nil || steps < 1 {
			return 0, fmt.Errorf("invalid step count %q: must be a positive integer", args[0])
		}
		return steps, nil
	default:
		return 0, fmt.Errorf("down takes at most one argument, got %d", len(args))
	}
}

type versionCmd struct {
	db *database.Config
}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print the current schema version" }
func (*versionCmd) Usage() string {
	return `migrate version

  Prints the applied schema version and whether it is dirty.
`
}
func (c *versionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db.MigrationsSource, "source", c.db.MigrationsSource, "Migrations source URL.")
}

func (c *versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withMigrator(c.db, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
		return nil
	})
}
