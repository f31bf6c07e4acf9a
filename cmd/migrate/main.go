package main

import (
	"errors"
	"fmt"
	"os"

	"gadme-be/internal/config"
	"gadme-be/internal/db"
	"gadme-be/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// migrator is the subset of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

var newMigrator = openMigrator

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func openMigrator() (migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.AppEnv)

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(database, &postgres.Config{})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("init postgres driver: %w", err)
	}

	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migrate",
		Usage: "apply the embedded database migrations",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Action: withMigrator(up),
			},
			{
				Name:  "down",
				Usage: "roll back the most recent migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: withMigrator(down),
			},
			{
				Name:   "version",
				Usage:  "print the current schema version",
				Action: withMigrator(version),
			},
		},
	}
}

func withMigrator(fn func(c *cli.Context, m migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		m, err := newMigrator()
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(c, m)
	}
}

func up(c *cli.Context, m migrator) error {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.L().Info("no new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.L().Info("migrations applied")
	return nil
}

func down(c *cli.Context, m migrator) error {
	steps := c.Int("steps")
	if steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", steps)
	}

	err := m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, os.ErrNotExist) {
		logger.L().Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	logger.L().Info("rolled back migrations", zap.Int("steps", steps))
	return nil
}

func version(c *cli.Context, m migrator) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(c.App.Writer, "no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "version %d (dirty=%t)\n", v, dirty)
	return nil
}
