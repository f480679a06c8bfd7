package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/helpinghands/backend/internal/config"
	"github.com/helpinghands/backend/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up (default)   apply all pending migrations
  down [n]       roll back n migrations (default 1)
  drop           drop every object in the database
  fresh          drop everything, then apply all migrations
  version        print the current schema version`)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "text")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, "text")

	dir, err := filepath.Abs(findMigrationDir())
	if err != nil {
		logging.Fatal("resolve migrations dir failed", "error", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		report("migrations applied", m.Up())
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil || steps <= 0 {
				usage()
			}
		}
		report("migrations rolled back", m.Steps(-steps))
	case "drop":
		report("database dropped", m.Drop())
	case "fresh":
		report("database dropped", m.Drop())
		// A migrator cannot be reused after Drop.
		fresh, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("reconnect failed", "error", err)
		}
		defer fresh.Close()
		report("migrations applied", fresh.Up())
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			slog.Info("no migrations applied")
			return
		}
		if err != nil {
			logging.Fatal("read version failed", "error", err)
		}
		slog.Info("schema version", "version", v, "dirty", dirty)
	default:
		usage()
	}
}

func report(done string, err error) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("nothing to do")
	case err != nil:
		logging.Fatal("migration failed", "error", err)
	default:
		slog.Info(done)
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}
