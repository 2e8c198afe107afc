package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"fullstack-starter/internal/config"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/migrations"
	"fullstack-starter/internal/schema"
)

const usage = `usage: migrate <command> [flags]

commands:
  generate  diff the declared schema against the journal and write a new
            migration pair (-name tag, -dir migrations)
  check     fail when the declared schema has drifted from the committed
            migrations; writes nothing
  verify    recompute journal hashes of committed migration files
  up        apply all pending migrations (requires DATABASE_URL)
  down      roll back all migrations (requires DATABASE_URL)
  to <v>    migrate up or down to version v (requires DATABASE_URL)
  force <v> mark the database as version v without running anything
  status    print the current schema version
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := logger.NewConsoleLogger()

	if err := godotenv.Load(); err == nil {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(args, log)
	case "check":
		err = runCheck(args, log)
	case "verify":
		err = runVerify(args, log)
	case "up", "down", "to", "force", "status":
		err = runApply(cmd, args, log)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		var drift *migrations.DriftError
		if errors.As(err, &drift) {
			fmt.Fprintln(os.Stderr, drift.Error())
			os.Exit(1)
		}
		log.Fatal("MIGRATE", err.Error())
	}
}

func dirFlag(fs *flag.FlagSet) *string {
	return fs.String("dir", "migrations", "migrations directory")
}

func runGenerate(args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dir := dirFlag(fs)
	name := fs.String("name", "", "tag for the generated migration (defaults to a schema hash)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := schema.NewSnapshot(schema.Models()...)
	if err != nil {
		return err
	}

	plan, err := migrations.Generate(*dir, snap, *name)
	if err != nil {
		return err
	}
	if !plan.HasChanges() {
		log.Info("MIGRATE", "No schema changes, nothing to generate")
		return nil
	}

	log.Info("MIGRATE", fmt.Sprintf("Wrote %s (%d statements)", plan.UpFile(), len(plan.Statements)))
	log.Info("MIGRATE", fmt.Sprintf("Wrote %s", plan.DownFile()))
	log.Info("MIGRATE", fmt.Sprintf("Wrote %s", plan.SnapshotFile()))
	return nil
}

func runCheck(args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dir := dirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := schema.NewSnapshot(schema.Models()...)
	if err != nil {
		return err
	}

	if err := migrations.Check(*dir, snap); err != nil {
		return err
	}
	log.Info("MIGRATE", "No drift, declared schema matches committed migrations")
	return nil
}

func runVerify(args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	dir := dirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	journal, err := migrations.LoadJournal(*dir)
	if err != nil {
		return err
	}
	if err := journal.Verify(*dir); err != nil {
		return err
	}
	log.Info("MIGRATE", fmt.Sprintf("Journal OK, %d migrations recorded", len(journal.Entries)))
	return nil
}

func runApply(cmd string, args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dir := dirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sqldb, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqldb.Close()
	if err := sqldb.Ping(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	runner := migrations.NewRunner(sqldb, *dir)
	defer runner.Close()

	switch cmd {
	case "up":
		if err := runner.Up(); err != nil {
			return err
		}
	case "down":
		if err := runner.Down(); err != nil {
			return err
		}
	case "to":
		version, err := versionArg(fs)
		if err != nil {
			return err
		}
		if err := runner.To(uint(version)); err != nil {
			return err
		}
	case "force":
		version, err := versionArg(fs)
		if err != nil {
			return err
		}
		if err := runner.Force(version); err != nil {
			return err
		}
	}

	version, dirty, err := runner.Status()
	if err != nil {
		return err
	}
	state := ""
	if dirty {
		state = " (dirty)"
	}
	log.Info("MIGRATE", fmt.Sprintf("Schema at version %d%s", version, state))
	return nil
}

func versionArg(fs *flag.FlagSet) (int, error) {
	if fs.NArg() < 1 {
		return 0, fmt.Errorf("a version number is required")
	}
	version, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q", fs.Arg(0))
	}
	return version, nil
}
