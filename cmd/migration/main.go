package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/bonk-fanzone/internal/app"
	"github.com/riskibarqy/bonk-fanzone/internal/config"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the subcommands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command func(m migrator, args []string, out io.Writer, logger *logging.Logger) error

var commands = map[string]command{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
	"migrate": runGoto,
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	m, sourceURL, err := openMigrator(cfg)
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}
	logger.Info("migrator ready", "source", sourceURL)

	runErr := cmd(m, os.Args[2:], os.Stdout, logger)
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}

	switch {
	case errors.Is(runErr, errUsage):
		logger.Error("invalid arguments", "error", runErr)
		printUsage(os.Stderr)
		os.Exit(2)
	case runErr != nil:
		logger.Error("migration failed", "error", runErr)
		os.Exit(1)
	}
}

func openMigrator(cfg config.Config) (*migrate.Migrate, string, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, "", fmt.Errorf("DB_URL is required")
	}
	dir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		return nil, "", err
	}
	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, app.DatabaseURL(cfg))
	if err != nil {
		return nil, "", err
	}
	return m, sourceURL, nil
}

func runUp(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: down steps must be a positive integer, got %q", errUsage, args[0])
		}
		steps = n
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(out, "version: none")
		_, _ = fmt.Fprintln(out, "dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	_, _ = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func runForce(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: force requires a version argument", errUsage)
	}
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || version < -1 {
		return fmt.Errorf("%w: invalid version %q", errUsage, args[0])
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced version", "version", version)
	return nil
}

func runGoto(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: goto requires a target version argument", errUsage)
	}
	target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid target version %q", errUsage, args[0])
	}
	if err := ignoreNoChange(m.Migrate(uint(target)), logger); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

// resolveMigrationsDir returns the first existing directory among the
// explicit overrides and the local and container defaults.
func resolveMigrationsDir(overrides ...string) (string, error) {
	candidates := append(overrides, "./db/migrations", "/app/db/migrations")
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s up\n", name)
	fmt.Fprintf(w, "  %s down 1\n", name)
	fmt.Fprintf(w, "  %s version\n", name)
	fmt.Fprintf(w, "  %s force 1771776035\n", name)
	fmt.Fprintf(w, "  %s goto 1771776034\n", name)
}
