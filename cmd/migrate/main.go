package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/logger"
)

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
}

type command struct {
	usage string
	nargs int
	run   func(m migrator, args []string) (string, error)
}

var commands = map[string]command{
	"up": {
		usage: "up",
		run: func(m migrator, _ []string) (string, error) {
			return "Migrated up", ignoreNoChange(m.Up())
		},
	},
	"down": {
		usage: "down",
		run: func(m migrator, _ []string) (string, error) {
			return "Migrated down", ignoreNoChange(m.Down())
		},
	},
	"steps": {
		usage: "steps <n>",
		nargs: 1,
		run: func(m migrator, args []string) (string, error) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("invalid step count %q: %w", args[0], err)
			}
			return fmt.Sprintf("Applied %d step(s)", n), ignoreNoChange(m.Steps(n))
		},
	},
	"version": {
		usage: "version",
		run: func(m migrator, _ []string) (string, error) {
			v, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				return "No migrations applied", nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Version: %d, Dirty: %t", v, dirty), nil
		},
	},
	"force": {
		usage: "force <version>",
		nargs: 1,
		run: func(m migrator, args []string) (string, error) {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return fmt.Sprintf("Forced version to %d", v), m.Force(v)
		},
	},
}

// lookup resolves the command named by args[0] and checks its arity.
func lookup(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != cmd.nargs {
		return command{}, fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Usage = printUsage
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	cmd, err := lookup(args)
	if err != nil {
		printUsage()
		log.Fatal().Err(err).Msg("Invalid arguments")
	}

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	msg, err := cmd.run(m, args[1:])
	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}
	log.Info().Str("command", args[0]).Msg(msg)
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "Usage: migrate [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
