package surrealtask

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Parse parses the environment and command line arguments and returns the
// command to execute, the application configuration, and any error that
// occurred. Environment variables are read first through the Config struct
// tags; flags override them. The first return value is the Command (either
// MigrateCommand or RunCommand), the second is the Config shared across all
// commands.
func Parse(args []string) (Command, *Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Use flag package for parsing
	flagSet := flag.NewFlagSet("surrealtask", flag.ContinueOnError)

	var (
		port        = flagSet.String("port", config.ServerPort, "Server port")
		usePostgres = flagSet.Bool("postgres", false, "Use PostgreSQL instead of SurrealDB")
		useMemory   = flagSet.Bool("memory", false, "Use the in-process memory store")
		readOnly    = flagSet.Bool("read-only", false, "Enable read-only mode (rejects all writes)")
	)

	// Parse the arguments
	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	// Check for subcommands (e.g., "surrealtask run" or "surrealtask migrate")
	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf(`subcommand required

Usage: surrealtask [flags] <command>

Commands:
  run       Start the surrealtask server
  migrate   Run database migrations

Examples:
  # Normal operation
  surrealtask run                     # Default: SurrealDB backend
  surrealtask -postgres run           # PostgreSQL backend
  surrealtask -memory run             # In-process store, data lost on exit

  # Maintenance
  surrealtask -read-only run          # Reject writes during maintenance
  surrealtask migrate                 # Run schema migrations

  # Custom port
  surrealtask -port=8090 run`)
	}

	config.ServerPort = *port
	config.UsePostgres = *usePostgres
	config.UseMemory = *useMemory
	config.ReadOnly = *readOnly
	if config.UseMemory {
		config.UsePostgres = false
	}

	// Parse the subcommand
	var cmd Command
	switch remainingArgs[0] {
	case "run":
		cmd = &RunCommand{}
	case "migrate":
		cmd = &MigrateCommand{}
	default:
		return nil, nil, fmt.Errorf("unknown command: %s\n\nValid commands: run, migrate", remainingArgs[0])
	}

	return cmd, config, nil
}
