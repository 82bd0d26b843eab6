package surrealtask

import (
	"context"
	"fmt"
)

// Main is the main entry point for the surrealtask application.
// It takes a context for cancellation and command line arguments, then
// executes the appropriate command. This function can be called directly
// from tests without needing to build the binary. Returns an error if any
// step fails (parsing, app creation, or command execution).
//
// # Command Line Usage
//
//	surrealtask run                # Start the server against SurrealDB
//	surrealtask -postgres run      # Start the server against PostgreSQL
//	surrealtask -memory run        # Start the server with the in-process store
//	surrealtask -read-only run     # Reject writes during maintenance
//	surrealtask migrate            # Run schema migrations
//
// # Environment Variables
//
// The application reads configuration from these environment variables:
//
//	PORT             - HTTP listen port (default: 8080)
//	POSTGRES_DSN     - PostgreSQL connection string
//	SURREALDB_URL    - SurrealDB WebSocket URL (default: ws://localhost:8000/rpc)
//	SURREALDB_NS     - SurrealDB namespace (default: surrealtask)
//	SURREALDB_DB     - SurrealDB database (default: surrealtask)
//	SURREALDB_USER   - SurrealDB username (default: root)
//	SURREALDB_PASS   - SurrealDB password (default: root)
//	LOG_PATH         - log file path (default: stderr)
//
// Flags override the environment.
func Main(ctx context.Context, args []string) error {
	// Parse command line arguments to get command and configuration
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Create application with the configuration
	app, err := New(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	// Execute the command based on its type
	switch c := cmd.(type) {
	case *MigrateCommand:
		if err := app.Migrate(ctx, c); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}
