package surrealtask

// Command represents a discrete application operation with its specific
// configuration.
//
// The Command interface separates command parsing from execution. Each
// implementation carries the options its operation needs, while [App] routes
// execution to the matching method. Commands are created by [Parse] and
// executed through [Main].
//
// Current command implementations:
//   - [MigrateCommand]: schema migration on the configured backend
//   - [RunCommand]: HTTP server startup and operation
type Command interface {
	// Name returns the command identifier used for routing to the
	// appropriate handler. The returned name matches the CLI sub-command.
	Name() string
}

// MigrateCommand represents the database schema migration operation.
//
// MigrateCommand initializes or updates the schema of the selected backend
// to match the application's data model. It handles structural changes only;
// it never moves or deletes data, so it is safe to run repeatedly.
//
// Backend-specific behavior:
//   - PostgreSQL: GORM AutoMigrate creates tables, columns, and indexes,
//     including the composite primary key on tasks
//   - SurrealDB: defines the unique user email index; tables themselves are
//     created implicitly with the first record
//   - memory: nothing to do
//
// Run it before first startup and after any model change:
//
//	surrealtask migrate
//	surrealtask -postgres migrate
type MigrateCommand struct {
	// Currently empty - all configuration comes from App.Config
}

// Name returns the command name for identification and routing purposes.
func (c *MigrateCommand) Name() string {
	return "migrate"
}

// RunCommand represents the HTTP server startup and operation.
//
// RunCommand launches the REST API server for projects, tasks, and
// authentication. The server adapts to the configured backend (SurrealDB,
// PostgreSQL, or the in-process memory store) and supports a read-only mode
// that rejects writes at the store layer during maintenance.
//
// The server runs until the context is cancelled or a fatal error occurs.
// On cancellation it drains in-flight requests before closing database
// connections.
//
// Example usage:
//
//	surrealtask run                    # SurrealDB backend
//	surrealtask -postgres run          # PostgreSQL backend
//	surrealtask -memory run            # In-process store
//	surrealtask -read-only run         # Reject writes
type RunCommand struct {
	// Currently empty - all configuration comes from App.Config
}

// Name returns the command name for identification and routing purposes.
func (c *RunCommand) Name() string {
	return "run"
}
