package surrealtask

import (
	"context"
	"fmt"
)

// Migrate performs schema migration on the configured store. It initializes
// or updates the schema to match the application's data model and is safe to
// run multiple times; it only creates missing schema elements.
//
// Run it before starting the application or after changing the data model:
//   - PostgreSQL: GORM AutoMigrate creates tables, indexes, and the
//     composite primary key on tasks
//   - SurrealDB: defines the unique index backing email lookups
//   - memory: no-op
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Str("backend", a.config.Backend()).Msg("running database migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.log.Info().Msg("migrations completed successfully")
	return nil
}
