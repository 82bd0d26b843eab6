// Package store provides the data persistence layer abstraction for the
// surrealtask application.
//
// This package defines the [Store] interface which lets the application work
// with different database backends behind a unified API:
//
//   - [github.com/surrealdb/surrealtask/pkg/store/surrealdb.SurrealStore]:
//     native SurrealQL over the SurrealDB Go SDK with the surrealcbor codec;
//     tasks are addressed by array-form record IDs carrying the project
//     segment first
//   - [github.com/surrealdb/surrealtask/pkg/store/postgres.PostgresStore]:
//     GORM-based relational operations; tasks use a composite primary key of
//     (project_id, id)
//   - [github.com/surrealdb/surrealtask/pkg/store/memory.MemoryStore]:
//     an in-process map-backed store for demos and handler tests
//
// # Semantics shared by all implementations
//
// Create methods accept entities with or without identifiers; a zero
// identifier (or an unfinalized task key) is filled in by the store before
// the record is written, so callers observe a store-assigned identifier
// distinct from the zero placeholder.
//
// Get methods return nil without error for missing records. Callers detect
// absence through the nil entity, never through the error value.
//
// List methods return exactly the matching records; a task list scoped to a
// project only ever returns tasks whose key's ancestor segment equals that
// project's ID.
//
// The store layer does not validate the parent/child relationship itself:
// checking that a task's project exists (and rejecting the write otherwise)
// is the application layer's job, since the failure maps to an HTTP status.
package store

import (
	"context"

	"github.com/surrealdb/surrealtask/pkg/models"
)

// Store defines the persistence interface for projects, tasks, and users.
//
// All methods accept a context for cancellation and timeouts. Errors are
// reserved for connection, query, and constraint failures; a missing record
// on Get is the non-error (nil, nil) pair.
type Store interface {
	// CreateProject persists a new project, assigning its ID when zero and
	// refreshing UpdatedAt.
	CreateProject(ctx context.Context, project *models.Project) error

	// GetProject returns the project with the given ID, or nil when no such
	// record exists.
	GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error)

	// UpdateProject replaces the stored project and refreshes UpdatedAt.
	UpdateProject(ctx context.Context, project *models.Project) error

	// DeleteProject removes the project record. Tasks under the project are
	// not cascaded; the application decides whether to reject or orphan them.
	DeleteProject(ctx context.Context, id models.ProjectID) error

	// ListProjects returns all projects.
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// CreateTask persists a new task under the project named by its key's
	// ancestor segment. The key must carry the project segment; when the task
	// segment is zero the store finalizes the key with a fresh identifier.
	// CreatedAt is set when zero and never touched afterwards.
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask returns the task stored at the complete composite key, or nil
	// when no such record exists. An incomplete key is an error.
	GetTask(ctx context.Context, key models.TaskKey) (*models.Task, error)

	// UpdateTask replaces the task stored at the task's complete key,
	// preserving CreatedAt.
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes the task stored at the complete composite key.
	DeleteTask(ctx context.Context, key models.TaskKey) error

	// ListTasks returns the tasks whose key's ancestor segment equals the
	// given project ID, and only those.
	ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error)

	// CreateUser persists a new account, assigning its ID when zero.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser returns the user with the given ID, or nil when missing.
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)

	// GetUserByEmail returns the user with the given email, or nil when
	// missing.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Migrate prepares the backend schema. Safe to run repeatedly.
	Migrate(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
