// Package surrealdb provides the SurrealDB implementation of the
// [github.com/surrealdb/surrealtask/pkg/store.Store] interface using native
// SurrealQL.
//
// # Record addressing
//
// Tasks are stored under array-form record IDs, tasks:[project, task], so a
// task's address always carries its ancestor. Point operations (Get, Update,
// Delete) address records through [models.TaskKey.RecordID], which refuses to
// produce an address until both key segments are known. The ancestor-scoped
// listing filters on the first element of the record ID's array part, so the
// scoping is done by the key itself rather than by a duplicated field.
//
// # CBOR marshaling
//
// The store connects with the surrealcbor codec so that time.Time values and
// the typed ID types marshal into SurrealDB's native CBOR representations.
// Typed IDs become record links (CBOR tag 8) and the composite task key
// becomes the record's own ID, which means model structs are passed to the
// driver directly with no intermediate maps.
//
// # Query safety
//
// Every query with caller-supplied values uses SurrealQL parameters
// ($param syntax). User input is never interpolated into query strings.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/surrealdb/surrealtask/pkg/models"
	"github.com/surrealdb/surrealtask/pkg/store"
)

// SurrealStore implements the Store interface over a WebSocket connection to
// SurrealDB.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// NewSurrealStore connects to SurrealDB at wsURL and selects the given
// namespace and database. The connection is configured with the surrealcbor
// codec; without it, time.Time fields and record IDs do not survive the
// round trip intact.
func NewSurrealStore(wsURL, namespace, database, username, password string) (store.Store, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// Migrate defines the schema elements SurrealDB does not create implicitly.
// Tables come into existence with their first record; the only upfront
// definition needed is the unique index backing email lookups.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	query := "DEFINE INDEX IF NOT EXISTS user_email ON TABLE users COLUMNS email UNIQUE"
	if _, err := surrealdb.Query[any](ctx, s.db, query, nil); err != nil {
		return fmt.Errorf("failed to define user email index: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the driver's "no rows" unmarshal errors to nil so
// callers can treat missing records as (nil, nil).
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

// Project operations

func (s *SurrealStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = models.NewProjectID()
	}
	project.UpdatedAt = time.Now()

	_, err := surrealdb.Create[models.Project](ctx, s.db, project.ID.RecordID(), project)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	project, err := surrealdb.Select[models.Project](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *SurrealStore) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()

	_, err := surrealdb.Update[models.Project](ctx, s.db, project.ID.RecordID(), project)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	_, err := surrealdb.Delete[models.Project](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListProjects(ctx context.Context) ([]*models.Project, error) {
	result, err := surrealdb.Query[[]models.Project](ctx, s.db, "SELECT * FROM projects", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []*models.Project
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			projects = append(projects, &(*result)[0].Result[i])
		}
	}
	return projects, nil
}

// Task operations

func (s *SurrealStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Key.Project.IsZero() {
		return fmt.Errorf("task key has no project segment")
	}
	if task.Key.Task.IsZero() {
		task.Key = task.Key.WithTask(models.NewTaskID())
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	rid, err := task.Key.RecordID()
	if err != nil {
		return err
	}
	if _, err := surrealdb.Create[models.Task](ctx, s.db, rid, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetTask(ctx context.Context, key models.TaskKey) (*models.Task, error) {
	rid, err := key.RecordID()
	if err != nil {
		return nil, err
	}

	task, err := surrealdb.Select[models.Task](ctx, s.db, rid)
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *SurrealStore) UpdateTask(ctx context.Context, task *models.Task) error {
	rid, err := task.Key.RecordID()
	if err != nil {
		return err
	}

	if task.CreatedAt.IsZero() {
		existing, err := s.GetTask(ctx, task.Key)
		if err != nil {
			return err
		}
		if existing != nil {
			task.CreatedAt = existing.CreatedAt
		}
	}

	if _, err := surrealdb.Update[models.Task](ctx, s.db, rid, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteTask(ctx context.Context, key models.TaskKey) error {
	rid, err := key.RecordID()
	if err != nil {
		return err
	}
	_, err = surrealdb.Delete[models.Task](ctx, s.db, rid)
	return err
}

func (s *SurrealStore) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	// The ancestor segment is the first element of the record ID's array
	// part, so the scope filter runs on the key itself.
	query := "SELECT * FROM tasks WHERE record::id(id)[0] = $project ORDER BY created_at"
	params := map[string]any{
		"project": projectID.String(),
	}
	result, err := surrealdb.Query[[]models.Task](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var tasks []*models.Task
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			tasks = append(tasks, &(*result)[0].Result[i])
		}
	}
	return tasks, nil
}

// User operations

func (s *SurrealStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	_, err := surrealdb.Create[models.User](ctx, s.db, user.ID.RecordID(), user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SurrealStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT * FROM users WHERE email = $email"
	params := map[string]any{
		"email": email,
	}
	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		return &(*result)[0].Result[0], nil
	}
	return nil, nil
}

func (s *SurrealStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	result, err := surrealdb.Query[[]models.User](ctx, s.db, "SELECT * FROM users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []*models.User
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			users = append(users, &(*result)[0].Result[i])
		}
	}
	return users, nil
}
