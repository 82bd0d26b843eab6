// Package postgres provides the PostgreSQL implementation of the
// [github.com/surrealdb/surrealtask/pkg/store.Store] interface using GORM.
//
// # Data model mapping
//
// The relational schema maps entities to tables directly:
//   - [github.com/surrealdb/surrealtask/pkg/models.Project] → projects table
//   - [github.com/surrealdb/surrealtask/pkg/models.Task] → tasks table with a
//     composite primary key (project_id, id) produced by the embedded key
//   - [github.com/surrealdb/surrealtask/pkg/models.User] → users table with a
//     unique email constraint
//
// The composite task key means a task row cannot exist without its project
// column, mirroring the array-form record IDs the SurrealDB backend uses.
// Point lookups always filter on both key columns and the ancestor-scoped
// listing filters on project_id alone.
//
// # Schema migration
//
// [PostgresStore.Migrate] uses GORM's AutoMigrate, which only adds missing
// tables, columns and indexes. It is safe to run repeatedly. For production
// deployments prefer explicit migration scripts.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/surrealdb/surrealtask/pkg/models"
	"github.com/surrealdb/surrealtask/pkg/store"
)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
// A production system would add connection pool configuration, query metrics,
// and retry logic for transient connection failures.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a new PostgreSQL store.
// A production system would configure connection pooling, set timeouts,
// and enable query logging for slow queries.
func NewPostgresStore(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// getDB returns the database connection
func (s *PostgresStore) getDB() *gorm.DB {
	return s.db
}

// Migrate creates missing tables, columns and indexes for all models.
// AutoMigrate never drops existing data, so repeated runs are safe.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Project operations

func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.getDB().WithContext(ctx).Create(project).Error
}

func (s *PostgresStore) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	var project models.Project
	err := s.getDB().WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	return s.getDB().WithContext(ctx).Save(project).Error
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	return s.getDB().WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.getDB().WithContext(ctx).Order("updated_at").Find(&projects).Error
	return projects, err
}

// Task operations

func (s *PostgresStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Key.Project.IsZero() {
		return fmt.Errorf("task key has no project segment")
	}
	if task.Key.Task.IsZero() {
		task.Key = task.Key.WithTask(models.NewTaskID())
	}
	return s.getDB().WithContext(ctx).Create(task).Error
}

func (s *PostgresStore) GetTask(ctx context.Context, key models.TaskKey) (*models.Task, error) {
	if !key.Complete() {
		return nil, fmt.Errorf("task key %s is incomplete", key)
	}
	var task models.Task
	err := s.getDB().WithContext(ctx).First(&task, "project_id = ? AND id = ?", key.Project, key.Task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *models.Task) error {
	if !task.Key.Complete() {
		return fmt.Errorf("task key %s is incomplete", task.Key)
	}

	// Save writes every column, so an unset creation time would clobber
	// the stored one.
	if task.CreatedAt.IsZero() {
		existing, err := s.GetTask(ctx, task.Key)
		if err != nil {
			return err
		}
		if existing != nil {
			task.CreatedAt = existing.CreatedAt
		}
	}

	return s.getDB().WithContext(ctx).Save(task).Error
}

func (s *PostgresStore) DeleteTask(ctx context.Context, key models.TaskKey) error {
	if !key.Complete() {
		return fmt.Errorf("task key %s is incomplete", key)
	}
	return s.getDB().WithContext(ctx).Delete(&models.Task{}, "project_id = ? AND id = ?", key.Project, key.Task).Error
}

func (s *PostgresStore) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.getDB().WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

// User operations

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.getDB().WithContext(ctx).Create(user).Error
}

func (s *PostgresStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.getDB().WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.getDB().WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.getDB().WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}
