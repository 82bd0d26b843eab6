// Package memory provides a map-backed implementation of the
// [github.com/surrealdb/surrealtask/pkg/store.Store] interface. It backs the
// -memory run mode and the handler tests, and follows the same contract as
// the database stores: identifiers are assigned on create, missing records
// read back as nil without error, and task listings are scoped to the key's
// ancestor segment.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/surrealdb/surrealtask/pkg/models"
	"github.com/surrealdb/surrealtask/pkg/store"
)

// MemoryStore keeps all records in process-local maps guarded by a single
// read-write mutex. Entities are stored and returned by value so callers
// never share memory with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[models.ProjectID]models.Project
	tasks    map[models.TaskKey]models.Task
	users    map[models.UserID]models.User
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() store.Store {
	return &MemoryStore{
		projects: make(map[models.ProjectID]models.Project),
		tasks:    make(map[models.TaskKey]models.Task),
		users:    make(map[models.UserID]models.User),
	}
}

func (s *MemoryStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = models.NewProjectID()
	}
	project.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = *project
	return nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = *project
	return nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]*models.Project, 0, len(s.projects))
	for _, project := range s.projects {
		p := project
		projects = append(projects, &p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID.String() < projects[j].ID.String()
	})
	return projects, nil
}

func (s *MemoryStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Key.Project.IsZero() {
		return fmt.Errorf("task key has no project segment")
	}
	if task.Key.Task.IsZero() {
		task.Key = task.Key.WithTask(models.NewTaskID())
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.Key] = *task
	return nil
}

func (s *MemoryStore) GetTask(ctx context.Context, key models.TaskKey) (*models.Task, error) {
	if !key.Complete() {
		return nil, fmt.Errorf("task key %s is incomplete", key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[key]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, task *models.Task) error {
	if !task.Key.Complete() {
		return fmt.Errorf("task key %s is incomplete", task.Key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tasks[task.Key]; ok && task.CreatedAt.IsZero() {
		task.CreatedAt = existing.CreatedAt
	}
	s.tasks[task.Key] = *task
	return nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, key models.TaskKey) error {
	if !key.Complete() {
		return fmt.Errorf("task key %s is incomplete", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, key)
	return nil
}

func (s *MemoryStore) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []*models.Task
	for key, task := range s.tasks {
		if key.Project != projectID {
			continue
		}
		t := task
		tasks = append(tasks, &t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].Key.Task.String() < tasks[j].Key.Task.String()
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		u := user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

// Migrate is a no-op; the maps need no schema.
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
