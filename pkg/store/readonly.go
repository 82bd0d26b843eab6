package store

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealtask/pkg/models"
)

// ReadOnlyStore wraps a Store and prevents write operations when in read-only
// mode.
//
// The read-only state is determined dynamically by the isReadOnly function,
// allowing the application to toggle between read-write and read-only modes
// without recreating the store instance. This is used for maintenance
// windows where the server keeps answering reads while all writes are
// rejected.
//
// All write operations (Create, Update, Delete) return an error when in
// read-only mode, while read operations (Get, List) continue to work
// normally.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// checkReadOnly returns an error if the store is in read-only mode
func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: application is in read-only mode")
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateProject(ctx context.Context, project *models.Project) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateProject(ctx, project)
}

func (r *ReadOnlyStore) UpdateProject(ctx context.Context, project *models.Project) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateProject(ctx, project)
}

func (r *ReadOnlyStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteProject(ctx, id)
}

func (r *ReadOnlyStore) CreateTask(ctx context.Context, task *models.Task) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateTask(ctx, task)
}

func (r *ReadOnlyStore) UpdateTask(ctx context.Context, task *models.Task) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateTask(ctx, task)
}

func (r *ReadOnlyStore) DeleteTask(ctx context.Context, key models.TaskKey) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteTask(ctx, key)
}

func (r *ReadOnlyStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateUser(ctx, user)
}
