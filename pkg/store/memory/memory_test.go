package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealtask/pkg/models"
	"github.com/surrealdb/surrealtask/pkg/store/memory"
)

func TestGetProjectMissingReturnsNil(t *testing.T) {
	s := memory.NewMemoryStore()

	project, err := s.GetProject(context.Background(), models.NewProjectID())
	require.NoError(t, err)
	require.Nil(t, project)
}

func TestCreateTaskAssignsMissingSegment(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	project := &models.Project{Name: "launch"}
	require.NoError(t, s.CreateProject(ctx, project))
	require.False(t, project.ID.IsZero())

	task := &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "announce",
	}
	require.NoError(t, s.CreateTask(ctx, task))
	require.True(t, task.Key.Complete())
	require.False(t, task.Key.Task.IsZero())
	require.False(t, task.CreatedAt.IsZero())

	stored, err := s.GetTask(ctx, task.Key)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "announce", stored.Title)
}

func TestCreateTaskRequiresProjectSegment(t *testing.T) {
	s := memory.NewMemoryStore()

	err := s.CreateTask(context.Background(), &models.Task{Title: "orphan"})
	require.Error(t, err)
}

func TestGetTaskRejectsIncompleteKey(t *testing.T) {
	s := memory.NewMemoryStore()

	_, err := s.GetTask(context.Background(), models.PartialTaskKey(models.NewProjectID()))
	require.Error(t, err)
}

func TestUpdateTaskPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	task := &models.Task{
		Key:   models.PartialTaskKey(models.NewProjectID()),
		Title: "draft",
	}
	require.NoError(t, s.CreateTask(ctx, task))
	created := task.CreatedAt

	update := &models.Task{
		Key:   task.Key,
		Title: "draft v2",
	}
	require.NoError(t, s.UpdateTask(ctx, update))

	stored, err := s.GetTask(ctx, task.Key)
	require.NoError(t, err)
	require.Equal(t, "draft v2", stored.Title)
	require.Equal(t, created, stored.CreatedAt)
}

func TestListTasksScopedToProject(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	first := models.NewProjectID()
	second := models.NewProjectID()

	for _, task := range []*models.Task{
		{Key: models.PartialTaskKey(first), Title: "a"},
		{Key: models.PartialTaskKey(first), Title: "b"},
		{Key: models.PartialTaskKey(second), Title: "c"},
	} {
		require.NoError(t, s.CreateTask(ctx, task))
	}

	tasks, err := s.ListTasks(ctx, first)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.Equal(t, first, task.Key.Project)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@example.com", Name: "A"}))
	err := s.CreateUser(ctx, &models.User{Email: "a@example.com", Name: "B"})
	require.Error(t, err)
}
