//go:build smoke

// Package surrealtask_test provides smoke testing for the surrealtask server.
//
// The smoke test drives a RUNNING server over HTTP through the API client; it
// never touches the storage layer directly, so it exercises the same path a
// real caller would. Start a server first:
//
//	surrealtask -memory run
//
// then run:
//
//	go test -tags smoke -run TestE2ESmoke .
//
// Environment:
//
//	SURREALTASK_URL  base URL of the server (default http://localhost:8080)
//
// The test creates its own user and project, cleans up the records it
// created, and leaves any pre-existing data alone, so it is safe to point at
// a shared development server.
package surrealtask_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealtask/pkg/client"
	"github.com/surrealdb/surrealtask/pkg/models"
)

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func TestE2ESmoke(t *testing.T) {
	ctx := context.Background()
	baseURL := getEnvString("SURREALTASK_URL", "http://localhost:8080")

	c := client.NewClient(baseURL)

	health, err := c.Health(ctx)
	require.NoError(t, err, "Server health check failed")
	require.Equal(t, "healthy", health["status"], "Server is not healthy")

	stamp := time.Now().UnixNano()
	auth, err := c.SignUp(ctx, fmt.Sprintf("smoke-%d@example.com", stamp), "password123", "Smoke Tester")
	require.NoError(t, err, "Signup failed")
	require.NotEmpty(t, auth.Token, "Signup returned no token")

	project, err := c.CreateProject(ctx, &models.Project{Name: fmt.Sprintf("Smoke %d", stamp)})
	require.NoError(t, err, "Failed to create project")
	require.False(t, project.ID.IsZero(), "Project came back without an ID")

	defer func() {
		require.NoError(t, c.DeleteProject(ctx, project.ID), "Failed to delete project")
	}()

	// The server assigns the task segment of the key.
	first, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "smoke: store assigned",
	})
	require.NoError(t, err, "Failed to create task")
	require.True(t, first.Key.Complete(), "Task came back with an incomplete key")
	require.Equal(t, project.ID, first.Key.Project, "Task key names the wrong project")

	// Posting the same key again updates the record in place.
	updated, err := c.CreateTaskWithID(ctx, first.Key, &models.Task{
		Title: "smoke: updated in place",
	})
	require.NoError(t, err, "Failed to update task by key")
	require.Equal(t, first.Key, updated.Key, "Update moved the task to a different key")
	require.True(t, first.CreatedAt.Equal(updated.CreatedAt), "Creation time changed on update")

	second, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "smoke: second",
	})
	require.NoError(t, err, "Failed to create second task")
	require.NotEqual(t, first.Key.Task, second.Key.Task, "Assigned task IDs collided")

	tasks, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err, "Failed to list tasks")
	require.Len(t, tasks, 2, "Listing returned the wrong number of tasks")
	for _, task := range tasks {
		require.Equal(t, project.ID, task.Key.Project, "Task listed outside its project")
	}

	for _, task := range tasks {
		require.NoError(t, c.DeleteTask(ctx, task.Key), "Failed to delete task")
	}

	remaining, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err, "Failed to list tasks after deletion")
	require.Empty(t, remaining, "Tasks survived deletion")

	me, err := c.GetCurrentUser(ctx)
	require.NoError(t, err, "Failed to fetch current user")
	require.Equal(t, auth.User.ID, me.ID, "Session resolved to the wrong user")

	require.NoError(t, c.SignOut(ctx), "Signout failed")
}
