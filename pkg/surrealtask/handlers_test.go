package surrealtask_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealtask/pkg/client"
	"github.com/surrealdb/surrealtask/pkg/models"
	"github.com/surrealdb/surrealtask/pkg/surrealtask"
)

// newTestClient boots the application on the in-memory store and returns a
// client pointed at an httptest server wrapping the full router, middleware
// included. Each test gets its own store, so tests stay independent.
func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	app, err := surrealtask.New(&surrealtask.Config{
		UseMemory: true,
		LogPath:   filepath.Join(t.TempDir(), "surrealtask.log"),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, app.Close())
	})

	return client.NewClient(srv.URL)
}

// signUp registers a throwaway account and leaves its token on the client.
func signUp(t *testing.T, c *client.Client) *models.User {
	t.Helper()

	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	auth, err := c.SignUp(context.Background(), email, "password123", "Test User")
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)
	require.NotNil(t, auth.User)
	return auth.User
}

func TestHealth(t *testing.T) {
	c := newTestClient(t)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "healthy", health["status"])
	require.Equal(t, "memory", health["backend"])
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	created, err := c.CreateProject(ctx, &models.Project{Name: "Launch"})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	got, err := c.GetProject(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Launch", got.Name)

	got.Name = "Launch v2"
	updated, err := c.UpdateProject(ctx, got)
	require.NoError(t, err)
	require.Equal(t, "Launch v2", updated.Name)

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	require.NoError(t, c.DeleteProject(ctx, created.ID))

	_, err = c.GetProject(ctx, created.ID)
	require.ErrorContains(t, err, "status=404")
}

func TestCreateProjectRequiresName(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateProject(context.Background(), &models.Project{})
	require.ErrorContains(t, err, "status=400")
	require.ErrorContains(t, err, "Project name is required")
}

// A task names its project in the request path, so posting under a project
// that was never created must fail with a 404 rather than silently minting
// an orphan record.
func TestCreateTaskUnderMissingProject(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	_, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(models.NewProjectID()),
		Title: "orphan",
	})
	require.ErrorContains(t, err, "status=404")
	require.ErrorContains(t, err, "Project not found")
}

// Posting a task without an ID leaves the task segment for the server to
// assign. The stored task must come back with a complete key.
func TestCreateTaskAssignsID(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	user := signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Inbox"})
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "write release notes",
		Notes: "cover the storage changes",
	})
	require.NoError(t, err)
	require.True(t, created.Key.Complete())
	require.False(t, created.Key.Task.IsZero())
	require.Equal(t, project.ID, created.Key.Project)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, user.ID, created.ModifiedBy)

	second, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "tag the release",
	})
	require.NoError(t, err)
	require.NotEqual(t, created.Key.Task, second.Key.Task)
}

// Posting a task that already carries an ID is a load-and-update of the
// record at that key, not a second insert.
func TestCreateTaskWithIDUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Inbox"})
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "draft",
	})
	require.NoError(t, err)

	updated, err := c.CreateTaskWithID(ctx, created.Key, &models.Task{
		Title: "draft, reviewed",
		Notes: "ready to merge",
	})
	require.NoError(t, err)
	require.Equal(t, created.Key, updated.Key)
	require.Equal(t, "draft, reviewed", updated.Title)
	require.Equal(t, "ready to merge", updated.Notes)
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	tasks, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestCreateTaskWithUnknownIDRejected(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Inbox"})
	require.NoError(t, err)

	key := models.NewTaskKey(project.ID, models.NewTaskID())
	_, err = c.CreateTaskWithID(ctx, key, &models.Task{Title: "ghost"})
	require.ErrorContains(t, err, "status=400")
	require.ErrorContains(t, err, "Task does not exist")
}

func TestUpdateMissingTaskRejected(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Inbox"})
	require.NoError(t, err)

	_, err = c.UpdateTask(ctx, &models.Task{
		Key:   models.NewTaskKey(project.ID, models.NewTaskID()),
		Title: "phantom",
	})
	require.ErrorContains(t, err, "status=400")
	require.ErrorContains(t, err, "Task does not exist")
}

// Listing is scoped by the ancestor segment of the key: each project sees
// only its own tasks.
func TestListTasksScopedToProject(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	alpha, err := c.CreateProject(ctx, &models.Project{Name: "Alpha"})
	require.NoError(t, err)
	beta, err := c.CreateProject(ctx, &models.Project{Name: "Beta"})
	require.NoError(t, err)
	empty, err := c.CreateProject(ctx, &models.Project{Name: "Empty"})
	require.NoError(t, err)

	for _, title := range []string{"first", "second"} {
		_, err = c.CreateTask(ctx, &models.Task{
			Key:   models.PartialTaskKey(alpha.ID),
			Title: title,
		})
		require.NoError(t, err)
	}
	_, err = c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(beta.ID),
		Title: "other",
	})
	require.NoError(t, err)

	alphaTasks, err := c.ListTasks(ctx, alpha.ID)
	require.NoError(t, err)
	require.Len(t, alphaTasks, 2)
	for _, task := range alphaTasks {
		require.Equal(t, alpha.ID, task.Key.Project)
	}

	betaTasks, err := c.ListTasks(ctx, beta.ID)
	require.NoError(t, err)
	require.Len(t, betaTasks, 1)
	require.Equal(t, "other", betaTasks[0].Title)

	emptyTasks, err := c.ListTasks(ctx, empty.ID)
	require.NoError(t, err)
	require.Empty(t, emptyTasks)
}

func TestTaskReadAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Inbox"})
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "short lived",
	})
	require.NoError(t, err)

	got, err := c.GetTask(ctx, created.Key)
	require.NoError(t, err)
	require.Equal(t, "short lived", got.Title)

	_, err = c.GetTask(ctx, models.NewTaskKey(project.ID, models.NewTaskID()))
	require.ErrorContains(t, err, "status=404")

	require.NoError(t, c.DeleteTask(ctx, created.Key))

	_, err = c.GetTask(ctx, created.Key)
	require.ErrorContains(t, err, "status=404")

	err = c.DeleteTask(ctx, created.Key)
	require.ErrorContains(t, err, "status=404")
}

func TestTaskWritesRequireAuth(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	signUp(t, c)

	project, err := c.CreateProject(ctx, &models.Project{Name: "Locked"})
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "secured",
	})
	require.NoError(t, err)

	c.SetAuthToken("")

	_, err = c.CreateTask(ctx, &models.Task{
		Key:   models.PartialTaskKey(project.ID),
		Title: "anonymous",
	})
	require.ErrorContains(t, err, "status=401")

	created.Title = "anonymous edit"
	_, err = c.UpdateTask(ctx, created)
	require.ErrorContains(t, err, "status=401")

	err = c.DeleteTask(ctx, created.Key)
	require.ErrorContains(t, err, "status=401")

	// Reads stay open.
	got, err := c.GetTask(ctx, created.Key)
	require.NoError(t, err)
	require.Equal(t, "secured", got.Title)

	tasks, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestAuthSessions(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	email := fmt.Sprintf("ada-%d@example.com", time.Now().UnixNano())
	auth, err := c.SignUp(ctx, email, "secret", "Ada")
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)

	me, err := c.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, auth.User.ID, me.ID)
	require.Equal(t, email, me.Email)

	refreshed, err := c.RefreshToken(ctx)
	require.NoError(t, err)
	require.NotEqual(t, auth.Token, refreshed.Token)

	me, err = c.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, auth.User.ID, me.ID)

	require.NoError(t, c.SignOut(ctx))

	_, err = c.GetCurrentUser(ctx)
	require.ErrorContains(t, err, "status=401")

	signed, err := c.SignIn(ctx, email, "secret")
	require.NoError(t, err)
	require.Equal(t, auth.User.ID, signed.User.ID)
}

func TestReadOnlyModeBlocksWrites(t *testing.T) {
	ctx := context.Background()

	app, err := surrealtask.New(&surrealtask.Config{
		UseMemory: true,
		ReadOnly:  true,
		LogPath:   filepath.Join(t.TempDir(), "surrealtask.log"),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, app.Close())
	})

	c := client.NewClient(srv.URL)
	_, err = c.CreateProject(ctx, &models.Project{Name: "Frozen"})
	require.ErrorContains(t, err, "read-only mode")

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
}
