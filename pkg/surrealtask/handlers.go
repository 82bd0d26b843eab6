package surrealtask

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/surrealdb/surrealtask/pkg/models"
)

// Project handlers provide CRUD operations for the parent records of the
// system. Projects do not require authentication; they exist so tasks have
// an ancestor to hang under.

// handleCreateProject creates a new project from the provided JSON payload.
//
// HTTP Method: POST
// Endpoint: /api/projects
// Content-Type: application/json
//
// Request body should contain a Project object with:
//   - Name: project display name (required)
//
// Response:
//   - 201 Created: project successfully created, returns the project with
//     its store-assigned ID and refreshed updated_at timestamp
//   - 400 Bad Request: invalid JSON payload or empty name
//   - 500 Internal Server Error: store operation failed
//
// The store assigns the ID and the updated_at timestamp; values supplied by
// the caller for those fields are ignored.
func (a *App) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if project.Name == "" {
		respondError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	project.ID = models.ProjectID{}

	ctx := r.Context()
	if err := a.store.CreateProject(ctx, &project); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

func (a *App) handleGetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseProjectID(vars["project"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	ctx := r.Context()
	project, err := a.store.GetProject(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

func (a *App) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseProjectID(vars["project"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if project.Name == "" {
		respondError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	ctx := r.Context()
	existing, err := a.store.GetProject(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	project.ID = id
	if err := a.store.UpdateProject(ctx, &project); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, project)
}

func (a *App) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseProjectID(vars["project"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	ctx := r.Context()
	existing, err := a.store.GetProject(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := a.store.DeleteProject(ctx, id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projects, err := a.store.ListProjects(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, projects)
}

// Task handlers operate on the child records. Every task route names the
// ancestor project in its path, and the project must exist before any task
// operation proceeds. Writes additionally require a signed-in user whose
// identity becomes the task's modified_by reference.

// resolveProject parses the {project} path segment and verifies the project
// exists. It writes the error response and returns false when the request
// cannot proceed.
func (a *App) resolveProject(w http.ResponseWriter, r *http.Request) (models.ProjectID, bool) {
	vars := mux.Vars(r)
	id, err := models.ParseProjectID(vars["project"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return models.ProjectID{}, false
	}

	project, err := a.store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return models.ProjectID{}, false
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return models.ProjectID{}, false
	}

	return id, true
}

// handleCreateTask inserts a task under the project named in the path.
//
// Without an id in the body the store assigns the task segment of the key.
// With an id, the request loads and updates the record at that composite
// key; a request naming a key with no stored record is rejected with 400.
// The authenticated caller becomes the task's modified_by reference.
func (a *App) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := a.resolveProject(w, r)
	if !ok {
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The path names the ancestor; a project segment in the body is ignored.
	task.Key = models.NewTaskKey(projectID, task.Key.Task)
	task.ModifiedBy = user.ID

	ctx := r.Context()
	if !task.Key.Task.IsZero() {
		existing, err := a.store.GetTask(ctx, task.Key)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if existing == nil {
			respondError(w, http.StatusBadRequest, "Task does not exist")
			return
		}
		task.CreatedAt = existing.CreatedAt
		if err := a.store.UpdateTask(ctx, &task); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, task)
		return
	}

	if err := a.store.CreateTask(ctx, &task); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

func (a *App) handleGetTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := a.resolveProject(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	taskID, err := models.ParseTaskID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	ctx := r.Context()
	task, err := a.store.GetTask(ctx, models.NewTaskKey(projectID, taskID))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// handleUpdateTask updates the attributes of the task at the full composite
// key. An update that does not resolve to a stored record is rejected with
// 400 rather than creating one.
func (a *App) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := a.resolveProject(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	taskID, err := models.ParseTaskID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	key := models.NewTaskKey(projectID, taskID)

	ctx := r.Context()
	existing, err := a.store.GetTask(ctx, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusBadRequest, "Task does not exist")
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	task.Key = key
	task.CreatedAt = existing.CreatedAt
	task.ModifiedBy = user.ID

	if err := a.store.UpdateTask(ctx, &task); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (a *App) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := a.resolveProject(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	taskID, err := models.ParseTaskID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	key := models.NewTaskKey(projectID, taskID)

	ctx := r.Context()
	existing, err := a.store.GetTask(ctx, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	if err := a.store.DeleteTask(ctx, key); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleListTasks returns the ancestor-scoped listing: exactly the tasks
// whose composite key carries the project named in the path.
func (a *App) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := a.resolveProject(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	tasks, err := a.store.ListTasks(ctx, projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Helper functions provide common HTTP response handling.

// respondJSON sends a JSON response with the specified HTTP status code and
// payload. Marshaling errors are silently ignored, which is acceptable here
// since all payloads are our own model types.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends a standardized JSON error response with the specified
// status and message.
//
// Response format:
//
//	{"error": "error message here"}
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// handleHealth provides a health check endpoint for monitoring.
//
// Response always returns HTTP 200 OK with a JSON object containing:
//   - status: always "healthy" when the server can respond
//   - backend: the active storage backend (surrealdb, postgres, memory)
//   - time: Unix timestamp of the health check
//
// The endpoint is accessible both at /health and /api/health and performs
// no expensive operations, so it is safe for load balancer probes.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"backend": a.config.Backend(),
		"time":    time.Now().Unix(),
	}
	respondJSON(w, http.StatusOK, response)
}
