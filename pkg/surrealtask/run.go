package surrealtask

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router builds the HTTP routing table for the application. It is exposed
// separately from Run so tests can drive the full routing and handler stack
// through httptest without binding a port.
func (a *App) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(a.logRequests)

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Auth routes
	api.HandleFunc("/auth/signup", a.handleSignUp).Methods("POST")
	api.HandleFunc("/auth/signin", a.handleSignIn).Methods("POST")
	api.HandleFunc("/auth/signout", a.handleSignOut).Methods("POST")
	api.HandleFunc("/auth/me", a.handleGetCurrentUser).Methods("GET")
	api.HandleFunc("/auth/refresh", a.handleRefreshToken).Methods("POST")

	// Project routes
	api.HandleFunc("/projects", a.handleCreateProject).Methods("POST")
	api.HandleFunc("/projects", a.handleListProjects).Methods("GET")
	api.HandleFunc("/projects/{project}", a.handleGetProject).Methods("GET")
	api.HandleFunc("/projects/{project}", a.handleUpdateProject).Methods("PUT")
	api.HandleFunc("/projects/{project}", a.handleDeleteProject).Methods("DELETE")

	// Task routes, nested under their project so every path names the
	// ancestor segment of the task key
	api.HandleFunc("/projects/{project}/tasks", a.handleCreateTask).Methods("POST")
	api.HandleFunc("/projects/{project}/tasks", a.handleListTasks).Methods("GET")
	api.HandleFunc("/projects/{project}/tasks/{id}", a.handleGetTask).Methods("GET")
	api.HandleFunc("/projects/{project}/tasks/{id}", a.handleUpdateTask).Methods("PUT")
	api.HandleFunc("/projects/{project}/tasks/{id}", a.handleDeleteTask).Methods("DELETE")

	// Health check route (outside of /api prefix)
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	return router
}

// Run starts the HTTP server for the task tracking API.
//
// # API Endpoints
//
// Health Check:
//
//	GET  /health, /api/health                        - Service health status
//
// Authentication:
//
//	POST /api/auth/signup                            - Register new user account
//	POST /api/auth/signin                            - Authenticate existing user
//	POST /api/auth/signout                           - End user session
//	GET  /api/auth/me                                - Get current authenticated user
//	POST /api/auth/refresh                           - Refresh authentication token
//
// Projects:
//
//	POST   /api/projects                             - Create new project
//	GET    /api/projects                             - List projects
//	GET    /api/projects/{project}                   - Get project by ID
//	PUT    /api/projects/{project}                   - Update project name
//	DELETE /api/projects/{project}                   - Delete project
//
// Tasks (writes require authentication):
//
//	POST   /api/projects/{project}/tasks             - Create task, or update when an id is supplied
//	GET    /api/projects/{project}/tasks             - List the project's tasks
//	GET    /api/projects/{project}/tasks/{id}        - Get task by composite key
//	PUT    /api/projects/{project}/tasks/{id}        - Update task attributes
//	DELETE /api/projects/{project}/tasks/{id}        - Delete task
//
// The server supports graceful shutdown through context cancellation,
// allowing ongoing requests to complete before terminating. On shutdown it
// allows up to 5 seconds for active requests to drain.
//
// The method blocks until the context is cancelled or a fatal server error
// occurs.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	router := a.Router()

	// Start server
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().
		Str("addr", addr).
		Str("backend", a.config.Backend()).
		Bool("read_only", a.readOnly).
		Msg("starting surrealtask server")

	// Create HTTP server
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		// Context cancelled, shutdown gracefully
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		// Server error
		return err
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests is a mux middleware emitting one structured log line per
// request.
func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}
