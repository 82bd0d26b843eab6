// Package surrealtask demonstrates building a project and task tracker with
// dual database backend support (PostgreSQL and SurrealDB) on top of the
// SurrealDB Go SDK.
//
// The application is deliberately small: parent records (projects) own child
// records (tasks), and a task is addressed by a composite key that pairs the
// owning project's ID with the task's own ID. That one modeling decision
// drives the rest of the design, because the composite key maps directly onto
// SurrealDB's array-form record IDs while still flattening into ordinary
// columns on a relational backend.
//
// # Features
//
//   - Dual Database Support: the same store interface is implemented for
//     PostgreSQL (using GORM) and SurrealDB (using the native SDK)
//   - Composite Task Keys: a task's address always names its parent project,
//     so ancestor-scoped queries need no extra bookkeeping fields
//   - Deferred Key Finalization: a task key may start with only its project
//     segment; the store assigns the task segment on first write
//   - RESTful API: CRUD operations for projects and tasks plus session-based
//     authentication stubs for demonstration (not production-ready)
//   - In-Memory Store: a map-backed backend for tests and local development
//
// # Architecture Overview
//
//   - Multi-Backend Support: the [github.com/surrealdb/surrealtask/pkg/store.Store]
//     interface abstracts the PostgreSQL, SurrealDB, and in-memory
//     implementations; the application never sees a concrete backend
//   - Command Pattern: the [github.com/surrealdb/surrealtask/pkg/surrealtask.Command]
//     interface organizes application operations (run, migrate) with their
//     specific configurations
//   - Read-Only Mode: every backend is wrapped by
//     [github.com/surrealdb/surrealtask/pkg/store.ReadOnlyStore], which
//     rejects writes during maintenance windows
//
// # Data Model
//
// Projects, tasks, and users all use typed IDs so that an ID from one entity
// cannot be passed where another is expected. Tasks carry the composite
// [github.com/surrealdb/surrealtask/pkg/models.TaskKey]. For the entity
// definitions and the key semantics, see
// [github.com/surrealdb/surrealtask/pkg/models].
//
// # Getting Started
//
// For command-line usage, quick start examples, and application
// configuration, see [github.com/surrealdb/surrealtask/pkg/surrealtask].
//
// # API Integration
//
// The [github.com/surrealdb/surrealtask/pkg/client] package provides a Go
// HTTP client for programmatic access to the surrealtask API. The end-to-end
// smoke test at the repository root drives a running server through that
// client.
package surrealtask
