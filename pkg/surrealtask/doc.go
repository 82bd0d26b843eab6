// Package surrealtask provides the core application logic for a small
// project/task tracking service built on SurrealDB's hierarchical record
// keys. Tasks live under composite record IDs that embed their project, so a
// task's identity always carries its ancestor. The same data model runs
// unchanged against PostgreSQL (composite primary key) and an in-process
// memory store.
//
// Note: This is a backend-only demonstration with REST API endpoints. No
// user interface is provided.
//
// # Getting Started
//
// The application provides a command-line interface for running the server
// and managing migrations. For detailed usage information, see
// [github.com/surrealdb/surrealtask/pkg/surrealtask.Main].
//
// For API endpoint documentation and server configuration, see
// [github.com/surrealdb/surrealtask/pkg/surrealtask.App.Run].
//
// # Prerequisites
//
//   - Go 1.23+
//   - SurrealDB running on localhost:8000, or PostgreSQL for the -postgres
//     backend
//
// # Basic Usage
//
//	# Start SurrealDB
//	surreal start --user root --pass root
//
//	# Run database migrations
//	surrealtask migrate
//
//	# Run the server
//	surrealtask run
//
//	# Alternative backends
//	surrealtask -postgres run
//	surrealtask -memory run
//
//	# Reject writes during maintenance
//	surrealtask -read-only run
package surrealtask
