package db

import (
	"context"
	"errors"
)

// Database kinds addressable through the registry
const (
	KindSQLite     = "sqlite"
	KindPostgreSQL = "postgresql"
	KindMySQL      = "mysql"
	KindMongoDB    = "mongodb"
)

var (
	// ErrNotConnected is returned when a handler is used before Connect
	ErrNotConnected = errors.New("not connected to database")

	// ErrUnsupportedOperation is returned when a backend does not know the requested operation
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Handler defines the interface every database backend implements.
// Execute runs one operation against the backend's own connection and
// normalizes the driver's native output into a Result. Handlers propagate
// driver errors untouched; shaping failures into a response envelope is
// the router's job.
type Handler interface {
	// Kind returns the database kind identifier (e.g. "sqlite")
	Kind() string

	// Connection management
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error

	// Execute runs a single operation. query is SQL text for relational
	// backends and unused for document backends, which read everything
	// from params. params is a positional sequence for relational
	// backends or a mapping for document backends.
	Execute(ctx context.Context, operation, query string, params any) (*Result, error)
}
