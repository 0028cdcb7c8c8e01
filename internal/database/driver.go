package database

import "context"

// Driver is the engine-facing side of a lab session. Implementations
// wrap an already-open database handle; opening and closing is the
// session registry's job, not the lab module's.
// All implementations must be safe for concurrent use.
type Driver interface {
	// Close releases the underlying handle.
	Close() error

	// Ping checks if the connection is alive.
	Ping(ctx context.Context) error

	// Tables returns the names of all user tables, ordered by name.
	// Engine-internal objects are excluded.
	Tables(ctx context.Context) ([]string, error)

	// Columns returns column metadata for a table.
	Columns(ctx context.Context, table string) ([]Column, error)

	// Query runs a SQL statement and collects the full result.
	Query(ctx context.Context, sql string) (*QueryResult, error)

	// Exec runs a statement without collecting rows. Used for seeding
	// lab datasets, never for user queries.
	Exec(ctx context.Context, sql string) error

	// Name returns a display name for the underlying database.
	Name() string
}
