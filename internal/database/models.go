package database

import "time"

// QueryResult holds the result of a SQL query execution. It is built
// once per execution and not mutated afterwards. Every row has exactly
// len(Columns) cells.
type QueryResult struct {
	Columns  []string
	Rows     [][]Value
	RowCount int
	Duration time.Duration

	// Limited is set when the row cap truncated (or may have
	// truncated) the result relative to the unconstrained query.
	Limited bool
}

// Column describes one column of a user table.
type Column struct {
	Name       string
	DeclType   string
	NotNull    bool
	PrimaryKey bool
}

// TableSchema is the introspected shape of a single user table.
type TableSchema struct {
	Name    string
	Columns []Column
}
