package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nmoreaux/sqlab/internal/database"
)

// Driver implements database.Driver for an embedded SQLite database
// using the pure-Go modernc.org/sqlite driver.
type Driver struct {
	db   *sql.DB
	name string
}

// Open opens (or creates) the SQLite database at path. Pass ":memory:"
// for a scratch in-memory database.
func Open(ctx context.Context, path string) (*Driver, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	// The modernc driver does not tolerate concurrent writes on
	// multiple connections against one file; a lab session is
	// single-user, one connection is enough.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	name := "memory"
	if path != ":memory:" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &Driver{db: db, name: name}, nil
}

// Close closes the database handle.
func (d *Driver) Close() error {
	return d.db.Close()
}

// Ping checks if the handle is alive.
func (d *Driver) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Tables returns all user table names ordered by name. Objects under
// the sqlite_ prefix are engine-internal and excluded.
func (d *Driver) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, queryListTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns returns column metadata for a table via PRAGMA table_info.
func (d *Driver) Columns(ctx context.Context, table string) ([]database.Column, error) {
	// PRAGMA arguments cannot be bound; quote the identifier instead.
	stmt := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table))

	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var columns []database.Column
	for rows.Next() {
		var (
			cid     int
			col     database.Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.DeclType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// Query runs a SQL statement and collects the full result.
func (d *Driver) Query(ctx context.Context, query string) (*database.QueryResult, error) {
	start := time.Now()

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var resultRows [][]database.Value
	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make([]database.Value, len(columns))
		for i, v := range raw {
			row[i] = database.FromAny(v)
		}
		resultRows = append(resultRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &database.QueryResult{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
		Duration: time.Since(start),
	}, nil
}

// Exec runs a statement (or script) without collecting rows.
func (d *Driver) Exec(ctx context.Context, stmt string) error {
	_, err := d.db.ExecContext(ctx, stmt)
	return err
}

// Name returns the database display name.
func (d *Driver) Name() string {
	return d.name
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
