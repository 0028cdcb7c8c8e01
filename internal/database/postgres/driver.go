package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmoreaux/sqlab/internal/database"
)

// Driver implements database.Driver for an attached PostgreSQL
// database, letting an external database serve as a lab session.
type Driver struct {
	pool   *pgxpool.Pool
	dbName string
}

// Open establishes a connection pool to PostgreSQL.
func Open(ctx context.Context, dsn string) (*Driver, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 5
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Driver{pool: pool, dbName: cfg.ConnConfig.Database}, nil
}

// Close closes the connection pool.
func (d *Driver) Close() error {
	d.pool.Close()
	return nil
}

// Ping checks if the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Tables returns all user table names in the public schema.
func (d *Driver) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.pool.Query(ctx, queryListTables)
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

// Columns returns column metadata for a table.
func (d *Driver) Columns(ctx context.Context, table string) ([]database.Column, error) {
	rows, err := d.pool.Query(ctx, queryGetColumns, table)
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	defer rows.Close()

	var columns []database.Column
	for rows.Next() {
		var col database.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DeclType, &nullable, &col.PrimaryKey); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.NotNull = nullable == "NO"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// Query runs a SQL statement and collects the full result.
func (d *Driver) Query(ctx context.Context, query string) (*database.QueryResult, error) {
	start := time.Now()

	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var resultRows [][]database.Value
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make([]database.Value, len(values))
		for i, v := range values {
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

// Exec runs a statement without collecting rows.
func (d *Driver) Exec(ctx context.Context, stmt string) error {
	_, err := d.pool.Exec(ctx, stmt)
	return err
}

// Name returns the connected database name.
func (d *Driver) Name() string {
	return d.dbName
}
