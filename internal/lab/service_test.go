package lab

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmoreaux/sqlab/internal/database"
	"github.com/nmoreaux/sqlab/internal/session"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	registry := session.NewRegistry(nil)
	t.Cleanup(registry.CloseAll)

	sess, err := registry.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	err = registry.Seed(context.Background(), sess.ID, `
		CREATE TABLE planets (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			moons INTEGER
		);
		INSERT INTO planets (id, name, moons) VALUES
			(1, 'Mercury', 0),
			(2, 'Earth', 1),
			(3, 'Neptune', NULL);
	`)
	require.NoError(t, err)

	return NewService(registry, nil), sess.ID
}

func TestExecuteQuery(t *testing.T) {
	svc, sid := newTestService(t)

	result, err := svc.ExecuteQuery(context.Background(), sid, "SELECT id, name, moons FROM planets ORDER BY id")
	require.NoError(t, err)

	require.Equal(t, []string{"id", "name", "moons"}, result.Columns)
	require.Equal(t, 3, result.RowCount)
	require.Len(t, result.Rows, 3)
	for _, row := range result.Rows {
		require.Len(t, row, len(result.Columns))
	}

	require.Equal(t, database.KindNumber, result.Rows[0][0].Kind())
	require.Equal(t, "Mercury", result.Rows[0][1].Text())
	require.True(t, result.Rows[2][2].IsNull())
	require.True(t, result.Limited, "query without LIMIT is marked limited")
	require.Greater(t, result.Duration.Nanoseconds(), int64(0))
}

func TestExecuteQueryUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ExecuteQuery(context.Background(), "no-such-session", "SELECT 1")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "no-such-session", notFound.SessionID)
}

func TestExecuteQueryRejectsNonSelect(t *testing.T) {
	svc, sid := newTestService(t)

	for _, stmt := range []string{
		"DELETE FROM planets",
		"drop table planets",
		"INSERT INTO planets (id, name) VALUES (4, 'Pluto')",
		"  UPDATE planets SET moons = 2",
	} {
		_, err := svc.ExecuteQuery(context.Background(), sid, stmt)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation, "statement %q", stmt)
	}

	// Rejected before reaching the engine: the table is intact.
	result, err := svc.ExecuteQuery(context.Background(), sid, "SELECT count(*) AS n FROM planets")
	require.NoError(t, err)
	require.Equal(t, float64(3), result.Rows[0][0].Number())
}

func TestExecuteQuerySanitizesEngineError(t *testing.T) {
	svc, sid := newTestService(t)

	_, err := svc.ExecuteQuery(context.Background(), sid, "SELECT * FROM no_such_table")
	var exec *ExecutionError
	require.ErrorAs(t, err, &exec)
	require.NotEmpty(t, exec.Message)
	require.NotContains(t, exec.Message, "SQL logic error")
	require.NotContains(t, exec.Message, "SQLITE_")
	require.NotRegexp(t, `\(\d+\)$`, exec.Message)
}

func TestExecuteQueryRowCap(t *testing.T) {
	svc, sid := newTestService(t)

	registry := svc.registry
	var b strings.Builder
	b.WriteString("CREATE TABLE big (n INTEGER); INSERT INTO big (n) VALUES ")
	for i := 0; i < 1200; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "(%d)", i)
	}
	b.WriteString(";")
	require.NoError(t, registry.Seed(context.Background(), sid, b.String()))

	// No LIMIT: capped and marked.
	result, err := svc.ExecuteQuery(context.Background(), sid, "SELECT n FROM big")
	require.NoError(t, err)
	require.Equal(t, MaxRows, result.RowCount)
	require.True(t, result.Limited)

	// Explicit LIMIT within bounds that still hits the cap organically.
	result, err = svc.ExecuteQuery(context.Background(), sid, "SELECT n FROM big LIMIT 1000")
	require.NoError(t, err)
	require.Equal(t, MaxRows, result.RowCount)
	require.True(t, result.Limited)

	// Oversized LIMIT is rewritten down.
	result, err = svc.ExecuteQuery(context.Background(), sid, "SELECT n FROM big LIMIT 5000")
	require.NoError(t, err)
	require.Equal(t, MaxRows, result.RowCount)
	require.True(t, result.Limited)

	// Small LIMIT passes through untouched.
	result, err = svc.ExecuteQuery(context.Background(), sid, "SELECT n FROM big LIMIT 5")
	require.NoError(t, err)
	require.Equal(t, 5, result.RowCount)
	require.False(t, result.Limited)
}

func TestSchemas(t *testing.T) {
	svc, sid := newTestService(t)

	registry := svc.registry
	require.NoError(t, registry.Seed(context.Background(), sid, `
		CREATE TABLE asteroids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			designation TEXT NOT NULL
		);
	`))

	schemas, err := svc.Schemas(context.Background(), sid)
	require.NoError(t, err)

	// Ordered by name; the sqlite_sequence table created by
	// AUTOINCREMENT never shows up.
	require.Len(t, schemas, 2)
	require.Equal(t, "asteroids", schemas[0].Name)
	require.Equal(t, "planets", schemas[1].Name)

	planets := schemas[1]
	require.Len(t, planets.Columns, 3)

	id := planets.Columns[0]
	require.Equal(t, "id", id.Name)
	require.Equal(t, "INTEGER", id.DeclType)
	require.True(t, id.PrimaryKey)

	name := planets.Columns[1]
	require.Equal(t, "name", name.Name)
	require.True(t, name.NotNull)
	require.False(t, name.PrimaryKey)

	moons := planets.Columns[2]
	require.False(t, moons.NotNull)
}

func TestSchemasUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Schemas(context.Background(), "missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
