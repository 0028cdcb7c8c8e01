package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry(nil)
	t.Cleanup(registry.CloseAll)

	sess, err := registry.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, "memory", sess.Name)

	drv, ok := registry.Resolve(sess.ID)
	require.True(t, ok)
	require.NotNil(t, drv)
	require.NoError(t, drv.Ping(context.Background()))

	_, ok = registry.Resolve("unknown")
	require.False(t, ok)

	require.NoError(t, registry.Close(sess.ID))
	_, ok = registry.Resolve(sess.ID)
	require.False(t, ok)

	// Closing an unknown session is a no-op.
	require.NoError(t, registry.Close(sess.ID))
}

func TestRegistrySeed(t *testing.T) {
	registry := NewRegistry(nil)
	t.Cleanup(registry.CloseAll)

	sess, err := registry.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	err = registry.Seed(context.Background(), sess.ID, `
		CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);
		INSERT INTO notes (body) VALUES ('hi');
	`)
	require.NoError(t, err)

	drv, ok := registry.Resolve(sess.ID)
	require.True(t, ok)

	tables, err := drv.Tables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"notes"}, tables)

	require.Error(t, registry.Seed(context.Background(), "unknown", "SELECT 1"))
}

func TestRegistrySessionIDsAreUnique(t *testing.T) {
	registry := NewRegistry(nil)
	t.Cleanup(registry.CloseAll)

	a, err := registry.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	b, err := registry.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
}
