package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestGateway creates a gateway over an in-memory database
func NewTestGateway(t *testing.T) *Gateway {
	t.Helper()

	g, err := Open(":memory:")
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		g.Close()
	})

	return g
}

// TestSchema verifies the schema applies cleanly
func TestSchema(t *testing.T) {
	g := NewTestGateway(t)

	tables := []string{
		"projects",
		"activities",
		"users",
		"admin_users",
	}

	for _, table := range tables {
		var count int
		err := g.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	g := NewTestGateway(t)

	_, err := g.db.Exec(schema)
	require.NoError(t, err, "reapplying the schema must not fail")
}
