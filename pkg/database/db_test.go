package database_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/database"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "bazaar.db?_foreign_keys=1", database.SQLiteDSN("bazaar.db"))
	assert.Equal(t,
		"file:x?mode=memory&cache=shared&_foreign_keys=1",
		database.SQLiteDSN("file:x?mode=memory&cache=shared"))
	// Already present: left alone.
	assert.Equal(t, "x.db?_foreign_keys=0", database.SQLiteDSN("x.db?_foreign_keys=0"))
}

// Referential actions must hold on every pooled connection, not just the
// first one the server happens to open.
func TestConnectEnforcesForeignKeysOnEveryConnection(t *testing.T) {
	config.Set("DB_DRIVER", "sqlite")
	config.Set("DATABASE_DSN", "file:fkpool?mode=memory&cache=shared")
	t.Cleanup(func() {
		config.Set("DB_DRIVER", "")
		config.Set("DATABASE_DSN", "")
	})

	require.NoError(t, database.Connect())
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()

	// Hold several connections open at once so each is a distinct
	// physical connection.
	var conns []*sql.Conn
	for i := 0; i < 5; i++ {
		conn, err := sqlDB.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	for i, conn := range conns {
		var enabled int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
		assert.Equal(t, 1, enabled, "connection %d has foreign_keys off", i)
	}
}
