package database

import (
	"context"
	"fmt"
	"testing"

	"nexora-chat/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppMode:     "test",
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}
}

func TestOpenMigrateAndReset(t *testing.T) {
	db, err := Open(openMemory(t))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, HealthCheck(context.Background(), db))
	require.NoError(t, Migrate(db))

	tables, err := ListTables(db)
	require.NoError(t, err)
	assert.Subset(t, tables, []string{"users", "chat_entries", "feedback_entries"})

	require.NoError(t, db.Exec("INSERT INTO users (id, email, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)", uuid.New(), "x@example.com").Error)
	count, err := CountRows(db, "users")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, Reset(db))
	count, err = CountRows(db, "users")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "chat.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("chat.db"))
	assert.Equal(t, "file:x?mode=memory", sqliteDSN("file:x?mode=memory"))
}

func TestHealthCheckNilDB(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background(), nil))
}
