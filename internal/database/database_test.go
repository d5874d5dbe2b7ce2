package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// setupTestDB swaps the global connection for an in-memory SQLite database
// with the full schema applied
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	prev := DB
	DB = db
	require.NoError(t, InitSchema())

	t.Cleanup(func() {
		db.Close()
		DB = prev
	})
}
