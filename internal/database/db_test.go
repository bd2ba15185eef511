package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	require.NoError(t, err)

	return db
}

func countItems(t *testing.T, db *sql.DB) int {
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(1) FROM items").Scan(&n))
	return n
}

func TestWithTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db := setupTestDB(t)

		err := WithTransaction(db, func(tx *sql.Tx) error {
			_, err := tx.Exec("INSERT INTO items (name) VALUES ('a')")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countItems(t, db))
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db := setupTestDB(t)
		failure := errors.New("nope")

		err := WithTransaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec("INSERT INTO items (name) VALUES ('a')"); err != nil {
				return err
			}
			return failure
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 0, countItems(t, db))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		db := setupTestDB(t)

		err := WithTransaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec("INSERT INTO items (name) VALUES ('a')"); err != nil {
				return err
			}
			panic("boom")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic in transaction")
		assert.Equal(t, 0, countItems(t, db))
	})

	t.Run("rejects a nil connection", func(t *testing.T) {
		err := WithTransaction(nil, func(tx *sql.Tx) error { return nil })
		require.Error(t, err)
	})
}
