package catalog

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE etf_info (
			ths_code TEXT PRIMARY KEY,
			chinese_name TEXT NOT NULL,
			start_day TEXT,
			end_day TEXT,
			sector TEXT
		);
		CREATE TABLE category (
			cid INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 1,
			item_count INTEGER NOT NULL DEFAULT 0
		);

		INSERT INTO etf_info (ths_code, chinese_name, sector) VALUES
			('A1', 'Alpha', 'tech'),
			('A2', 'Beta', 'tech'),
			('B1', 'Gamma', 'energy'),
			('C1', 'Delta', 'metals');
		INSERT INTO category (name, description, sort_order, status, item_count) VALUES
			('tech', 'Technology ETFs', 2, 1, 2),
			('energy', NULL, 5, 1, 1),
			('legacy', 'Retired', 9, 0, 0);
	`)
	require.NoError(t, err)

	return db
}

func TestInstrumentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInstrumentRepository(db, zerolog.Nop())

	t.Run("FindByCode", func(t *testing.T) {
		inst, err := repo.FindByCode("A1")
		require.NoError(t, err)
		require.NotNil(t, inst)
		assert.Equal(t, "Alpha", inst.Name)
		assert.Equal(t, "tech", inst.Sector)

		missing, err := repo.FindByCode("nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("FindBySector", func(t *testing.T) {
		instruments, err := repo.FindBySector("tech")
		require.NoError(t, err)
		require.Len(t, instruments, 2)
		assert.Equal(t, "A1", instruments[0].Code)
	})

	t.Run("FindBySectors batches unknown names away", func(t *testing.T) {
		instruments, err := repo.FindBySectors([]string{"tech", "energy", "ghost"})
		require.NoError(t, err)
		assert.Len(t, instruments, 3)

		none, err := repo.FindBySectors(nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("FindAll", func(t *testing.T) {
		instruments, err := repo.FindAll()
		require.NoError(t, err)
		assert.Len(t, instruments, 4)
	})
}

func TestSectorRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSectorRepository(db, zerolog.Nop())

	t.Run("FindByName", func(t *testing.T) {
		sector, err := repo.FindByName("tech")
		require.NoError(t, err)
		require.NotNil(t, sector)
		assert.Equal(t, "Technology ETFs", sector.Description)
		assert.True(t, sector.Active)

		missing, err := repo.FindByName("ghost")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("FindByNames handles null descriptions", func(t *testing.T) {
		sectors, err := repo.FindByNames([]string{"tech", "energy"})
		require.NoError(t, err)
		require.Len(t, sectors, 2)
	})

	t.Run("FindAllActive filters and orders", func(t *testing.T) {
		sectors, err := repo.FindAllActive()
		require.NoError(t, err)
		require.Len(t, sectors, 2)
		// Higher sort_order first, suspended category excluded.
		assert.Equal(t, "energy", sectors[0].Name)
		assert.Equal(t, "tech", sectors[1].Name)
	})
}
