package nav

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
		CREATE TABLE etf_netasset (
			ths_code TEXT NOT NULL,
			time TEXT NOT NULL,
			net_asset_value REAL,
			adjusted_nav REAL,
			accumulated_nav REAL,
			premium REAL,
			premium_ratio REAL,
			PRIMARY KEY (ths_code, time)
		);

		INSERT INTO etf_netasset (ths_code, time, net_asset_value, adjusted_nav) VALUES
			('A1', '2024-06-06', 1.0, 1.0),
			('A1', '2024-06-07', 1.05, 1.05),
			('B1', '2024-06-06', 2.0, 2.0);
	`)
	require.NoError(t, err)

	return db
}

func TestFindByCodeAndDate(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	rec, err := repo.FindByCodeAndDate("A1", "2024-06-07")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1.05, rec.AdjustedNav)
	assert.Equal(t, "2024-06-07", rec.Date)

	missing, err := repo.FindByCodeAndDate("A1", "2024-06-08")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByCodesAndDate(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	records, err := repo.FindByCodesAndDate([]string{"A1", "B1", "ZZ"}, "2024-06-06")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	none, err := repo.FindByCodesAndDate(nil, "2024-06-06")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByCodesAndDates(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	records, err := repo.FindByCodesAndDates(
		[]string{"A1", "B1"},
		[]string{"2024-06-06", "2024-06-07"},
	)
	require.NoError(t, err)
	// B1 has no 06-07 row; only the stored records come back.
	assert.Len(t, records, 3)
}

func TestNullColumnsScanAsZero(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(
		"INSERT INTO etf_netasset (ths_code, time) VALUES ('C1', '2024-06-06')")
	require.NoError(t, err)

	repo := NewRepository(db, zerolog.Nop())
	rec, err := repo.FindByCodeAndDate("C1", "2024-06-06")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Zero(t, rec.AdjustedNav)
	assert.Zero(t, rec.Premium)
}
