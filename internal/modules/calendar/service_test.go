package calendar

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE calendar (
			Day TEXT PRIMARY KEY,
			IsTradingDay INTEGER NOT NULL DEFAULT 0,
			IsWorkingDay INTEGER NOT NULL DEFAULT 0,
			Comments TEXT
		)
	`)
	require.NoError(t, err)

	return db
}

func insertDay(t *testing.T, db *sql.DB, day string, trading bool) {
	tradingInt := 0
	if trading {
		tradingInt = 1
	}
	_, err := db.Exec(
		"INSERT INTO calendar (Day, IsTradingDay, IsWorkingDay) VALUES (?, ?, ?)",
		day, tradingInt, tradingInt,
	)
	require.NoError(t, err)
}

func newTestService(t *testing.T, db *sql.DB) *Service {
	repo := NewRepository(db, zerolog.Nop())
	return NewService(repo, zerolog.Nop())
}

func TestResolveWindow(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(t, db)

	// A business week: Mon-Fri trading, Sat-Sun not.
	insertDay(t, db, "20240603", true)
	insertDay(t, db, "20240604", true)
	insertDay(t, db, "20240605", true)
	insertDay(t, db, "20240606", true)
	insertDay(t, db, "20240607", true)
	insertDay(t, db, "20240608", false)
	insertDay(t, db, "20240609", false)

	t.Run("returns window ending on a trading day", func(t *testing.T) {
		days, err := service.ResolveWindow("2024-06-07", 3)
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "20240605", days[0].Day)
		assert.Equal(t, "20240606", days[1].Day)
		assert.Equal(t, "20240607", days[2].Day)
	})

	t.Run("falls back to previous trading day on non-trading dates", func(t *testing.T) {
		days, err := service.ResolveWindow("2024-06-09", 2)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "20240607", days[1].Day)
	})

	t.Run("unknown date is not found", func(t *testing.T) {
		_, err := service.ResolveWindow("2030-01-01", 2)
		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.StatusCode)
	})

	t.Run("no trading day before the window start", func(t *testing.T) {
		insertDay(t, db, "20240505", false)
		_, err := service.ResolveWindow("2024-05-05", 2)
		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.StatusCode)
	})

	t.Run("too few trading days is insufficient data", func(t *testing.T) {
		_, err := service.ResolveWindow("2024-06-07", 10)
		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 422, apiErr.StatusCode)
	})
}

func TestPreviousTradingDays(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(t, db)

	insertDay(t, db, "20240604", true)
	insertDay(t, db, "20240605", true)
	insertDay(t, db, "20240606", true)

	t.Run("resolves and formats the window", func(t *testing.T) {
		resp, err := service.PreviousTradingDays("2024-06-06", 2)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-05", resp.StartDate)
		assert.Equal(t, "2024-06-06", resp.EndDate)
		assert.Equal(t, 2, resp.TradingDaysCount)
		assert.Equal(t, []string{"2024-06-05", "2024-06-06"}, resp.TradingDays)
		assert.Equal(t, TradingDaysRequest{Date: "2024-06-06", N: 2}, resp.OriginalInput)
	})

	t.Run("returns exactly n days", func(t *testing.T) {
		resp, err := service.PreviousTradingDays("2024-06-06", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TradingDaysCount)
		assert.Equal(t, []string{"2024-06-04", "2024-06-05", "2024-06-06"}, resp.TradingDays)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := service.PreviousTradingDays("06/06/2024", 2)
		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("rejects non-positive n", func(t *testing.T) {
		_, err := service.PreviousTradingDays("2024-06-06", 0)
		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 400, apiErr.StatusCode)
	})
}

func TestDateFormatting(t *testing.T) {
	assert.Equal(t, "2024-06-06", FormatISO("20240606"))
	assert.Equal(t, "2024-06-06", FormatISO("2024-06-06"))
	assert.Equal(t, "20240606", FormatCompact("2024-06-06"))
	assert.Equal(t, "20240606", FormatCompact("20240606"))
}
