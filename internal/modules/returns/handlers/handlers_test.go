package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/PersonNoName/NextPanel/internal/modules/calendar"
	"github.com/PersonNoName/NextPanel/internal/modules/catalog"
	"github.com/PersonNoName/NextPanel/internal/modules/nav"
	"github.com/PersonNoName/NextPanel/internal/modules/returns"
)

func setupRouter(t *testing.T) chi.Router {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE calendar (
			Day TEXT PRIMARY KEY,
			IsTradingDay INTEGER NOT NULL DEFAULT 0,
			IsWorkingDay INTEGER NOT NULL DEFAULT 0,
			Comments TEXT
		);
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

		INSERT INTO calendar (Day, IsTradingDay, IsWorkingDay) VALUES
			('20240606', 1, 1), ('20240607', 1, 1);
		INSERT INTO etf_info (ths_code, chinese_name, sector) VALUES
			('T1', 'Tech One', 'tech');
		INSERT INTO category (name, description, sort_order, status, item_count) VALUES
			('tech', 'Technology ETFs', 1, 1, 1);
		INSERT INTO etf_netasset (ths_code, time, net_asset_value, adjusted_nav) VALUES
			('T1', '2024-06-06', 1.0, 1.0), ('T1', '2024-06-07', 1.05, 1.05);
	`)
	require.NoError(t, err)

	log := zerolog.Nop()
	calendarService := calendar.NewService(calendar.NewRepository(db, log), log)
	service := returns.NewService(
		calendarService,
		catalog.NewInstrumentRepository(db, log),
		catalog.NewSectorRepository(db, log),
		nav.NewRepository(db, log),
		log,
	)

	router := chi.NewRouter()
	NewHandler(service, log).RegisterRoutes(router)
	return router
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandleReturnRateByCodes(t *testing.T) {
	router := setupRouter(t)

	t.Run("computes rates", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/etf/etf-return-rate",
			`{"thsCodeList": ["T1"], "startDate": "2024-06-06", "endDate": "2024-06-07"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 200, env.Code)

		var resp returns.CodesResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 1, resp.SuccessCount)
		assert.Equal(t, "5.00%", resp.Results[0].ReturnRatePercent)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/etf/etf-return-rate",
			`{"thsCodeList": ["T1"]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 400, env.Code)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPost, "/etf/etf-return-rate", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSectorHistory(t *testing.T) {
	router := setupRouter(t)

	t.Run("returns history", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet,
			"/etf/sector-return-history?sector=tech&date=2024-06-07&n=1", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp returns.HistoryResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "tech", resp.Sector)
		assert.Equal(t, 1, resp.ActualCount)
	})

	t.Run("requires sector and date", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/etf/sector-return-history?date=2024-06-07", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = doRequest(t, router, http.MethodGet, "/etf/sector-return-history?sector=tech", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet,
			"/etf/sector-return-history?sector=tech&date=06/07/2024", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleBatchHistory(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodGet,
		"/etf/sectors/batch?sectors=tech,ghost&date=2024-06-07&n=1&includeTiming=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp returns.BatchHistoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 2, resp.SectorsCount)
	assert.Empty(t, resp.Results["tech"].Error)
	assert.NotEmpty(t, resp.Results["ghost"].Error)
	require.NotNil(t, resp.Performance)
	assert.Len(t, resp.Performance.DetailedTiming, 4)
}

func TestHandleAvailableSectors(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/etf/available-sectors", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp returns.SectorListResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "tech", resp.Sectors[0].Sector)
}
