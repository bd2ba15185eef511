package nav

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository handles NAV record database operations.
// All multi-key lookups are single round-trips requesting every key at once.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new NAV repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "nav").Logger(),
	}
}

const navColumns = `ths_code, time, net_asset_value, adjusted_nav, accumulated_nav, premium, premium_ratio`

// FindByCodeAndDate returns the record for one (code, ISO date) pair, or nil
// if no NAV was recorded for that day.
func (r *Repository) FindByCodeAndDate(code, date string) (*Record, error) {
	query := `SELECT ` + navColumns + ` FROM etf_netasset WHERE ths_code = ? AND time = ?`

	row := r.db.QueryRow(query, code, date)
	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query NAV for %s at %s: %w", code, date, err)
	}

	return rec, nil
}

// FindByCodesAndDate returns the records for all given codes at one ISO date
func (r *Repository) FindByCodesAndDate(codes []string, date string) ([]Record, error) {
	if len(codes) == 0 {
		return []Record{}, nil
	}

	placeholders := strings.Repeat("?,", len(codes))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + navColumns + ` FROM etf_netasset
		WHERE ths_code IN (` + placeholders + `) AND time = ?`

	args := make([]interface{}, 0, len(codes)+1)
	for _, c := range codes {
		args = append(args, c)
	}
	args = append(args, date)

	return r.queryRecords(query, args...)
}

// FindByCodesAndDates returns the records for the cross product of the given
// codes and ISO dates in one round-trip.
func (r *Repository) FindByCodesAndDates(codes, dates []string) ([]Record, error) {
	if len(codes) == 0 || len(dates) == 0 {
		return []Record{}, nil
	}

	codePlaceholders := strings.Repeat("?,", len(codes))
	codePlaceholders = codePlaceholders[:len(codePlaceholders)-1]
	datePlaceholders := strings.Repeat("?,", len(dates))
	datePlaceholders = datePlaceholders[:len(datePlaceholders)-1]

	query := `SELECT ` + navColumns + ` FROM etf_netasset
		WHERE ths_code IN (` + codePlaceholders + `) AND time IN (` + datePlaceholders + `)`

	args := make([]interface{}, 0, len(codes)+len(dates))
	for _, c := range codes {
		args = append(args, c)
	}
	for _, d := range dates {
		args = append(args, d)
	}

	return r.queryRecords(query, args...)
}

func (r *Repository) queryRecords(query string, args ...interface{}) ([]Record, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query NAV records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan NAV record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating NAV records: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var netAsset, adjusted, accumulated, premium, premiumRatio sql.NullFloat64

	err := row.Scan(&rec.Code, &rec.Date, &netAsset, &adjusted, &accumulated, &premium, &premiumRatio)
	if err != nil {
		return nil, err
	}

	if netAsset.Valid {
		rec.NetAssetValue = netAsset.Float64
	}
	if adjusted.Valid {
		rec.AdjustedNav = adjusted.Float64
	}
	if accumulated.Valid {
		rec.AccumulatedNav = accumulated.Float64
	}
	if premium.Valid {
		rec.Premium = premium.Float64
	}
	if premiumRatio.Valid {
		rec.PremiumRatio = premiumRatio.Float64
	}

	return &rec, nil
}
