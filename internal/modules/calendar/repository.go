package calendar

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository handles trading-calendar database operations.
// The calendar is immutable reference data; the repository only reads.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new calendar repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "calendar").Logger(),
	}
}

// FindByDay returns the calendar row for an exact compact date, or nil if the
// date is not in the loaded calendar range.
func (r *Repository) FindByDay(day string) (*TradingDay, error) {
	query := `SELECT Day, IsTradingDay, IsWorkingDay, Comments FROM calendar WHERE Day = ?`

	row := r.db.QueryRow(query, day)
	td, err := scanTradingDay(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query calendar day %s: %w", day, err)
	}

	return td, nil
}

// FindPreviousTradingDay returns the nearest trading day strictly before the
// given compact date, or nil if the calendar has none.
func (r *Repository) FindPreviousTradingDay(day string) (*TradingDay, error) {
	query := `SELECT Day, IsTradingDay, IsWorkingDay, Comments FROM calendar
		WHERE Day < ? AND IsTradingDay = 1
		ORDER BY Day DESC LIMIT 1`

	row := r.db.QueryRow(query, day)
	td, err := scanTradingDay(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query previous trading day before %s: %w", day, err)
	}

	return td, nil
}

// FindPreviousNTradingDays returns up to limit trading days at or before the
// given compact date, ordered descending by date.
func (r *Repository) FindPreviousNTradingDays(day string, limit int) ([]TradingDay, error) {
	query := `SELECT Day, IsTradingDay, IsWorkingDay, Comments FROM calendar
		WHERE Day <= ? AND IsTradingDay = 1
		ORDER BY Day DESC LIMIT ?`

	rows, err := r.db.Query(query, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query previous %d trading days: %w", limit, err)
	}
	defer rows.Close()

	var days []TradingDay
	for rows.Next() {
		var td TradingDay
		var comments sql.NullString
		if err := rows.Scan(&td.Day, &td.IsTradingDay, &td.IsWorkingDay, &comments); err != nil {
			return nil, fmt.Errorf("failed to scan trading day: %w", err)
		}
		if comments.Valid {
			td.Comments = comments.String
		}
		days = append(days, td)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trading days: %w", err)
	}

	return days, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTradingDay(row rowScanner) (*TradingDay, error) {
	var td TradingDay
	var comments sql.NullString

	if err := row.Scan(&td.Day, &td.IsTradingDay, &td.IsWorkingDay, &comments); err != nil {
		return nil, err
	}
	if comments.Valid {
		td.Comments = comments.String
	}

	return &td, nil
}
