package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// InstrumentRepository handles instrument catalog database operations
type InstrumentRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewInstrumentRepository creates a new instrument repository
func NewInstrumentRepository(db *sql.DB, log zerolog.Logger) *InstrumentRepository {
	return &InstrumentRepository{
		db:  db,
		log: log.With().Str("repo", "instrument").Logger(),
	}
}

const instrumentColumns = `ths_code, chinese_name, start_day, end_day, sector`

// FindByCode returns the instrument with the given code, or nil if absent
func (r *InstrumentRepository) FindByCode(code string) (*Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM etf_info WHERE ths_code = ?`

	var inst Instrument
	var startDay, endDay sql.NullString
	err := r.db.QueryRow(query, code).Scan(&inst.Code, &inst.Name, &startDay, &endDay, &inst.Sector)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query instrument %s: %w", code, err)
	}
	if startDay.Valid {
		inst.StartDay = startDay.String
	}
	if endDay.Valid {
		inst.EndDay = endDay.String
	}

	return &inst, nil
}

// FindAll returns every instrument in the catalog
func (r *InstrumentRepository) FindAll() ([]Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM etf_info ORDER BY ths_code`
	return r.queryInstruments(query)
}

// FindBySector returns all instruments belonging to one sector
func (r *InstrumentRepository) FindBySector(sector string) ([]Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM etf_info WHERE sector = ? ORDER BY ths_code`
	return r.queryInstruments(query, sector)
}

// FindBySectors returns all instruments belonging to any of the given sectors.
// One round-trip regardless of how many sectors are requested.
func (r *InstrumentRepository) FindBySectors(sectors []string) ([]Instrument, error) {
	if len(sectors) == 0 {
		return []Instrument{}, nil
	}

	placeholders := strings.Repeat("?,", len(sectors))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + instrumentColumns + ` FROM etf_info WHERE sector IN (` + placeholders + `) ORDER BY ths_code`

	args := make([]interface{}, len(sectors))
	for i, s := range sectors {
		args[i] = s
	}

	return r.queryInstruments(query, args...)
}

func (r *InstrumentRepository) queryInstruments(query string, args ...interface{}) ([]Instrument, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []Instrument
	for rows.Next() {
		var inst Instrument
		var startDay, endDay sql.NullString
		if err := rows.Scan(&inst.Code, &inst.Name, &startDay, &endDay, &inst.Sector); err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		if startDay.Valid {
			inst.StartDay = startDay.String
		}
		if endDay.Valid {
			inst.EndDay = endDay.String
		}
		instruments = append(instruments, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}

	return instruments, nil
}
