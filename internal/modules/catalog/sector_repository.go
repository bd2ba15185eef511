package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// SectorRepository handles sector catalog database operations
type SectorRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSectorRepository creates a new sector repository
func NewSectorRepository(db *sql.DB, log zerolog.Logger) *SectorRepository {
	return &SectorRepository{
		db:  db,
		log: log.With().Str("repo", "sector").Logger(),
	}
}

const sectorColumns = `cid, name, description, sort_order, status, item_count`

// FindByName returns the sector with the given name, or nil if absent
func (r *SectorRepository) FindByName(name string) (*Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM category WHERE name = ?`

	row := r.db.QueryRow(query, name)
	sec, err := scanSector(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query sector %s: %w", name, err)
	}

	return sec, nil
}

// FindByNames returns the sectors matching any of the given names
func (r *SectorRepository) FindByNames(names []string) ([]Sector, error) {
	if len(names) == 0 {
		return []Sector{}, nil
	}

	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + sectorColumns + ` FROM category WHERE name IN (` + placeholders + `)`

	args := make([]interface{}, len(names))
	for i, n := range names {
		args[i] = n
	}

	return r.querySectors(query, args...)
}

// FindAllActive returns every active sector ordered for display
func (r *SectorRepository) FindAllActive() ([]Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM category WHERE status = 1
		ORDER BY sort_order DESC, cid ASC`
	return r.querySectors(query)
}

func (r *SectorRepository) querySectors(query string, args ...interface{}) ([]Sector, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		sec, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, *sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sectors: %w", err)
	}

	return sectors, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSector(row rowScanner) (*Sector, error) {
	var sec Sector
	var description sql.NullString
	var status int

	if err := row.Scan(&sec.CID, &sec.Name, &description, &sec.SortOrder, &status, &sec.ItemCount); err != nil {
		return nil, err
	}
	if description.Valid {
		sec.Description = description.String
	}
	sec.Active = status == 1

	return &sec, nil
}
