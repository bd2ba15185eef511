package favorites

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/database"
)

// Repository provides access to a user's sector bookmarks.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new bookmark repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "favorites").Logger(),
	}
}

// ListByUser returns the user's bookmarks joined with their category
// metadata, newest first.
func (r *Repository) ListByUser(userID int64) ([]Favorite, error) {
	rows, err := r.db.Query(`
		SELECT c.cid, c.name, c.description, uc.collect_time
		FROM user_collection uc
		JOIN category c ON c.cid = uc.cid
		WHERE uc.user_id = ?
		ORDER BY uc.collect_time DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	favorites := make([]Favorite, 0)
	for rows.Next() {
		var f Favorite
		var description sql.NullString
		if err := rows.Scan(&f.CID, &f.Name, &description, &f.CollectTime); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		f.Description = description.String
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return favorites, nil
}

// Add inserts a bookmark with the current timestamp, checking for an
// existing row in the same transaction. It reports whether a row was
// actually inserted.
func (r *Repository) Add(userID, cid int64) (bool, error) {
	inserted := false
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(
			"SELECT COUNT(1) FROM user_collection WHERE user_id = ? AND cid = ?",
			userID, cid,
		).Scan(&count); err != nil {
			return fmt.Errorf("checking bookmark: %w", err)
		}
		if count > 0 {
			return nil
		}
		if _, err := tx.Exec(`
			INSERT INTO user_collection (user_id, cid, collect_time)
			VALUES (?, ?, datetime('now'))
		`, userID, cid); err != nil {
			return fmt.Errorf("adding bookmark: %w", err)
		}
		inserted = true
		return nil
	})
	return inserted, err
}

// Remove deletes a bookmark and returns how many rows were removed.
func (r *Repository) Remove(userID, cid int64) (int64, error) {
	result, err := r.db.Exec(
		"DELETE FROM user_collection WHERE user_id = ? AND cid = ?",
		userID, cid,
	)
	if err != nil {
		return 0, fmt.Errorf("removing bookmark: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected, nil
}
