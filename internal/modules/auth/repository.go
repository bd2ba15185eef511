package auth

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

const userColumns = "id, username, email, password, created_at, updated_at"

// Repository provides access to stored accounts.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new account repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "auth").Logger(),
	}
}

// ExistsByUsername reports whether an account with the username exists.
func (r *Repository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username", username)
}

// ExistsByEmail reports whether an account with the email exists.
func (r *Repository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email", email)
}

func (r *Repository) exists(column, value string) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(1) FROM user_info WHERE %s = ?", column)
	var count int
	if err := r.db.QueryRow(query, value).Scan(&count); err != nil {
		return false, fmt.Errorf("checking %s: %w", column, err)
	}
	return count > 0, nil
}

// FindByUsernameOrEmail returns the account matching the given value as
// either username or email, or nil when none matches.
func (r *Repository) FindByUsernameOrEmail(account string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM user_info WHERE username = ? OR email = ?", userColumns)
	user, err := scanUser(r.db.QueryRow(query, account, account))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by account: %w", err)
	}
	return user, nil
}

// FindByID returns the account with the given id, or nil when absent.
func (r *Repository) FindByID(id int64) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM user_info WHERE id = ?", userColumns)
	user, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by id: %w", err)
	}
	return user, nil
}

// Create inserts a new account and returns its id.
func (r *Repository) Create(user *User) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO user_info (username, email, password, created_at, updated_at)
		VALUES (?, ?, ?, datetime('now'), datetime('now'))
	`, user.Username, user.Email, user.Password)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new user id: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return &u, nil
}
