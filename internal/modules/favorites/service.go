package favorites

import (
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

// Service implements the bookmark operations for authenticated users.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a bookmark service.
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "favorites").Logger(),
	}
}

// List returns the user's bookmarks.
func (s *Service) List(userID int64) (*ListResponse, error) {
	favorites, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Total: len(favorites), Favorites: favorites}, nil
}

// Add bookmarks a sector for the user. Bookmarking the same sector
// twice is an error.
func (s *Service) Add(userID, cid int64) error {
	if cid <= 0 {
		return apperrors.BadRequest("cid must be positive, got: %d", cid)
	}

	inserted, err := s.repo.Add(userID, cid)
	if err != nil {
		return err
	}
	if !inserted {
		return apperrors.BadRequest("sector already bookmarked")
	}
	s.log.Info().Int64("user_id", userID).Int64("cid", cid).Msg("Bookmark added")
	return nil
}

// Remove deletes a user's bookmark.
func (s *Service) Remove(userID, cid int64) error {
	affected, err := s.repo.Remove(userID, cid)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.BadRequest("bookmark not found")
	}
	s.log.Info().Int64("user_id", userID).Int64("cid", cid).Msg("Bookmark removed")
	return nil
}
