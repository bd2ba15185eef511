package auth

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

// Service implements account registration and login.
type Service struct {
	repo       *Repository
	tokens     *TokenIssuer
	bcryptCost int
	log        zerolog.Logger
}

// NewService creates an auth service.
func NewService(repo *Repository, tokens *TokenIssuer, bcryptCost int, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new account. Username and email must be unused.
func (s *Service) Register(req *RegisterRequest) (*UserInfo, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	taken, err := s.repo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("username already taken: %s", username)
	}
	taken, err = s.repo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("email already registered: %s", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id, err := s.repo.Create(&User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Str("username", username).Msg("User registered")
	return &UserInfo{ID: id, Username: username, Email: email}, nil
}

// Login authenticates by username or email and issues a token.
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByUsernameOrEmail(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %s", req.Username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User logged in")
	return &LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// CurrentUser returns the account for an authenticated user id.
func (s *Service) CurrentUser(userID int64) (*UserInfo, error) {
	if userID <= 0 {
		return nil, apperrors.BadRequest("invalid user id: %d", userID)
	}
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %d", userID)
	}
	return &UserInfo{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}
