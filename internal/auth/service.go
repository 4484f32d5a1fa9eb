package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
)

// Revocations records logged out token ids until they would have expired anyway.
type Revocations interface {
	Revoke(tokenID string, ttl time.Duration) error
	IsRevoked(tokenID string) (bool, error)
}

// Service provides authentication functionality.
type Service struct {
	db          *gorm.DB
	local       *LocalProvider
	tokens      *Tokens
	revocations Revocations
	now         func() time.Time
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, tokens *Tokens, revocations Revocations) *Service {
	return &Service{
		db:          db,
		local:       NewLocalProvider(db),
		tokens:      tokens,
		revocations: revocations,
		now:         time.Now,
	}
}

// Register creates a local account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.local.CreateUser(ctx, in)
}

// Login checks local credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.local.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return s.IssueFor(user)
}

// IssueFor issues an access token for an already authenticated user.
func (s *Service) IssueFor(user *models.User) (*LoginResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
		User:        user,
	}, nil
}

// Authenticate validates a raw access token and loads its active user.
func (s *Service) Authenticate(ctx context.Context, raw string) (*models.User, *Claims, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := s.revocations.IsRevoked(claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
	}

	if revoked {
		return nil, nil, ErrTokenRevoked
	}

	userID, _ := claims.UserID()

	var user models.User

	err = s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUserNotFound
	}

	if err != nil {
		return nil, nil, err
	}

	if !user.Active {
		return nil, nil, ErrUserAccountDisabled
	}

	return &user, claims, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *Service) Logout(claims *Claims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}

	if ttl <= 0 {
		return nil
	}

	return s.revocations.Revoke(claims.ID, ttl)
}

// Me returns the user with userID.
func (s *Service) Me(ctx context.Context, userID uint64) (*models.User, error) {
	return s.local.GetUserByID(ctx, userID)
}
