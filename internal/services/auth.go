package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"swiftmeet/internal/domain"
)

type authService struct {
	username     string
	passwordHash string
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates an AuthService for the single configured organizer account.
// An empty passwordHash disables login.
func NewAuthService(username, passwordHash string, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		username:     username,
		passwordHash: passwordHash,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Organizer, error) {
	if s.passwordHash == "" || s.tokenIssuer == nil {
		return "", nil, domain.ErrLoginDisabled
	}
	username = strings.TrimSpace(username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// The hash is compared even for an unknown username.
	passErr := s.hasher.Compare(s.passwordHash, password)
	if !userOK || passErr != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := s.tokenIssuer.Issue(s.username, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, &domain.Organizer{Username: s.username}, nil
}
