package domain

import (
	"context"
	"time"
)

// Organizer is the account allowed to publish, edit and remove events.
// swagger:model Organizer
type Organizer struct {
	Username string `json:"username"`
}

// PasswordHasher hashes and verifies organizer passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated organizer.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService exchanges organizer credentials for a bearer token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, org *Organizer, err error)
}
