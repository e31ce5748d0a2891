package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT access token together with its registered claims.
//
// The subject claim carries the user id as a base-10 string; UserID is the
// parsed copy filled in by the issuer or the validator.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact serialized token (header.payload.signature).
	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as the owner's id.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Expiry returns the expiration time of the token or the zero time when
// the claim is absent.
func (t *Token) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// Session is what the client keeps after a successful sign-in. It is stored
// locally so that the app can restore it on the next start without a
// network round trip.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Valid reports whether the session carries a token that has not expired at now.
func (s Session) Valid(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// AuthEvent is delivered to auth state listeners.
type AuthEvent string

const (
	AuthEventSignedIn    AuthEvent = "SIGNED_IN"
	AuthEventSignedOut   AuthEvent = "SIGNED_OUT"
	AuthEventUserUpdated AuthEvent = "USER_UPDATED"
	AuthEventRestored    AuthEvent = "INITIAL_SESSION"
)
