package parkapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// AuthSession is the bearer token handed to the client explicitly instead
// of being read from ambient storage. Expiry is decoded once from the
// token's payload and checked at the point of use; the backend is never
// asked to verify it.
type AuthSession struct {
	token     string
	expiresAt time.Time
}

// NewAuthSession decodes the token's embedded expiry. Tokens without a
// readable exp claim are treated as non-expiring (the backend still
// rejects them if it disagrees).
func NewAuthSession(token string) AuthSession {
	return AuthSession{
		token:     token,
		expiresAt: decodeExpiry(token),
	}
}

// Token returns the raw bearer token.
func (s AuthSession) Token() string {
	return s.token
}

// Valid reports whether the session can authenticate a request right now.
func (s AuthSession) Valid(now time.Time) bool {
	if s.token == "" {
		return false
	}
	if s.expiresAt.IsZero() {
		return true
	}
	return now.Before(s.expiresAt)
}

// decodeExpiry extracts the exp claim from a JWT-shaped token. The
// signature is not checked; only the expiry timestamp matters here.
func decodeExpiry(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}
	}

	return time.Unix(claims.Exp, 0)
}

// TokenStore persists the single token string between runs, the only
// local state this client keeps.
type TokenStore struct {
	path string
}

// NewTokenStore stores the token at the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load reads the stored token and wraps it in a session. A missing file
// yields an empty (invalid) session, not an error.
func (ts *TokenStore) Load() (AuthSession, error) {
	data, err := os.ReadFile(ts.path)
	if err != nil {
		if os.IsNotExist(err) {
			return AuthSession{}, nil
		}
		return AuthSession{}, fmt.Errorf("failed to read token file: %w", err)
	}
	return NewAuthSession(strings.TrimSpace(string(data))), nil
}

// Save writes the token, readable only by the current user.
func (ts *TokenStore) Save(token string) error {
	if err := os.WriteFile(ts.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an already absent token is
// not an error.
func (ts *TokenStore) Clear() error {
	if err := os.Remove(ts.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
