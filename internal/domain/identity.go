// internal/domain/identity.go
package domain

import "time"

// Identity is the single stored account credential. The password is kept
// only as a SHA-256 hex digest; plaintext is never persisted.
type Identity struct {
	Username string `json:"username"`
	PassHash string `json:"passHash"`
}

// Session points at the currently authenticated identity. At most one
// session exists. Ts is milliseconds since epoch.
type Session struct {
	Username string `json:"username"`
	Ts       int64  `json:"ts"`
}

// NewSession creates a session for username established now.
func NewSession(username string) *Session {
	return &Session{
		Username: username,
		Ts:       time.Now().UTC().UnixMilli(),
	}
}

// EstablishedAt returns the session creation time.
func (s *Session) EstablishedAt() time.Time {
	return time.UnixMilli(s.Ts).UTC()
}
