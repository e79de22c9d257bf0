// internal/repository/identity_repo.go
package repository

import "chainpilot-wallet/internal/domain"

// IdentityRepository defines the interface for credential and session
// persistence. The system holds at most one identity and one session.
type IdentityRepository interface {
	// GetIdentity returns the stored identity, or util.ErrNotFound if no
	// account has been registered.
	GetIdentity() (*domain.Identity, error)
	// SaveIdentity stores the identity, replacing any previous one.
	SaveIdentity(identity *domain.Identity) error
	// GetSession returns the current session, or util.ErrNotFound if no
	// session is established.
	GetSession() (*domain.Session, error)
	// SaveSession stores the session, replacing any previous one.
	SaveSession(session *domain.Session) error
	// ClearSession removes the current session, if any.
	ClearSession() error
}
