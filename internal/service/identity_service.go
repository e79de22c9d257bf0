// internal/service/identity_service.go
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/util"
)

// IdentityService defines the interface for account and session logic.
// The system stores exactly one account: registering again replaces it.
type IdentityService interface {
	Register(username, password string) (*domain.Identity, error)
	Authenticate(username, password string) (*domain.Session, error)
	ChangePassword(currentPassword, newPassword string) error
	CurrentSession() (*domain.Session, error)
	Logout() error
	IsAuthenticated() (bool, error)
}

// identityService implements the IdentityService interface.
type identityService struct {
	identityRepo repository.IdentityRepository
	ledgerRepo   repository.LedgerRepository
}

// NewIdentityService creates a new instance of IdentityService.
func NewIdentityService(identityRepo repository.IdentityRepository, ledgerRepo repository.LedgerRepository) IdentityService {
	return &identityService{
		identityRepo: identityRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// hashPassword returns the SHA-256 hex digest of password. This is the
// stored credential format; plaintext never reaches the store.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates the account, replacing any previously stored one, and
// establishes a session. The user's zero-balance holdings are seeded right
// away so the first overview render has stable data.
func (s *identityService) Register(username, password string) (*domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, util.ErrValidation
	}

	identity := &domain.Identity{
		Username: username,
		PassHash: hashPassword(password),
	}
	if err := s.identityRepo.SaveIdentity(identity); err != nil {
		return nil, fmt.Errorf("register: failed to save identity: %w", err)
	}
	if err := s.identityRepo.SaveSession(domain.NewSession(username)); err != nil {
		return nil, fmt.Errorf("register: failed to establish session: %w", err)
	}
	if _, err := s.ledgerRepo.HoldingsFor(username); err != nil {
		return nil, fmt.Errorf("register: failed to seed holdings: %w", err)
	}
	return identity, nil
}

// Authenticate verifies the credentials against the stored identity and
// establishes a session on success.
func (s *identityService) Authenticate(username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	identity, err := s.identityRepo.GetIdentity()
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNoAccount
		}
		return nil, fmt.Errorf("authenticate: failed to load identity: %w", err)
	}
	if identity.Username != username || identity.PassHash != hashPassword(password) {
		return nil, util.ErrInvalidCredentials
	}

	session := domain.NewSession(username)
	if err := s.identityRepo.SaveSession(session); err != nil {
		return nil, fmt.Errorf("authenticate: failed to establish session: %w", err)
	}
	return session, nil
}

// ChangePassword replaces the stored digest after verifying the current
// password. Confirmation matching is the caller's concern.
func (s *identityService) ChangePassword(currentPassword, newPassword string) error {
	if newPassword == "" {
		return util.ErrValidation
	}
	identity, err := s.identityRepo.GetIdentity()
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrNoAccount
		}
		return fmt.Errorf("change password: failed to load identity: %w", err)
	}
	if identity.PassHash != hashPassword(currentPassword) {
		return util.ErrInvalidCredentials
	}
	identity.PassHash = hashPassword(newPassword)
	if err := s.identityRepo.SaveIdentity(identity); err != nil {
		return fmt.Errorf("change password: failed to save identity: %w", err)
	}
	return nil
}

// CurrentSession returns the established session, or util.ErrNotFound.
func (s *identityService) CurrentSession() (*domain.Session, error) {
	return s.identityRepo.GetSession()
}

// Logout clears the session. Logging out without a session is a no-op.
func (s *identityService) Logout() error {
	return s.identityRepo.ClearSession()
}

// IsAuthenticated reports whether a session exists whose username matches
// the stored identity. A session left behind by a replaced identity does
// not count.
func (s *identityService) IsAuthenticated() (bool, error) {
	session, err := s.identityRepo.GetSession()
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("is authenticated: failed to load session: %w", err)
	}
	identity, err := s.identityRepo.GetIdentity()
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("is authenticated: failed to load identity: %w", err)
	}
	return session.Username == identity.Username, nil
}

// PasswordStrength scores a candidate password 0..100 for display. The
// score is cosmetic and grants nothing.
func PasswordStrength(password string) int {
	score := 0
	if len(password) > 7 {
		score += 20
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}
	if hasUpper {
		score += 20
	}
	if hasDigit {
		score += 20
	}
	if hasSymbol {
		score += 20
	}
	if len(password) > 12 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
