// internal/repository/kvstore/identity_kv.go
package kvstore

import (
	"encoding/json"
	"fmt"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/util"
	"chainpilot-wallet/pkg/kv"
)

// IdentityRepository implements repository.IdentityRepository over a
// kv.Store namespace.
type IdentityRepository struct {
	store kv.Store
}

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository(store kv.Store) repository.IdentityRepository {
	return &IdentityRepository{store: store}
}

func (r *IdentityRepository) GetIdentity() (*domain.Identity, error) {
	raw, ok, err := r.store.Get(repository.KeyIdentity)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity: %w", err)
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity record: %w", err)
	}
	return &identity, nil
}

func (r *IdentityRepository) SaveIdentity(identity *domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity record: %w", err)
	}
	if err := r.store.Set(repository.KeyIdentity, string(raw)); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) GetSession() (*domain.Session, error) {
	raw, ok, err := r.store.Get(repository.KeySession)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	return &session, nil
}

func (r *IdentityRepository) SaveSession(session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	if err := r.store.Set(repository.KeySession, string(raw)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (r *IdentityRepository) ClearSession() error {
	if err := r.store.Delete(repository.KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
