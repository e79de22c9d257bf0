// internal/repository/kvstore/price_kv.go
package kvstore

import (
	"encoding/json"
	"fmt"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/util"
	"chainpilot-wallet/pkg/kv"
)

// PriceRepository implements repository.PriceRepository over a kv.Store
// namespace.
type PriceRepository struct {
	store kv.Store
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(store kv.Store) repository.PriceRepository {
	return &PriceRepository{store: store}
}

func (r *PriceRepository) GetSnapshot() (*domain.PriceSnapshot, error) {
	raw, ok, err := r.store.Get(repository.KeySnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to read price snapshot: %w", err)
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	var snapshot domain.PriceSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode price snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *PriceRepository) SaveSnapshot(snapshot *domain.PriceSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode price snapshot: %w", err)
	}
	if err := r.store.Set(repository.KeySnapshot, string(raw)); err != nil {
		return fmt.Errorf("failed to write price snapshot: %w", err)
	}
	return nil
}
