// internal/repository/price_repo.go
package repository

import "chainpilot-wallet/internal/domain"

// PriceRepository defines the interface for the persisted last-known price
// snapshot. The snapshot is global, shared read-only by all valuations.
type PriceRepository interface {
	// GetSnapshot returns the persisted snapshot, or util.ErrNotFound if
	// no fetch has ever succeeded.
	GetSnapshot() (*domain.PriceSnapshot, error)
	// SaveSnapshot stores the snapshot, replacing any previous one.
	SaveSnapshot(snapshot *domain.PriceSnapshot) error
}
