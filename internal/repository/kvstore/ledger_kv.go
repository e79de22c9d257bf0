// internal/repository/kvstore/ledger_kv.go
package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/pkg/kv"
)

// retiredSymbol and its replacement drive the one-time legacy holdings
// migration. Pre-multi-user installs tracked USDT instead of SOL.
const (
	retiredSymbol     = "USDT"
	replacementSymbol = "SOL"
)

// LedgerRepository implements repository.LedgerRepository over a kv.Store
// namespace. Holdings are one JSON object per user, the transaction log is
// one JSON array per user with the newest record first.
type LedgerRepository struct {
	store kv.Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store kv.Store) repository.LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) HoldingsFor(username string) (domain.Holdings, error) {
	key := repository.HoldingsKey(username)
	raw, ok, err := r.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings for %q: %w", username, err)
	}
	if !ok {
		// First access: seed zero balances and persist right away so
		// subsequent reads are stable.
		holdings := domain.NewHoldings()
		if err := r.SaveHoldings(username, holdings); err != nil {
			return nil, err
		}
		return holdings, nil
	}
	var holdings domain.Holdings
	if err := json.Unmarshal([]byte(raw), &holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings for %q: %w", username, err)
	}
	return holdings, nil
}

func (r *LedgerRepository) SaveHoldings(username string, holdings domain.Holdings) error {
	raw, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings for %q: %w", username, err)
	}
	if err := r.store.Set(repository.HoldingsKey(username), string(raw)); err != nil {
		return fmt.Errorf("failed to write holdings for %q: %w", username, err)
	}
	return nil
}

func (r *LedgerRepository) TransactionsFor(username string) ([]domain.TransactionRecord, error) {
	raw, ok, err := r.store.Get(repository.TransactionsKey(username))
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions for %q: %w", username, err)
	}
	if !ok {
		return []domain.TransactionRecord{}, nil
	}
	var records []domain.TransactionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to decode transactions for %q: %w", username, err)
	}
	return records, nil
}

func (r *LedgerRepository) AppendTransaction(username string, record domain.TransactionRecord) error {
	records, err := r.TransactionsFor(username)
	if err != nil {
		return err
	}
	// Newest first.
	records = append([]domain.TransactionRecord{record}, records...)
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode transactions for %q: %w", username, err)
	}
	if err := r.store.Set(repository.TransactionsKey(username), string(raw)); err != nil {
		return fmt.Errorf("failed to write transactions for %q: %w", username, err)
	}
	return nil
}

func (r *LedgerRepository) MigrateLegacyHoldings() error {
	raw, ok, err := r.store.Get(repository.KeyLegacyHoldings)
	if err != nil {
		return fmt.Errorf("failed to read legacy holdings: %w", err)
	}
	if !ok {
		return nil
	}
	var holdings domain.Holdings
	if err := json.Unmarshal([]byte(raw), &holdings); err != nil {
		return fmt.Errorf("failed to decode legacy holdings: %w", err)
	}
	_, hasRetired := holdings[retiredSymbol]
	_, hasReplacement := holdings[replacementSymbol]
	if !hasRetired || hasReplacement {
		return nil
	}
	delete(holdings, retiredSymbol)
	holdings[replacementSymbol] = decimal.Zero
	out, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to encode migrated legacy holdings: %w", err)
	}
	if err := r.store.Set(repository.KeyLegacyHoldings, string(out)); err != nil {
		return fmt.Errorf("failed to rewrite legacy holdings: %w", err)
	}
	return nil
}
