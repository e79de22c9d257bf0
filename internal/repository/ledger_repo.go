// internal/repository/ledger_repo.go
package repository

import "chainpilot-wallet/internal/domain"

// LedgerRepository defines the interface for per-user balance and
// transaction-log persistence.
type LedgerRepository interface {
	// HoldingsFor returns username's holdings map. On first access it
	// initializes a zero-balance map seeded with the catalog symbols and
	// persists it immediately, so subsequent reads are stable.
	HoldingsFor(username string) (domain.Holdings, error)
	// SaveHoldings stores username's holdings map.
	SaveHoldings(username string, holdings domain.Holdings) error
	// TransactionsFor returns username's transaction log, newest first.
	// An empty log is not an error.
	TransactionsFor(username string) ([]domain.TransactionRecord, error)
	// AppendTransaction prepends record to username's transaction log.
	AppendTransaction(username string, record domain.TransactionRecord) error
	// MigrateLegacyHoldings rewrites the pre-multi-user holdings record in
	// place if it still carries a retired asset symbol. Best-effort.
	MigrateLegacyHoldings() error
}
