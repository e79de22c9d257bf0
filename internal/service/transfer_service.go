// internal/service/transfer_service.go
package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/util"
)

// feeRate is the flat 0.2% fee applied to sends. The fee is recorded on
// the transaction but only the sent amount is debited from the balance;
// sufficiency is likewise checked against the amount alone. That is the
// product's ledger policy, preserved as-is.
var feeRate = decimal.RequireFromString("0.002")

// TransferService defines the interface for balance-changing operations.
// Each operation applies the balance update and the log append as one
// uninterrupted unit.
type TransferService interface {
	Deposit(username, asset string, amount decimal.Decimal) (domain.Holdings, *domain.TransactionRecord, error)
	Send(username, asset string, amount decimal.Decimal, recipient string) (domain.Holdings, *domain.TransactionRecord, error)
	PreviewSend(username, asset string, amount decimal.Decimal) (*SendPreview, error)
}

// SendPreview is the fee/total/remaining projection shown before a send is
// submitted. It does not touch the ledger.
type SendPreview struct {
	Fee        decimal.Decimal `json:"fee"`
	Total      decimal.Decimal `json:"total"`
	Remaining  decimal.Decimal `json:"remaining"`
	Sufficient bool            `json:"sufficient"`
}

// transferService implements the TransferService interface.
type transferService struct {
	mu         sync.Mutex
	ledgerRepo repository.LedgerRepository
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(ledgerRepo repository.LedgerRepository) TransferService {
	return &transferService{ledgerRepo: ledgerRepo}
}

// Deposit credits amount of asset to username's holdings and appends the
// matching DEPOSIT record.
func (s *transferService) Deposit(username, asset string, amount decimal.Decimal) (domain.Holdings, *domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}
	if !domain.IsCatalogSymbol(asset) {
		return nil, nil, util.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.ledgerRepo.HoldingsFor(username)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to load holdings: %w", err)
	}

	holdings[asset] = domain.Round8(holdings.Balance(asset).Add(amount))
	if err := s.ledgerRepo.SaveHoldings(username, holdings); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to save holdings: %w", err)
	}

	record := domain.NewDepositRecord(amount, asset)
	if err := s.ledgerRepo.AppendTransaction(username, record); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to append transaction: %w", err)
	}

	return holdings, &record, nil
}

// Send debits amount of asset from username's holdings in favor of
// recipient and appends the matching SEND record. The 0.2% fee is computed
// into the record; see feeRate for the debit policy.
func (s *transferService) Send(username, asset string, amount decimal.Decimal, recipient string) (domain.Holdings, *domain.TransactionRecord, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}
	if !domain.IsCatalogSymbol(asset) {
		return nil, nil, util.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.ledgerRepo.HoldingsFor(username)
	if err != nil {
		return nil, nil, fmt.Errorf("send: failed to load holdings: %w", err)
	}

	balance := holdings.Balance(asset)
	if amount.GreaterThan(balance) {
		return nil, nil, util.ErrInsufficientBalance
	}

	fee := amount.Mul(feeRate)

	holdings[asset] = domain.Round8(balance.Sub(amount))
	if err := s.ledgerRepo.SaveHoldings(username, holdings); err != nil {
		return nil, nil, fmt.Errorf("send: failed to save holdings: %w", err)
	}

	record := domain.NewSendRecord(recipient, amount, asset, fee)
	if err := s.ledgerRepo.AppendTransaction(username, record); err != nil {
		return nil, nil, fmt.Errorf("send: failed to append transaction: %w", err)
	}

	return holdings, &record, nil
}

// PreviewSend projects fee, total and remaining balance for a prospective
// send without mutating anything.
func (s *transferService) PreviewSend(username, asset string, amount decimal.Decimal) (*SendPreview, error) {
	if !domain.IsCatalogSymbol(asset) {
		return nil, util.ErrInvalidInput
	}
	holdings, err := s.ledgerRepo.HoldingsFor(username)
	if err != nil {
		return nil, fmt.Errorf("preview send: failed to load holdings: %w", err)
	}

	fee := decimal.Zero
	if amount.GreaterThan(decimal.Zero) {
		fee = amount.Mul(feeRate)
	}
	balance := holdings.Balance(asset)
	return &SendPreview{
		Fee:        fee,
		Total:      amount.Add(fee),
		Remaining:  balance.Sub(amount),
		Sufficient: amount.GreaterThan(decimal.Zero) && amount.LessThanOrEqual(balance),
	}, nil
}
