// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of a ledger transaction.
type TransactionType string

const (
	TransactionTypeSend    TransactionType = "SEND"
	TransactionTypeDeposit TransactionType = "DEPOSIT"
)

// DepositCounterparty is the sentinel stored in the To field of deposit
// records.
const DepositCounterparty = "DEPOSIT"

// TransactionRecord is one immutable entry of a user's transaction log.
// Ts is milliseconds since epoch. Total is always Amount + Fee.
type TransactionRecord struct {
	Ts     int64           `json:"ts"`
	To     string          `json:"to"` // recipient, or the DEPOSIT sentinel
	Amount decimal.Decimal `json:"amount"`
	Asset  string          `json:"asset"`
	Fee    decimal.Decimal `json:"fee"`
	Total  decimal.Decimal `json:"total"`
	Type   TransactionType `json:"type"`
}

// NewSendRecord creates a SEND transaction record timestamped now.
func NewSendRecord(recipient string, amount decimal.Decimal, asset string, fee decimal.Decimal) TransactionRecord {
	return TransactionRecord{
		Ts:     time.Now().UTC().UnixMilli(),
		To:     recipient,
		Amount: amount,
		Asset:  asset,
		Fee:    fee,
		Total:  amount.Add(fee),
		Type:   TransactionTypeSend,
	}
}

// NewDepositRecord creates a DEPOSIT transaction record timestamped now.
// Deposits carry no fee, so Total equals Amount.
func NewDepositRecord(amount decimal.Decimal, asset string) TransactionRecord {
	return TransactionRecord{
		Ts:     time.Now().UTC().UnixMilli(),
		To:     DepositCounterparty,
		Amount: amount,
		Asset:  asset,
		Fee:    decimal.Zero,
		Total:  amount,
		Type:   TransactionTypeDeposit,
	}
}

// Time returns the record timestamp.
func (t TransactionRecord) Time() time.Time {
	return time.UnixMilli(t.Ts).UTC()
}
