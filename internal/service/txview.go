// internal/service/txview.go
package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"chainpilot-wallet/internal/domain"
)

// Sort modes accepted by SortFilterTransactions. The stored log order is
// insertion order (newest first); these are display-only views.
const (
	TxSortDateDesc   = "date-desc"
	TxSortDateAsc    = "date-asc"
	TxSortAmountDesc = "amount-desc"
	TxSortAmountAsc  = "amount-asc"
)

// SortFilterTransactions returns a derived view of records: filtered by a
// case-insensitive substring match on the counterparty, then sorted by the
// given mode. The input slice is not modified. An unknown mode keeps the
// stored order.
func SortFilterTransactions(records []domain.TransactionRecord, filter, mode string) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(filter))
	for _, rec := range records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.To), needle) {
			continue
		}
		out = append(out, rec)
	}

	switch mode {
	case TxSortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Ts < out[j].Ts })
	case TxSortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Ts > out[j].Ts })
	case TxSortAmountAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.LessThan(out[j].Amount) })
	case TxSortAmountDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	}
	return out
}

// ExportTransactions renders records as indented JSON for download.
func ExportTransactions(records []domain.TransactionRecord) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}
	return data, nil
}
