// internal/domain/holdings.go
package domain

import "github.com/shopspring/decimal"

// Holdings maps an asset symbol to its balance. Every balance is >= 0 at
// all times; symbols absent from the map read as zero.
type Holdings map[string]decimal.Decimal

// NewHoldings creates a holdings map zero-seeded with the full catalog.
func NewHoldings() Holdings {
	h := make(Holdings, len(catalog))
	for _, a := range catalog {
		h[a.Symbol] = decimal.Zero
	}
	return h
}

// Balance returns the balance for symbol, zero if the symbol is unknown.
func (h Holdings) Balance(symbol string) decimal.Decimal {
	if b, ok := h[symbol]; ok {
		return b
	}
	return decimal.Zero
}

// IsEmpty reports whether every balance is zero.
func (h Holdings) IsEmpty() bool {
	for _, b := range h {
		if !b.IsZero() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the holdings map.
func (h Holdings) Clone() Holdings {
	c := make(Holdings, len(h))
	for sym, b := range h {
		c[sym] = b
	}
	return c
}

// Round8 rounds d to 8 decimal places, the precision every persisted
// balance is held at after a mutation.
func Round8(d decimal.Decimal) decimal.Decimal {
	return d.Round(8)
}
