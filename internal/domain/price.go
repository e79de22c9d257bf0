// internal/domain/price.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetQuote is the feed's view of one asset: unit price in the quote
// currency and percentage change over the last 24 hours.
type AssetQuote struct {
	UnitPrice decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
}

// PriceSnapshot is the latest successful fetch from the market-data feed,
// keyed by asset ID (not symbol). It acts as a cache: a newer successful
// fetch replaces it wholesale, a failed fetch leaves it untouched.
type PriceSnapshot struct {
	Quotes    map[string]AssetQuote `json:"quotes"`
	FetchedAt time.Time             `json:"fetchedAt"`
}

// Quote returns the quote for the given asset ID. Assets missing from the
// snapshot read as zero price and zero change, so valuation never fails on
// a partial snapshot.
func (s *PriceSnapshot) Quote(assetID string) AssetQuote {
	if s == nil {
		return AssetQuote{UnitPrice: decimal.Zero, Change24h: decimal.Zero}
	}
	if q, ok := s.Quotes[assetID]; ok {
		return q
	}
	return AssetQuote{UnitPrice: decimal.Zero, Change24h: decimal.Zero}
}
