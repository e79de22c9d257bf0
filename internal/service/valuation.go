// internal/service/valuation.go
package service

import (
	"github.com/shopspring/decimal"

	"chainpilot-wallet/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// AssetValuation is the derived view of one catalog asset: its quote, the
// user's balance and the resulting value and portfolio share.
type AssetValuation struct {
	Asset      domain.Asset    `json:"asset"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Change24h  decimal.Decimal `json:"change24h"`
	Balance    decimal.Decimal `json:"balance"`
	Value      decimal.Decimal `json:"value"`
	Allocation decimal.Decimal `json:"allocation"` // percent of TotalValue
}

// Valuation is the full derived portfolio view for one (holdings,
// snapshot) pair.
type Valuation struct {
	PerAsset     []AssetValuation `json:"perAsset"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	AvgChange24h decimal.Decimal  `json:"avgChange24h"`
}

// Valuate combines holdings with a price snapshot into per-asset values,
// allocation percentages and aggregates. It is pure: no side effects, and
// identical inputs produce identical outputs, so the overview can be
// re-rendered from the cached snapshot at any time.
//
// Assets missing from the snapshot value at zero with zero change rather
// than failing. AvgChange24h is the unweighted mean over the full catalog,
// regardless of each asset's share of the portfolio.
func Valuate(holdings domain.Holdings, snapshot *domain.PriceSnapshot) Valuation {
	catalog := domain.Catalog()
	perAsset := make([]AssetValuation, 0, len(catalog))

	total := decimal.Zero
	changeSum := decimal.Zero
	for _, asset := range catalog {
		quote := snapshot.Quote(asset.ID)
		balance := holdings.Balance(asset.Symbol)
		value := balance.Mul(quote.UnitPrice)
		total = total.Add(value)
		changeSum = changeSum.Add(quote.Change24h)
		perAsset = append(perAsset, AssetValuation{
			Asset:     asset,
			UnitPrice: quote.UnitPrice,
			Change24h: quote.Change24h,
			Balance:   balance,
			Value:     value,
		})
	}

	// Allocation is defined as zero across the board for an empty
	// portfolio; no division by zero escapes here.
	for i := range perAsset {
		if total.IsZero() {
			perAsset[i].Allocation = decimal.Zero
			continue
		}
		perAsset[i].Allocation = perAsset[i].Value.Div(total).Mul(hundred)
	}

	avgChange := decimal.Zero
	if len(catalog) > 0 {
		avgChange = changeSum.Div(decimal.NewFromInt(int64(len(catalog))))
	}

	return Valuation{
		PerAsset:     perAsset,
		TotalValue:   total,
		AvgChange24h: avgChange,
	}
}
