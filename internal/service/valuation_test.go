// internal/service/valuation_test.go
package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainpilot-wallet/internal/domain"
)

func testSnapshot() *domain.PriceSnapshot {
	return &domain.PriceSnapshot{
		Quotes: map[string]domain.AssetQuote{
			"bitcoin":  {UnitPrice: decimal.NewFromInt(50000), Change24h: decimal.RequireFromString("2.5")},
			"ethereum": {UnitPrice: decimal.NewFromInt(2000), Change24h: decimal.RequireFromString("-1.5")},
			"solana":   {UnitPrice: decimal.NewFromInt(100), Change24h: decimal.RequireFromString("5.0")},
		},
		FetchedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestValuate(t *testing.T) {
	holdings := domain.Holdings{
		"BTC": decimal.RequireFromString("0.5"),
		"ETH": decimal.NewFromInt(10),
		"SOL": decimal.NewFromInt(50),
	}

	t.Run("ValuesAndTotal", func(t *testing.T) {
		v := Valuate(holdings, testSnapshot())

		require.Len(t, v.PerAsset, 3)
		sum := decimal.Zero
		for _, pa := range v.PerAsset {
			assert.True(t, pa.Value.Equal(pa.Balance.Mul(pa.UnitPrice)),
				"%s: value %s != balance*price", pa.Asset.Symbol, pa.Value)
			sum = sum.Add(pa.Value)
		}
		assert.True(t, v.TotalValue.Equal(sum))
		// 0.5*50000 + 10*2000 + 50*100 = 50000
		assert.True(t, decimal.NewFromInt(50000).Equal(v.TotalValue), "got %s", v.TotalValue)
	})

	t.Run("AllocationsSumToHundred", func(t *testing.T) {
		v := Valuate(holdings, testSnapshot())

		allocSum := decimal.Zero
		for _, pa := range v.PerAsset {
			allocSum = allocSum.Add(pa.Allocation)
		}
		epsilon := decimal.RequireFromString("0.0000001")
		assert.True(t, allocSum.Sub(decimal.NewFromInt(100)).Abs().LessThan(epsilon),
			"allocations sum to %s", allocSum)
	})

	t.Run("AverageChangeIsUnweighted", func(t *testing.T) {
		v := Valuate(holdings, testSnapshot())
		// (2.5 - 1.5 + 5.0) / 3 = 2
		assert.True(t, decimal.NewFromInt(2).Equal(v.AvgChange24h), "got %s", v.AvgChange24h)
	})

	t.Run("EmptyPortfolioHasZeroAllocations", func(t *testing.T) {
		v := Valuate(domain.NewHoldings(), testSnapshot())

		assert.True(t, v.TotalValue.IsZero())
		for _, pa := range v.PerAsset {
			assert.True(t, pa.Allocation.IsZero(), "%s allocation %s", pa.Asset.Symbol, pa.Allocation)
		}
	})

	t.Run("MissingQuoteValuesAtZero", func(t *testing.T) {
		partial := &domain.PriceSnapshot{
			Quotes: map[string]domain.AssetQuote{
				"bitcoin": {UnitPrice: decimal.NewFromInt(50000), Change24h: decimal.NewFromInt(1)},
			},
		}
		v := Valuate(holdings, partial)

		for _, pa := range v.PerAsset {
			if pa.Asset.ID == "bitcoin" {
				continue
			}
			assert.True(t, pa.UnitPrice.IsZero())
			assert.True(t, pa.Value.IsZero())
			assert.True(t, pa.Change24h.IsZero())
		}
	})

	t.Run("NilSnapshot", func(t *testing.T) {
		v := Valuate(holdings, nil)
		assert.True(t, v.TotalValue.IsZero())
		assert.True(t, v.AvgChange24h.IsZero())
	})

	t.Run("Pure", func(t *testing.T) {
		a := Valuate(holdings, testSnapshot())
		b := Valuate(holdings, testSnapshot())
		assert.Equal(t, a, b)
	})
}
