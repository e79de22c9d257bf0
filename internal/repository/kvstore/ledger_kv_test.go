// internal/repository/kvstore/ledger_kv_test.go
package kvstore

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/pkg/kv"
)

func TestHoldingsFor(t *testing.T) {
	t.Run("SeedsAndPersistsZeroBalancesOnFirstAccess", func(t *testing.T) {
		store := kv.NewMemoryStore()
		repo := NewLedgerRepository(store)

		holdings, err := repo.HoldingsFor("alice")
		require.NoError(t, err)
		assert.True(t, holdings.IsEmpty())
		assert.Len(t, holdings, len(domain.Catalog()))

		// The seed is written through, not just returned.
		_, ok, err := store.Get(repository.HoldingsKey("alice"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RoundTripsSavedBalances", func(t *testing.T) {
		store := kv.NewMemoryStore()
		repo := NewLedgerRepository(store)

		saved := domain.NewHoldings()
		saved["BTC"] = decimal.RequireFromString("1.23456789")
		require.NoError(t, repo.SaveHoldings("alice", saved))

		loaded, err := repo.HoldingsFor("alice")
		require.NoError(t, err)
		assert.True(t, saved["BTC"].Equal(loaded.Balance("BTC")))
	})

	t.Run("UsersAreIsolated", func(t *testing.T) {
		store := kv.NewMemoryStore()
		repo := NewLedgerRepository(store)

		saved := domain.NewHoldings()
		saved["ETH"] = decimal.NewFromInt(7)
		require.NoError(t, repo.SaveHoldings("alice", saved))

		other, err := repo.HoldingsFor("bob")
		require.NoError(t, err)
		assert.True(t, other.IsEmpty())
	})
}

func TestAppendTransaction(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewLedgerRepository(store)

	first := domain.NewDepositRecord(decimal.NewFromInt(10), "BTC")
	second := domain.NewSendRecord("0xcafe", decimal.NewFromInt(3), "BTC", decimal.RequireFromString("0.006"))
	require.NoError(t, repo.AppendTransaction("alice", first))
	require.NoError(t, repo.AppendTransaction("alice", second))

	records, err := repo.TransactionsFor("alice")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest record first.
	assert.Equal(t, domain.TransactionTypeSend, records[0].Type)
	assert.Equal(t, domain.TransactionTypeDeposit, records[1].Type)
}

func TestTransactionsForEmptyLog(t *testing.T) {
	repo := NewLedgerRepository(kv.NewMemoryStore())

	records, err := repo.TransactionsFor("nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestMigrateLegacyHoldings(t *testing.T) {
	legacy := func(t *testing.T, store kv.Store) domain.Holdings {
		t.Helper()
		raw, ok, err := store.Get(repository.KeyLegacyHoldings)
		require.NoError(t, err)
		require.True(t, ok)
		var holdings domain.Holdings
		require.NoError(t, json.Unmarshal([]byte(raw), &holdings))
		return holdings
	}

	t.Run("ReplacesRetiredSymbol", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set(repository.KeyLegacyHoldings,
			`{"BTC": 0.5, "ETH": 2, "USDT": 1500}`))

		require.NoError(t, NewLedgerRepository(store).MigrateLegacyHoldings())

		holdings := legacy(t, store)
		assert.NotContains(t, holdings, "USDT")
		require.Contains(t, holdings, "SOL")
		// The retired balance is dropped, not carried over.
		assert.True(t, holdings["SOL"].IsZero())
		assert.True(t, decimal.RequireFromString("0.5").Equal(holdings["BTC"]))
	})

	t.Run("NoOpWithoutLegacyRecord", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, NewLedgerRepository(store).MigrateLegacyHoldings())

		_, ok, err := store.Get(repository.KeyLegacyHoldings)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NoOpWhenReplacementAlreadyPresent", func(t *testing.T) {
		store := kv.NewMemoryStore()
		original := `{"USDT": 100, "SOL": 4}`
		require.NoError(t, store.Set(repository.KeyLegacyHoldings, original))

		require.NoError(t, NewLedgerRepository(store).MigrateLegacyHoldings())

		raw, _, err := store.Get(repository.KeyLegacyHoldings)
		require.NoError(t, err)
		assert.Equal(t, original, raw)
	})

	t.Run("IsIdempotent", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set(repository.KeyLegacyHoldings, `{"USDT": 9}`))
		repo := NewLedgerRepository(store)

		require.NoError(t, repo.MigrateLegacyHoldings())
		require.NoError(t, repo.MigrateLegacyHoldings())

		holdings := legacy(t, store)
		assert.NotContains(t, holdings, "USDT")
		assert.Contains(t, holdings, "SOL")
	})
}
