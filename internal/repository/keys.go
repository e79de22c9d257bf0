// internal/repository/keys.go
package repository

// Storage-key namespace. The key names are a compatibility contract with
// earlier releases of the wallet; do not rename them.
const (
	KeyIdentity       = "nv_user"
	KeySession        = "nv_session"
	KeySnapshot       = "nv_prices"
	KeyLegacyHoldings = "nw_holdings" // pre-multi-user holdings, migration only

	holdingsKeyPrefix     = "nv_holdings_"
	transactionsKeyPrefix = "nv_txs_"
)

// HoldingsKey returns the storage key of username's holdings map.
func HoldingsKey(username string) string {
	return holdingsKeyPrefix + username
}

// TransactionsKey returns the storage key of username's transaction log.
func TransactionsKey(username string) string {
	return transactionsKeyPrefix + username
}
