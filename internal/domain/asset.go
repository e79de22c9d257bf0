// internal/domain/asset.go
package domain

// Asset describes one entry of the fixed asset catalog.
// The catalog is configuration, not runtime state: it never changes while
// the process is running.
type Asset struct {
	ID     string `json:"id"`     // market-data feed identifier, e.g. "bitcoin"
	Symbol string `json:"symbol"` // ledger symbol, e.g. "BTC"
	Name   string `json:"name"`
	Color  string `json:"color"` // display metadata for the presentation layer
}

var catalog = []Asset{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Color: "#f7931a"},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Color: "#6d38ff"},
	{ID: "solana", Symbol: "SOL", Name: "Solana", Color: "#00ffa3"},
}

// Catalog returns the supported assets in canonical order.
// Callers must not mutate the returned slice.
func Catalog() []Asset {
	return catalog
}

// CatalogIDs returns the feed identifiers of all catalog assets, in
// canonical order.
func CatalogIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, a := range catalog {
		ids = append(ids, a.ID)
	}
	return ids
}

// CatalogSymbols returns the ledger symbols of all catalog assets, in
// canonical order.
func CatalogSymbols() []string {
	symbols := make([]string, 0, len(catalog))
	for _, a := range catalog {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

// IsCatalogSymbol reports whether symbol belongs to the asset catalog.
func IsCatalogSymbol(symbol string) bool {
	for _, a := range catalog {
		if a.Symbol == symbol {
			return true
		}
	}
	return false
}
