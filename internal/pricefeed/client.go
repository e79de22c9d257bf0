// internal/pricefeed/client.go
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/util"
)

// Client fetches unit prices and 24h change for the asset catalog from the
// external market-data endpoint and keeps a last-known-good cache, both in
// memory and persisted.
//
// Overlapping fetches are allowed: whichever fetch completes last
// overwrites the cache, even if it was issued earlier. In-flight fetches
// are never cancelled on behalf of newer ones.
type Client struct {
	baseURL    string
	httpClient *http.Client
	priceRepo  repository.PriceRepository
	logger     *slog.Logger

	mu   sync.RWMutex
	last *domain.PriceSnapshot
}

// NewClient creates a feed client for the given endpoint.
func NewClient(baseURL string, priceRepo repository.PriceRepository, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		priceRepo:  priceRepo,
		logger:     logger,
	}
}

// FetchPrices requests the full catalog's quotes in the given quote
// currency, bypassing any HTTP-level cache. On success the returned
// snapshot replaces the in-memory and persisted last-known snapshot. On
// failure the previous snapshot stays authoritative.
func (c *Client) FetchPrices(ctx context.Context, vsCurrency string) (*domain.PriceSnapshot, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(domain.CatalogIDs(), ","))
	q.Set("vs_currencies", vsCurrency)
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", util.ErrFeedUnavailable, resp.StatusCode)
	}

	// Wire shape: {"<id>": {"<vs>": 123.45, "<vs>_24h_change": -1.2}, ...}
	var payload map[string]map[string]json.Number
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: bad response body: %v", util.ErrFeedUnavailable, err)
	}

	snapshot := &domain.PriceSnapshot{
		Quotes:    make(map[string]domain.AssetQuote, len(payload)),
		FetchedAt: time.Now().UTC(),
	}
	changeField := vsCurrency + "_24h_change"
	for id, fields := range payload {
		quote := domain.AssetQuote{UnitPrice: decimal.Zero, Change24h: decimal.Zero}
		if n, ok := fields[vsCurrency]; ok {
			if d, err := decimal.NewFromString(n.String()); err == nil {
				quote.UnitPrice = d
			}
		}
		if n, ok := fields[changeField]; ok {
			if d, err := decimal.NewFromString(n.String()); err == nil {
				quote.Change24h = d
			}
		}
		snapshot.Quotes[id] = quote
	}

	c.mu.Lock()
	c.last = snapshot
	c.mu.Unlock()

	// Persisting the cache is best-effort; the fetched data is already
	// authoritative in memory.
	if err := c.priceRepo.SaveSnapshot(snapshot); err != nil {
		c.logger.Warn("failed to persist price snapshot", "error", err)
	}

	return snapshot, nil
}

// LastKnownSnapshot returns the most recent successful snapshot, memory
// first, then the persisted cache. It returns nil if no fetch has ever
// succeeded.
func (c *Client) LastKnownSnapshot() *domain.PriceSnapshot {
	c.mu.RLock()
	last := c.last
	c.mu.RUnlock()
	if last != nil {
		return last
	}

	snapshot, err := c.priceRepo.GetSnapshot()
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			c.logger.Warn("failed to read persisted price snapshot", "error", err)
		}
		return nil
	}
	return snapshot
}
