// internal/api/handler/prices.go
package handler

import (
	"log/slog"
	"net/http"

	"chainpilot-wallet/internal/pricefeed"
	"chainpilot-wallet/internal/service"
	"chainpilot-wallet/internal/util"
)

// PricesHandler handles HTTP requests for the price feed and the
// presentation helpers that need no ledger access.
type PricesHandler struct {
	feed       *pricefeed.Client
	vsCurrency string
	countdown  func() int
	logger     *slog.Logger
}

// NewPricesHandler creates a new PricesHandler. countdown reports the
// seconds until the next scheduled refresh.
func NewPricesHandler(feed *pricefeed.Client, vsCurrency string, countdown func() int, logger *slog.Logger) *PricesHandler {
	return &PricesHandler{
		feed:       feed,
		vsCurrency: vsCurrency,
		countdown:  countdown,
		logger:     logger,
	}
}

// Prices returns the last-known snapshot, fetching live only if no
// snapshot exists yet. ?refresh=1 forces a live fetch.
// GET /prices
func (h *PricesHandler) Prices(w http.ResponseWriter, r *http.Request) {
	snapshot := h.feed.LastKnownSnapshot()
	if snapshot == nil || r.URL.Query().Get("refresh") == "1" {
		fresh, err := h.feed.FetchPrices(r.Context(), h.vsCurrency)
		if err != nil {
			// A stale snapshot still beats an error page.
			if snapshot == nil {
				respondWithError(w, h.logger, err)
				return
			}
			h.logger.Warn("price refresh failed, serving cached snapshot", "error", err)
		} else {
			snapshot = fresh
		}
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"snapshot":         snapshot,
		"nextRefreshInSec": h.countdown(),
	})
}

// GenerateAddress mints a synthetic receive address.
// POST /receive/address
func (h *PricesHandler) GenerateAddress(w http.ResponseWriter, r *http.Request) {
	address, err := service.GenerateAddress()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"address": address,
		"length":  len(address),
	})
}

// InspectRecipient classifies a candidate recipient address.
// GET /receive/inspect?address=0x...
func (h *PricesHandler) InspectRecipient(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, service.InspectRecipient(address))
}
