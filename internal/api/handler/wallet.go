// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"chainpilot-wallet/internal/pricefeed"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/service"
	"chainpilot-wallet/internal/util"
)

// WalletHandler handles HTTP requests for the ledger: holdings, valuation,
// transfers and the transaction log. Every route operates on the
// authenticated user's partition.
type WalletHandler struct {
	identity service.IdentityService
	transfer service.TransferService
	ledger   repository.LedgerRepository
	feed     *pricefeed.Client
	logger   *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(
	identity service.IdentityService,
	transfer service.TransferService,
	ledger repository.LedgerRepository,
	feed *pricefeed.Client,
	logger *slog.Logger,
) *WalletHandler {
	return &WalletHandler{
		identity: identity,
		transfer: transfer,
		ledger:   ledger,
		feed:     feed,
		logger:   logger,
	}
}

// activeUsername resolves the authenticated user, or fails with
// ErrInvalidCredentials for the 401 mapping.
func (h *WalletHandler) activeUsername() (string, error) {
	authed, err := h.identity.IsAuthenticated()
	if err != nil {
		return "", err
	}
	if !authed {
		return "", util.ErrInvalidCredentials
	}
	session, err := h.identity.CurrentSession()
	if err != nil {
		return "", err
	}
	return session.Username, nil
}

// Holdings returns the authenticated user's balance map.
// GET /wallet/holdings
func (h *WalletHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	holdings, err := h.ledger.HoldingsFor(username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"username": username,
		"holdings": holdings,
		"empty":    holdings.IsEmpty(),
	})
}

// Valuation returns the portfolio view derived from the holdings and the
// last-known price snapshot. Before the first successful fetch it values
// everything at zero rather than failing.
// GET /wallet/valuation
func (h *WalletHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	holdings, err := h.ledger.HoldingsFor(username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	valuation := service.Valuate(holdings, h.feed.LastKnownSnapshot())
	respondWithJSON(w, h.logger, http.StatusOK, valuation)
}

// TransferRequest represents the request body for deposit and send.
type TransferRequest struct {
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient string          `json:"recipient,omitempty"`
}

// Deposit credits funds to the authenticated user.
// POST /wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidAmount)
		return
	}

	holdings, record, err := h.transfer.Deposit(username, req.Asset, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":     "Deposit successful",
		"holdings":    holdings,
		"transaction": record,
	})
}

// Send debits funds from the authenticated user in favor of a recipient.
// POST /wallet/send
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	holdings, record, err := h.transfer.Send(username, req.Asset, req.Amount, req.Recipient)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":     "Send successful",
		"holdings":    holdings,
		"transaction": record,
	})
}

// PreviewSend projects fee and remaining balance for a prospective send.
// POST /wallet/send/preview
func (h *WalletHandler) PreviewSend(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	preview, err := h.transfer.PreviewSend(username, req.Asset, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, preview)
}

// Transactions returns the transaction log, optionally filtered by
// counterparty substring and re-sorted for display.
// GET /wallet/transactions?filter=...&sort=date-desc
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	records, err := h.ledger.TransactionsFor(username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	filter := r.URL.Query().Get("filter")
	mode := r.URL.Query().Get("sort")
	if mode == "" {
		mode = service.TxSortDateDesc
	}
	view := service.SortFilterTransactions(records, filter, mode)

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data":   view,
		"filter": filter,
		"sort":   mode,
		"count":  len(view),
	})
}

// ExportTransactions serves the raw transaction log as a JSON download.
// GET /wallet/transactions/export
func (h *WalletHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	username, err := h.activeUsername()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	records, err := h.ledger.TransactionsFor(username)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	data, err := service.ExportTransactions(records)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="chainpilot_transactions.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
