// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chainpilot-wallet/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	authHandler *handler.AuthHandler,
	walletHandler *handler.WalletHandler,
	pricesHandler *handler.PricesHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/password", authHandler.ChangePassword)
		r.Get("/session", authHandler.Session)
	})

	r.Route("/wallet", func(r chi.Router) {
		r.Get("/holdings", walletHandler.Holdings)
		r.Get("/valuation", walletHandler.Valuation)
		r.Post("/deposit", walletHandler.Deposit)
		r.Post("/send", walletHandler.Send)
		r.Post("/send/preview", walletHandler.PreviewSend)
		r.Get("/transactions", walletHandler.Transactions)
		r.Get("/transactions/export", walletHandler.ExportTransactions)
	})

	r.Get("/prices", pricesHandler.Prices)
	r.Post("/receive/address", pricesHandler.GenerateAddress)
	r.Get("/receive/inspect", pricesHandler.InspectRecipient)

	return r
}
