// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/shopspring/decimal"

	router "chainpilot-wallet/internal/api"
	"chainpilot-wallet/internal/api/handler"
	"chainpilot-wallet/internal/config"
	"chainpilot-wallet/internal/pricefeed"
	"chainpilot-wallet/internal/repository"
	"chainpilot-wallet/internal/repository/kvstore"
	"chainpilot-wallet/internal/service"
	"chainpilot-wallet/internal/util"
	"chainpilot-wallet/pkg/db"
	"chainpilot-wallet/pkg/kv"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	Store  kv.Store

	// Repositories
	IdentityRepository repository.IdentityRepository
	LedgerRepository   repository.LedgerRepository
	PriceRepository    repository.PriceRepository

	// Services
	IdentityService service.IdentityService
	TransferService service.TransferService

	// Price feed
	PriceClient    *pricefeed.Client
	PriceRefresher *pricefeed.Refresher

	// HTTP API
	HTTPHandler http.Handler

	countdown atomic.Int64
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// Persisted records from earlier releases hold amounts as bare JSON
	// numbers; write the same shape.
	decimal.MarshalJSONWithoutQuotes = true

	// 3. Open the key-value store
	store, err := app.openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.Store = store
	app.Logger.Info("Key-value store opened.", "backend", cfg.StoreBackend)

	// 4. Initialize Repositories
	app.IdentityRepository = kvstore.NewIdentityRepository(app.Store)
	app.LedgerRepository = kvstore.NewLedgerRepository(app.Store)
	app.PriceRepository = kvstore.NewPriceRepository(app.Store)
	app.Logger.Info("Repositories initialized.")

	// One-time legacy holdings migration; failure is not fatal.
	if err := app.LedgerRepository.MigrateLegacyHoldings(); err != nil {
		app.Logger.Warn("Legacy holdings migration failed", "error", err)
	}

	// 5. Initialize Services
	app.IdentityService = service.NewIdentityService(app.IdentityRepository, app.LedgerRepository)
	app.TransferService = service.NewTransferService(app.LedgerRepository)
	app.Logger.Info("Services initialized.")

	// 6. Price feed client and refresher
	app.PriceClient = pricefeed.NewClient(cfg.PriceAPIURL, app.PriceRepository, app.Logger)
	app.PriceRefresher = pricefeed.NewRefresher(app.PriceClient, cfg.PriceVsCurrency, cfg.PriceRefreshSeconds, app.Logger)
	app.countdown.Store(int64(cfg.PriceRefreshSeconds))
	app.PriceRefresher.OnTick(func(remaining int) {
		app.countdown.Store(int64(remaining))
	})
	app.Logger.Info("Price feed initialized.", "url", cfg.PriceAPIURL, "refreshSeconds", cfg.PriceRefreshSeconds)

	// 7. Initialize HTTP Handlers and Router
	authHandler := handler.NewAuthHandler(app.IdentityService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.IdentityService, app.TransferService, app.LedgerRepository, app.PriceClient, app.Logger)
	pricesHandler := handler.NewPricesHandler(app.PriceClient, cfg.PriceVsCurrency, app.Countdown, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, walletHandler, pricesHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Countdown reports the seconds remaining until the next scheduled price
// refresh.
func (app *Application) Countdown() int {
	return int(app.countdown.Load())
}

func (app *Application) openStore() (kv.Store, error) {
	switch app.Config.StoreBackend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendWal:
		return kv.NewWalStore(app.Config.WalDir)
	case config.BackendPostgres:
		database, err := db.NewPostgresDB(app.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return kv.NewPostgresStore(database)
	default:
		return nil, fmt.Errorf("unknown store backend %q", app.Config.StoreBackend)
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.PriceRefresher != nil {
		app.PriceRefresher.Stop()
		app.Logger.Info("Price refresher stopped.")
	}
	if closer, ok := app.Store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.Logger.Error("Failed to close store", "error", err)
			return fmt.Errorf("failed to close store: %w", err)
		}
		app.Logger.Info("Store closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
