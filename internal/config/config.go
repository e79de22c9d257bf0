// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"chainpilot-wallet/pkg/db"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendWal      = "wal"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string

	// StoreBackend selects where the key-value namespace lives.
	StoreBackend string
	WalDir       string
	DB           db.Config

	PriceAPIURL         string
	PriceVsCurrency     string
	PriceRefreshSeconds int
}

// LoadConfig loads configuration from environment variables, with a .env
// file honored if present. Every value has a local-development default.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &AppConfig{
		ServerPort:      envOr("SERVER_PORT", "8080"),
		StoreBackend:    envOr("STORE_BACKEND", BackendWal),
		WalDir:          envOr("WAL_DIR", "walletdata"),
		PriceAPIURL:     envOr("PRICE_API_URL", "https://api.coingecko.com/api/v3/simple/price"),
		PriceVsCurrency: envOr("PRICE_VS_CURRENCY", "usd"),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres, BackendWal:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q", cfg.StoreBackend)
	}

	refreshStr := envOr("PRICE_REFRESH_SECONDS", "60")
	refresh, err := strconv.Atoi(refreshStr)
	if err != nil || refresh <= 0 {
		return nil, fmt.Errorf("invalid PRICE_REFRESH_SECONDS: %q", refreshStr)
	}
	cfg.PriceRefreshSeconds = refresh

	dbPortStr := envOr("DB_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.DB = db.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     envOr("DB_USER", "user"),
		Password: envOr("DB_PASSWORD", "password"),
		DBName:   envOr("DB_NAME", "walletdb"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
