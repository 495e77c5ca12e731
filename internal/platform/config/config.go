package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// JWTSecret verifies bearer tokens issued by the external auth provider.
	JWTSecret string

	// DefaultCurrency is assigned to wallets created lazily on first resolve.
	DefaultCurrency string

	// TransferFee is a flat fee debited from the source wallet on transfers,
	// separately from the transfer amount.
	TransferFee decimal.Decimal

	// UnverifiedTxnLimit caps the per-transaction amount for unverified
	// wallets. Unverified wallets are never blocked, only capped.
	UnverifiedTxnLimit decimal.Decimal

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("DEFAULT_CURRENCY", "SLE")
	viper.SetDefault("TRANSFER_FEE", "0")
	viper.SetDefault("UNVERIFIED_TXN_LIMIT", "1000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	transferFee, err := decimal.NewFromString(viper.GetString("TRANSFER_FEE"))
	if err != nil {
		log.Printf("Warning: Invalid value for TRANSFER_FEE ('%s'). Defaulting to 0.\n", viper.GetString("TRANSFER_FEE"))
		transferFee = decimal.Zero
	}
	cfg.TransferFee = transferFee

	unverifiedLimit, err := decimal.NewFromString(viper.GetString("UNVERIFIED_TXN_LIMIT"))
	if err != nil {
		log.Printf("Warning: Invalid value for UNVERIFIED_TXN_LIMIT ('%s'). Defaulting to 1000.\n", viper.GetString("UNVERIFIED_TXN_LIMIT"))
		unverifiedLimit = decimal.NewFromInt(1000)
	}
	cfg.UnverifiedTxnLimit = unverifiedLimit

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
