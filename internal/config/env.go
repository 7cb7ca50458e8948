package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/AlexZinkM/ton-gamefi/internal/common"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`

	Network      string  `envconfig:"NETWORK" default:"mainnet"`
	TonConfigURL string  `envconfig:"TON_CONFIG_URL" default:"https://ton.org/global.config.json"`
	ChainRPS     float64 `envconfig:"CHAIN_RPS" default:"8"`

	ManifestURL         string        `envconfig:"MANIFEST_URL" required:"true"`
	ReturnStrategy      string        `envconfig:"RETURN_STRATEGY" default:"back"`
	WalletUniversalLink string        `envconfig:"WALLET_UNIVERSAL_LINK" default:"https://app.tonkeeper.com/ton-connect"`
	BridgeURL           string        `envconfig:"BRIDGE_URL" default:"https://bridge.tonapi.io/bridge"`
	ConnectTimeout      time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5m"`
	TransactionTTL      time.Duration `envconfig:"TRANSACTION_TTL" default:"1h"`

	LedgerEndpoint        string        `envconfig:"LEDGER_ENDPOINT" required:"true"`
	TokenMaster           string        `envconfig:"TOKEN_MASTER" required:"true"`
	TokenRecipient        string        `envconfig:"TOKEN_RECIPIENT" required:"true"`
	TokenDecimals         int32         `envconfig:"TOKEN_DECIMALS" default:"0"`
	ShopItems             string        `envconfig:"SHOP_ITEMS" default:"pipe-green:0,pipe-red:80,pipe-blue:120"`
	BalanceReloadInterval time.Duration `envconfig:"BALANCE_RELOAD_INTERVAL" default:"10s"`
	ShopReloadInterval    time.Duration `envconfig:"SHOP_RELOAD_INTERVAL" default:"10s"`
	StrictBalanceCheck    bool          `envconfig:"STRICT_BALANCE_CHECK" default:"false"`

	StoreBackend    string `envconfig:"STORE_BACKEND" default:"file"`
	StoreFilePath   string `envconfig:"STORE_FILE_PATH" default:"gamefi.cwt"`
	StorePassphrase string `envconfig:"STORE_PASSPHRASE"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD"`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check by itself
func (c *Config) Validate() error {
	if c.Network != "mainnet" && c.Network != "testnet" {
		return fmt.Errorf("NETWORK must be mainnet or testnet")
	}
	switch c.StoreBackend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("STORE_BACKEND must be file, redis or memory")
	}
	if c.TransactionTTL <= 0 {
		return fmt.Errorf("TRANSACTION_TTL must be positive")
	}
	if c.TokenDecimals < 0 {
		return fmt.Errorf("TOKEN_DECIMALS must not be negative")
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// ChainID returns the TON Connect network id
func (c *Config) ChainID() string {
	if c.Network == "testnet" {
		return "-3"
	}
	return "-239"
}

// Catalog parses SHOP_ITEMS ("name:price,name:price") into shop items.
// Prices are human token amounts.
func (c *Config) Catalog() ([]model.ShopItem, error) {
	parts := strings.Split(c.ShopItems, ",")
	items := make([]model.ShopItem, 0, len(parts))
	for i, part := range parts {
		name, price, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("SHOP_ITEMS entry %q must be name:price", part)
		}
		units, err := common.ToBaseUnits(price, c.TokenDecimals)
		if err != nil {
			return nil, fmt.Errorf("SHOP_ITEMS entry %q: %w", part, err)
		}
		items = append(items, model.ShopItem{Index: i, SystemName: name, Price: new(big.Int).Set(units)})
	}
	return items, nil
}

// PromptForPassphrase returns STORE_PASSPHRASE or asks for it in the terminal
// without echoing. Caller should zero the returned slice after use.
func (c *Config) PromptForPassphrase(prompt string) ([]byte, error) {
	if c.StorePassphrase != "" {
		return []byte(c.StorePassphrase), nil
	}
	return ReadPassphrase(prompt)
}

// ReadPassphrase reads a hidden line from the terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: set STORE_PASSPHRASE or run interactively")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	return raw, nil
}
