// Package config handles loading and validation of service configuration.
// Supports both development (env vars / .env) and production (Secret
// Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"

	"quickview-proxy/internal/upsell"
)

// Config holds all service configuration.
// Environment determines whether shop settings load from env vars
// (development) or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	ShopID     string

	// MinWidgetVersion gates outdated widget builds; empty disables the gate.
	MinWidgetVersion string

	// Shop-specific configuration (loaded from secrets in production)
	Shop ShopConfig
}

// ShopConfig contains per-shop settings.
// In production, loaded from Secret Manager as JSON.
// In development, loaded from individual env vars or CONFIG_FILE.
type ShopConfig struct {
	// StoreURL is the storefront base URL, e.g. "https://shop.example.com".
	StoreURL string `json:"store_url"`

	// Locale and Currency drive price display formatting.
	Locale   string `json:"locale,omitempty"`   // default "en"
	Currency string `json:"currency,omitempty"` // default "USD"

	// CartPath is where the shopper lands after a successful add.
	CartPath string `json:"cart_path,omitempty"` // default "/cart"

	// UpsellVariantID is the shop-wide upsell fallback, used when a request
	// carries no per-section upsell configuration. 0 = no fallback.
	UpsellVariantID int64 `json:"upsell_variant_id,omitempty"`
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// Development convenience: pull in a local .env before reading env vars.
	// Missing file is fine; explicit env always wins since godotenv never
	// overrides existing variables.
	if os.Getenv("ENVIRONMENT") != "production" {
		godotenv.Load()
	}

	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:             envOrDefault("PORT", "8080"),
		Environment:      envOrDefault("ENVIRONMENT", "development"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		GCPProject:       os.Getenv("GCP_PROJECT"),
		ShopID:           os.Getenv("SHOP_ID"),
		MinWidgetVersion: os.Getenv("MIN_WIDGET_VERSION"),
	}

	// ShopID required in all environments
	if cfg.ShopID == "" {
		return nil, fmt.Errorf("SHOP_ID environment variable required")
	}

	// Load shop config based on environment
	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading shop config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port             string     `json:"port"`
		Environment      string     `json:"environment"`
		LogLevel         string     `json:"log_level"`
		ShopID           string     `json:"shop_id"`
		MinWidgetVersion string     `json:"min_widget_version"`
		Shop             ShopConfig `json:"shop"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:             withDefault(fileConfig.Port, "8080"),
		Environment:      withDefault(fileConfig.Environment, "development"),
		LogLevel:         withDefault(fileConfig.LogLevel, "info"),
		ShopID:           fileConfig.ShopID,
		MinWidgetVersion: fileConfig.MinWidgetVersion,
		Shop:             fileConfig.Shop,
	}

	if cfg.ShopID == "" {
		return nil, fmt.Errorf("shop_id is required")
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches shop config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{shop_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.ShopID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Shop); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads shop config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Shop = ShopConfig{
		StoreURL: os.Getenv("SHOP_STORE_URL"),
		Locale:   os.Getenv("SHOP_LOCALE"),
		Currency: os.Getenv("SHOP_CURRENCY"),
		CartPath: os.Getenv("SHOP_CART_PATH"),
	}

	// Same contract as the section attribute: non-numeric means inert
	if raw := os.Getenv("SHOP_UPSELL_VARIANT_ID"); raw != "" {
		if id, ok := upsell.ParseVariantID(raw); ok {
			c.Shop.UpsellVariantID = id
		}
	}

	return nil
}

// applyDefaults fills display and navigation defaults.
func (c *Config) applyDefaults() {
	c.Shop.Locale = withDefault(c.Shop.Locale, "en")
	c.Shop.Currency = withDefault(c.Shop.Currency, "USD")
	c.Shop.CartPath = withDefault(c.Shop.CartPath, "/cart")
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Shop.StoreURL == "" {
		return fmt.Errorf("store_url is required")
	}
	if _, err := url.Parse(c.Shop.StoreURL); err != nil {
		return fmt.Errorf("invalid store_url: %w", err)
	}
	if !strings.HasPrefix(c.Shop.CartPath, "/") {
		return fmt.Errorf("cart_path must start with /")
	}
	return nil
}

// CartURL is the absolute cart page URL shoppers are redirected to after a
// successful add.
func (c *Config) CartURL() string {
	return strings.TrimSuffix(c.Shop.StoreURL, "/") + c.Shop.CartPath
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
