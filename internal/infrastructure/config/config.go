// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv("config.yaml")
//	catalogPath := cfg.Catalog.Path
//	fee := cfg.Pricing.ProductionFee
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Catalog       CatalogConfig       `yaml:"catalog"`
	Pricing       PricingConfig       `yaml:"pricing"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// CatalogConfig points at the rate-card file
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// PricingConfig holds the pricing constants applied to every quote
type PricingConfig struct {
	ProductionFee    int64 `yaml:"production_fee"`
	VATPercent       int   `yaml:"vat_percent"`
	SurchargePercent int   `yaml:"surcharge_percent"`
	EvenSpots        bool  `yaml:"even_spots"` // bump odd spot counts to even
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration defaults
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "catalog.yaml",
		},
		Pricing: PricingConfig{
			ProductionFee:    20000,
			VATPercent:       5,
			SurchargePercent: 10,
			EvenSpots:        true,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// Load reads and parses the config file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${CUESHEET_CATALOG})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := Default()
	cfg.Catalog.Path = getEnv("CUESHEET_CATALOG", cfg.Catalog.Path)
	cfg.Pricing.ProductionFee = int64(getEnvInt("CUESHEET_PRODUCTION_FEE", int(cfg.Pricing.ProductionFee)))
	cfg.Pricing.VATPercent = getEnvInt("CUESHEET_VAT_PERCENT", cfg.Pricing.VATPercent)
	cfg.Pricing.SurchargePercent = getEnvInt("CUESHEET_SURCHARGE_PERCENT", cfg.Pricing.SurchargePercent)
	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", cfg.Observability.Logging.Format)
	return cfg
}

// LoadOrEnv tries to load from the given path, falls back to environment variables
func LoadOrEnv(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
