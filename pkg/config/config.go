// Package config loads SDK settings from the environment and, optionally,
// a YAML file. File values lose to explicit environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Config is everything a binary needs to construct a client.
type Config struct {
	Environment string `yaml:"environment"`
	PrivateKey  string `yaml:"private_key"`
	WalletRPC   string `yaml:"wallet_rpc"`
	WalletAddr  string `yaml:"wallet_address"`
	EthereumRPC string `yaml:"ethereum_rpc"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

// Load reads configuration from the process environment. A .env file in
// the working directory is honored when present; missing is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getenvDefault("SPORTX_ENV", string(types.EnvironmentProduction)),
		PrivateKey:  os.Getenv("SPORTX_PRIVATE_KEY"),
		WalletRPC:   os.Getenv("SPORTX_WALLET_RPC"),
		WalletAddr:  os.Getenv("SPORTX_WALLET_ADDRESS"),
		EthereumRPC: os.Getenv("SPORTX_ETH_RPC"),
		LogLevel:    getenvDefault("SPORTX_LOG_LEVEL", "info"),
		LogFile:     os.Getenv("SPORTX_LOG_FILE"),
	}
	return cfg, cfg.check()
}

// LoadFile reads a YAML config file, then lets environment variables
// override it.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	_ = godotenv.Load()
	overlay := map[string]*string{
		"SPORTX_ENV":            &cfg.Environment,
		"SPORTX_PRIVATE_KEY":    &cfg.PrivateKey,
		"SPORTX_WALLET_RPC":     &cfg.WalletRPC,
		"SPORTX_WALLET_ADDRESS": &cfg.WalletAddr,
		"SPORTX_ETH_RPC":        &cfg.EthereumRPC,
		"SPORTX_LOG_LEVEL":      &cfg.LogLevel,
		"SPORTX_LOG_FILE":       &cfg.LogFile,
	}
	for key, target := range overlay {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, cfg.check()
}

func (c *Config) check() error {
	if _, err := types.LookupEnvironment(types.Environment(c.Environment)); err != nil {
		return err
	}
	if c.PrivateKey == "" && c.WalletRPC == "" {
		return &types.ConfigurationError{
			Detail: "no credential configured: set SPORTX_PRIVATE_KEY or SPORTX_WALLET_RPC",
		}
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
