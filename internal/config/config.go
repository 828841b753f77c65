// Package config provides types for handling configuration parameters.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerConfig  *ServerConfig
	StorageConfig *StorageConfig
	AuthConfig    *AuthConfig
}

// ServerConfig defines default server-related constants and parameters and overwrites them with environment variables.
type ServerConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0:8000"`
}

// StorageConfig retrieves artifact storage-related parameters from environment.
type StorageConfig struct {
	StorageDir    string `env:"STORAGE_DIR" envDefault:"storage"`
	FileIndexPath string `env:"FILE_INDEX_PATH" envDefault:"storage/invoice_index.jsonl"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
}

// AuthConfig retrieves client authentication parameters from environment.
// CLIENTS holds a JSON object mapping client names to their API keys,
// e.g. {"acme": "acme-key-123"}.
type AuthConfig struct {
	ClientsJSON   string            `env:"CLIENTS" envDefault:"{}"`
	TrustedSubnet string            `env:"TRUSTED_SUBNET"`
	Clients       map[string]string `env:"-"`
}

// NewServerConfig sets up a server configuration.
func NewServerConfig() (*ServerConfig, error) {
	cfg := ServerConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStorageConfig sets up a storage configuration.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := StorageConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewAuthConfig sets up an authentication configuration.
func NewAuthConfig() (*AuthConfig, error) {
	cfg := AuthConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	cfg.Clients = make(map[string]string)
	if err := json.Unmarshal([]byte(cfg.ClientsJSON), &cfg.Clients); err != nil {
		return nil, fmt.Errorf("could not parse CLIENTS: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfiguration sets up a total configuration.
func NewDefaultConfiguration() (*Config, error) {
	serverCfg, err := NewServerConfig()
	if err != nil {
		return nil, err
	}
	storageCfg, err := NewStorageConfig()
	if err != nil {
		return nil, err
	}
	authCfg, err := NewAuthConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		ServerConfig:  serverCfg,
		StorageConfig: storageCfg,
		AuthConfig:    authCfg,
	}, nil
}

// ParseFlags parses command line arguments and stores them
func (c *Config) ParseFlags() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.StringVar(&c.ServerConfig.ServerAddress, "a", c.ServerConfig.ServerAddress, "Server address")
	flags.StringVar(&c.StorageConfig.StorageDir, "s", c.StorageConfig.StorageDir, "Artifact storage directory")
	flags.StringVar(&c.StorageConfig.FileIndexPath, "f", c.StorageConfig.FileIndexPath, "File index path")
	flags.StringVar(&c.StorageConfig.DatabaseDSN, "d", c.StorageConfig.DatabaseDSN, "Database DSN")
	flags.StringVar(&c.AuthConfig.TrustedSubnet, "t", c.AuthConfig.TrustedSubnet, "Trusted subnet in CIDR notation")
	_ = flags.Parse(os.Args[1:])
}
