//-------------------------------------------------------------------------
//
// starload - Sales Star Schema ETL
//
// Copyright (c) 2025 - 2026, the starload authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for starload.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values. There is
// no ambient global configuration: the loaded Config is passed explicitly
// into each component at construction time.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for starload.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Storage holds object storage settings.
	Storage StorageConfig `mapstructure:"storage"`

	// Source holds settings for the raw input snapshot.
	Source SourceConfig `mapstructure:"source"`

	// Sink holds settings for the flat-file output.
	Sink SinkConfig `mapstructure:"sink"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Load holds configuration for the bulk loader.
	Load LoadConfig `mapstructure:"load"`
}

// StorageConfig holds object storage connection settings.
type StorageConfig struct {
	// Type selects the backend: "minio" or "local".
	Type string `mapstructure:"type"`

	// Endpoint is the MinIO/S3 endpoint (host:port).
	Endpoint string `mapstructure:"endpoint"`

	// AccessKey and SecretKey are the object storage credentials.
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`

	// Bucket is the bucket holding both raw input and cleaned output.
	Bucket string `mapstructure:"bucket"`

	// UseSSL enables TLS for the MinIO endpoint.
	UseSSL bool `mapstructure:"use_ssl"`

	// LocalDir is the root directory for the local backend.
	LocalDir string `mapstructure:"local_dir"`
}

// SourceConfig holds settings for the raw input snapshot.
type SourceConfig struct {
	// Object is the key of the raw sales CSV.
	Object string `mapstructure:"object"`
}

// SinkConfig holds settings for the flat-file output.
type SinkConfig struct {
	// Prefix is the key prefix the result tables are written under.
	Prefix string `mapstructure:"prefix"`
}

// SeedConfig holds configuration for seed data generation.
type SeedConfig struct {
	// Rows is the number of raw records to generate.
	Rows int `mapstructure:"rows"`

	// Seed fixes the random seed for reproducible snapshots (0 = random).
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for the bulk loader.
type LoadConfig struct {
	// BatchSize is the number of rows per insert batch.
	BatchSize int `mapstructure:"batch_size"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			Type:     "minio",
			Endpoint: "localhost:9000",
			Bucket:   "sales",
		},
		Source: SourceConfig{
			Object: "raw/sales.csv",
		},
		Sink: SinkConfig{
			Prefix: "cleaned_data",
		},
		Seed: SeedConfig{
			Rows: 10000,
		},
		Load: LoadConfig{
			BatchSize: 1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./starload.yaml
// 3. ~/.config/starload/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("starload")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "starload"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateStorage checks that the object storage configuration is usable.
func (c *Config) ValidateStorage() error {
	switch c.Storage.Type {
	case "minio":
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("storage endpoint is required")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required")
		}
	case "local":
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage local_dir is required for local storage")
		}
	default:
		return fmt.Errorf("storage type must be 'minio' or 'local'")
	}
	return nil
}

// ValidateWarehouse checks that the relational store is configured.
func (c *Config) ValidateWarehouse() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.ValidateWarehouse(); err != nil {
		return err
	}
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	if c.Source.Object == "" {
		return fmt.Errorf("source object is required")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("load batch_size must be at least 1")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	if c.Seed.Rows < 1 {
		return fmt.Errorf("seed rows must be at least 1")
	}
	return nil
}
