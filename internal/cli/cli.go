//-------------------------------------------------------------------------
//
// starload - Sales Star Schema ETL
//
// Copyright (c) 2025 - 2026, the starload authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for starload.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/starload/starload/internal/config"
	"github.com/starload/starload/internal/logging"
	"github.com/starload/starload/internal/storage"
	"github.com/starload/starload/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string
	endpoint   string
	bucket     string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "starload",
		Short: "Star schema ETL for retail sales data",
		Long: `starload transforms raw transactional sales snapshots into a
dimensional star schema and persists the result twice: as CSV objects in
object storage and as relational tables in a PostgreSQL warehouse with
referential integrity.

Each run reprocesses a full input snapshot. Dimension loads are idempotent
across re-runs; fact loads are append-only.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./starload.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "",
		"object storage endpoint (host:port)")
	rootCmd.PersistentFlags().StringVar(&bucket, "bucket", "",
		"object storage bucket")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if endpoint != "" {
		cfg.Storage.Endpoint = endpoint
	}
	if bucket != "" {
		cfg.Storage.Bucket = bucket
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

func objectStore() (storage.ObjectStore, error) {
	return storage.New(storage.Config{
		Type:      storage.Type(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		LocalDir:  cfg.Storage.LocalDir,
	})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
