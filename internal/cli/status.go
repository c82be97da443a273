package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/starload/starload/internal/db"
)

var statusKey string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bookkeeping from the last successful run",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusKey, "key", "",
		"print a single metadata value (e.g. last_run_at) instead of all")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateWarehouse(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		cmd.Println("No run recorded yet.")
		return nil
	}

	if statusKey != "" {
		value, err := db.GetMetadataValue(ctx, pool, statusKey)
		if err != nil {
			return fmt.Errorf("failed to read metadata %s: %w", statusKey, err)
		}
		cmd.Println(value)
		return nil
	}

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cmd.Printf("%-18s %s\n", key, metadata[key])
	}
	return nil
}
