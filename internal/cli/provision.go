package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starload/starload/internal/db"
	"github.com/starload/starload/internal/warehouse"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the warehouse tables if they do not exist",
	Long: `Ensure the four star schema tables (DimDate, DimProduct,
DimCustomer, FactSales) exist in the warehouse with their primary and
foreign key constraints. Safe to run repeatedly.

The run command provisions automatically; this command exists so the
schema can be inspected or granted before the first load.`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateWarehouse(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	return warehouse.Provision(ctx, pool)
}
