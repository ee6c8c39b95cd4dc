package main

import (
	"github.com/spf13/cobra"

	"solartally/internal/config"
	"solartally/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status]",
	Short: "Manage the cache store schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	ctx := cmd.Context()

	switch args[0] {
	case "up":
		return migrate.Up(ctx, cfg.StorageDriver, cfg.StorageDSN)
	case "down":
		return migrate.Down(ctx, cfg.StorageDriver, cfg.StorageDSN)
	case "status":
		return migrate.Status(ctx, cfg.StorageDriver, cfg.StorageDSN)
	default:
		return cmd.Usage()
	}
}
