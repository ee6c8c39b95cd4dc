package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one dataset update and exit",
	Long: `Fetches today's production from the upstream API, merges it into the
dataset file, and publishes the result. Intended for cron or CI use.`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svcs, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer svcs.store.Close()

	now := time.Now().UTC()
	fmt.Printf("Updating at %s\n", now.Format(time.RFC1123))
	if err := svcs.worker.RunOnce(ctx, now); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	fmt.Printf("Finished update at %s\n", time.Now().UTC().Format(time.RFC1123))
	return nil
}
