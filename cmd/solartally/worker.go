package main

import (
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the periodic update job without the HTTP server",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svcs, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer svcs.store.Close()

	return svcs.worker.Run(ctx)
}
