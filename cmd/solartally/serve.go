package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"solartally/internal/api"
)

var serveWithWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, API, and metrics",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "with-worker", true, "run the periodic update job in-process")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svcs, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer svcs.store.Close()

	if serveWithWorker {
		go func() {
			if err := svcs.worker.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("update worker stopped: %v", err)
			}
		}()
	}

	mux := api.NewMux(api.Deps{
		Production:   svcs.history,
		Forecast:     svcs.forecast,
		Refresher:    svcs.worker,
		Storage:      svcs.store,
		Notification: svcs.notifier,
		Rates:        svcs.cfg.Rates,
		Calendar:     svcs.calendar,
	})

	addr := ":" + svcs.cfg.Port
	log.Printf("solartally listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
