package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"solartally/internal/alerting"
	"solartally/internal/config"
	"solartally/internal/dataset"
	"solartally/internal/forecast"
	"solartally/internal/gitops"
	"solartally/internal/migrate"
	"solartally/internal/notification"
	"solartally/internal/production"
	"solartally/internal/storage"
	"solartally/internal/tariff"
	"solartally/internal/updater"
)

var rootCmd = &cobra.Command{
	Use:   "solartally",
	Short: "Solar production dashboard with time-of-use cost accounting",
	Long: `solartally tracks a solar installation's production, prices every
15-minute interval against a time-of-use tariff schedule, keeps the
historical dataset up to date, and serves a dashboard with forecasts.`,
}

// services bundles everything the subcommands share.
type services struct {
	cfg      config.Config
	store    storage.Storage
	dataset  *dataset.Store
	history  *production.History
	forecast *forecast.Fetcher
	worker   *updater.Worker
	notifier *notification.Service
	calendar *tariff.HolidayCalendar
}

// buildServices wires the full service graph from configuration. The
// cache store falls back to memory when the configured backend cannot
// be opened, so a broken sqlite file never takes the dashboard down.
func buildServices(ctx context.Context) (*services, error) {
	cfg := config.FromEnv()

	if cfg.AutoMigrate && cfg.StorageDriver != "memory" {
		if err := migrate.Up(ctx, cfg.StorageDriver, cfg.StorageDSN); err != nil {
			log.Printf("auto-migration failed: %v", err)
		}
	}

	st, err := storage.Open(ctx, storage.Config{Driver: cfg.StorageDriver, DSN: cfg.StorageDSN})
	if err != nil {
		log.Printf("storage.Open failed (driver=%s dsn=%s): %v; falling back to memory", cfg.StorageDriver, cfg.StorageDSN, err)
		st = storage.NewMemory()
	}

	client := production.NewClient(production.ClientConfig{
		BaseURL:  cfg.ProductionBaseURL,
		ProxyURL: cfg.ProductionProxy,
		SystemID: cfg.SystemID,
	})
	calendar := tariff.NewHolidayCalendar()
	builder := production.NewBuilder(cfg.Rates, calendar)
	history := production.NewHistory(client, builder, production.HistoryConfig{
		Start:      cfg.HistoryStart,
		RecentDays: cfg.RecentDays,
	})

	site := forecast.Site{
		Latitude:    cfg.SiteLatitude,
		Longitude:   cfg.SiteLongitude,
		Declination: cfg.SiteDeclination,
		Azimuth:     cfg.SiteAzimuth,
		MaxKW:       cfg.SiteMaxKW,
	}
	if site.Declination == 0 {
		site.Declination = forecast.SolarDeclination(time.Now())
	}
	fetcher := forecast.NewFetcher(
		forecast.NewClient(forecast.ClientConfig{BaseURL: cfg.ForecastBaseURL, Site: site}),
		st,
		cfg.ForecastAPIKey,
	)

	var git *gitops.Committer
	if cfg.GitPublish {
		git = gitops.NewCommitter(true, cfg.GitRepoDir)
	}
	alerter := alerting.NewAlerter(alerting.DefaultAlertConfig())
	notifier := notification.NewService(st)

	ds := dataset.NewStore(cfg.DataFilePath)
	worker := updater.NewWorker(client, ds, st, git, alerter, notifier, cfg.UpdateInterval)

	return &services{
		cfg:      cfg,
		store:    st,
		dataset:  ds,
		history:  history,
		forecast: fetcher,
		worker:   worker,
		notifier: notifier,
		calendar: calendar,
	}, nil
}
