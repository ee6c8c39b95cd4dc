package storage

import "context"

// Storage abstracts the cache store: the last-known-good forecast
// payload, process settings, email configuration, and scheduled-job
// bookkeeping. The production dataset itself lives in the flat JSON
// file managed by the dataset package, not here.
type Storage interface {
	// Forecast cache
	GetForecastCache(ctx context.Context) (*ForecastCache, error)
	SaveForecastCache(ctx context.Context, entry ForecastCache) error

	// Settings (string key/value; used for the stored forecast
	// credential and runtime overrides like the update interval)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Email notification configuration
	GetEmailConfig(ctx context.Context) (*EmailConfig, error)
	SaveEmailConfig(ctx context.Context, cfg EmailConfig) error

	// Scheduled job bookkeeping
	GetScheduledJob(ctx context.Context, name string) (*ScheduledJob, error)
	UpdateScheduledJob(ctx context.Context, name string, lastRun ScheduledJob) error

	Ping(ctx context.Context) error

	// Close releases any resources (no-op for in-memory).
	Close() error
}

// Well-known setting keys.
const (
	SettingForecastAPIKey    = "forecast_api_key"
	SettingUpdateInterval    = "update_interval"
	SettingAlertFailureCount = "alert_failure_count"
)
