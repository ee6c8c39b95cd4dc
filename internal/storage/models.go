package storage

import "time"

// ForecastCache stores the last successful forecast payload together
// with its provenance, standing in for the browser local storage the
// original dashboard used.
type ForecastCache struct {
	Key        string    `json:"key" gorm:"primaryKey;column:key"`
	Payload    []byte    `json:"payload" gorm:"column:payload"`
	Provenance string    `json:"provenance" gorm:"column:provenance"`
	FetchedAt  time.Time `json:"fetched_at" gorm:"column:fetched_at"`
}

// ForecastCacheKey is the single key the forecast fallback chain uses.
const ForecastCacheKey = "forecast"

// Setting is a string key/value row.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;column:key"`
	Value     string    `json:"value" gorm:"column:value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// ScheduledJob records the outcome of the latest run of a named job.
type ScheduledJob struct {
	Name           string    `json:"name" gorm:"primaryKey;column:name"`
	LastRunAt      time.Time `json:"last_run_at" gorm:"column:last_run_at"`
	LastDurationMs int64     `json:"last_duration_ms" gorm:"column:last_duration_ms"`
	LastSuccess    bool      `json:"last_success" gorm:"column:last_success"`
	LastError      string    `json:"last_error" gorm:"column:last_error"`
	// ConsecutiveFailures counts runs since the last success, used to
	// decide when a failure alert fires.
	ConsecutiveFailures int `json:"consecutive_failures" gorm:"column:consecutive_failures"`
}

// EmailConfig holds configuration for email notifications.
type EmailConfig struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	Provider    string    `json:"provider" gorm:"column:provider"` // "smtp", "sendgrid", "gmail"
	Host        string    `json:"host,omitempty" gorm:"column:host"`
	Port        int       `json:"port,omitempty" gorm:"column:port"`
	Username    string    `json:"username,omitempty" gorm:"column:username"`
	Password    string    `json:"password,omitempty" gorm:"column:password"`
	FromAddress string    `json:"from_address" gorm:"column:from_address"`
	FromName    string    `json:"from_name" gorm:"column:from_name"`
	ToAddress   string    `json:"to_address" gorm:"column:to_address"`
	APIKey      string    `json:"api_key,omitempty" gorm:"column:api_key"` // For Sendgrid
	Enabled     bool      `json:"enabled" gorm:"column:enabled"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}
