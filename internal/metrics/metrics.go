package metrics

import (
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    RequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "solartally_requests_total",
            Help: "Total number of API requests per path",
        },
        []string{"path"},
    )

    RequestDurationSeconds = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "solartally_request_duration_seconds",
            Help:    "Request duration in seconds per path",
            Buckets: prometheus.DefBuckets,
        },
        []string{"path"},
    )

    RequestErrorsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "solartally_request_errors_total",
            Help: "Total number of error responses per path and code",
        },
        []string{"path", "code"},
    )

    // FetchAttemptsTotal counts upstream fetch attempts per data source
    // (production, forecast), tier, and outcome.
    FetchAttemptsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "solartally_fetch_attempts_total",
            Help: "Upstream fetch attempts per source, tier, and outcome",
        },
        []string{"source", "tier", "outcome"},
    )

    DatasetRecords = promauto.NewGauge(
        prometheus.GaugeOpts{
            Name: "solartally_dataset_records",
            Help: "Number of day records in the persisted dataset",
        },
    )
)

var (
    ScheduledJobLastRun = promauto.NewGaugeVec(
        prometheus.GaugeOpts{
            Name: "solartally_job_last_run_timestamp",
            Help: "Unix timestamp of the last completed run for a job",
        },
        []string{"job"},
    )

    ScheduledJobLastDurationSeconds = promauto.NewGaugeVec(
        prometheus.GaugeOpts{
            Name: "solartally_job_last_duration_seconds",
            Help: "Duration of the last completed run for a job",
        },
        []string{"job"},
    )

    ScheduledJobFailuresTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "solartally_job_failures_total",
            Help: "Total number of failed executions per job",
        },
        []string{"job"},
    )
)

func UpdateJobMetrics(job string, startedAt time.Time, err error) {
    dur := time.Since(startedAt).Seconds()
    ScheduledJobLastDurationSeconds.WithLabelValues(job).Set(dur)
    ScheduledJobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
    if err != nil {
        ScheduledJobFailuresTotal.WithLabelValues(job).Inc()
    }
}
