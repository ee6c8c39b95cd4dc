// Package updater runs the incremental dataset update job: pull
// today's production from the upstream API, merge it into the flat
// JSON dataset, and publish the result.
package updater

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"solartally/internal/alerting"
	"solartally/internal/dataset"
	"solartally/internal/gitops"
	"solartally/internal/metrics"
	"solartally/internal/notification"
	"solartally/internal/production"
	"solartally/internal/storage"
)

// JobName identifies the update job in metrics and the scheduled_jobs
// table.
const JobName = "update_dataset"

// Worker owns the periodic update loop.
type Worker struct {
	client   *production.Client
	store    *dataset.Store
	cache    storage.Storage
	git      *gitops.Committer
	alerter  *alerting.Alerter
	notifier *notification.Service
	// interval is the initial schedule setting: integer seconds or a
	// cron expression. The stored update_interval setting overrides
	// it at runtime.
	interval string
}

func NewWorker(client *production.Client, store *dataset.Store, cache storage.Storage, git *gitops.Committer, alerter *alerting.Alerter, notifier *notification.Service, interval string) *Worker {
	if interval == "" {
		interval = "900"
	}
	return &Worker{
		client:   client,
		store:    store,
		cache:    cache,
		git:      git,
		alerter:  alerter,
		notifier: notifier,
		interval: interval,
	}
}

// RunOnce performs a single update: fetch today's records, merge them
// into the dataset, write it back, and publish. A fetch failure aborts
// the run before the dataset is touched, so a flaky upstream can never
// corrupt or truncate the file.
func (w *Worker) RunOnce(ctx context.Context, now time.Time) error {
	incoming, err := w.client.Today(ctx, now)
	if err != nil {
		return err
	}

	current, err := w.store.Load()
	if err != nil {
		return err
	}

	merged := dataset.Merge(current, incoming)
	if err := w.store.Save(merged); err != nil {
		return err
	}
	metrics.DatasetRecords.Set(float64(len(merged.Stats)))

	if w.git != nil {
		if err := w.git.Publish(ctx, w.store.Path(), now); err != nil {
			return err
		}
	}

	log.Printf("updater: merged %d incoming records, dataset now holds %d", len(incoming), len(merged.Stats))
	return nil
}

// Run drives the update job on a control-loop ticker. The loop wakes
// every 10 seconds, picks up interval overrides from the settings
// store, and executes the job when its next run time has passed.
func (w *Worker) Run(ctx context.Context) error {
	intervalSetting := w.interval
	if val, err := w.getSetting(ctx, storage.SettingUpdateInterval); err == nil && val != "" {
		intervalSetting = val
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	// If starting fresh, run immediately, then schedule next.
	nextRun := time.Now()

	log.Printf("updater: worker starting, initial setting=%q dataset=%s", intervalSetting, w.store.Path())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if val, err := w.getSetting(ctx, storage.SettingUpdateInterval); err == nil && val != "" && val != intervalSetting {
				log.Printf("updater: interval updated from %q to %q", intervalSetting, val)
				intervalSetting = val
				nextRun = getNextRun(intervalSetting, time.Now())
			}

			if time.Now().Before(nextRun) {
				continue
			}

			started := time.Now()
			runErr := w.RunOnce(ctx, started)
			metrics.UpdateJobMetrics(JobName, started, runErr)
			w.recordRun(ctx, started, time.Since(started), runErr)

			if runErr != nil {
				log.Printf("updater: job completed with error: %v (duration=%s)", runErr, time.Since(started))
			} else {
				log.Printf("updater: job completed successfully (duration=%s)", time.Since(started))
			}

			nextRun = getNextRun(intervalSetting, time.Now())
		}
	}
}

// recordRun persists the job outcome and fires an alert once failures
// accumulate past the alerter's threshold.
func (w *Worker) recordRun(ctx context.Context, started time.Time, dur time.Duration, runErr error) {
	if w.cache == nil {
		return
	}

	failures := 0
	if prev, err := w.cache.GetScheduledJob(ctx, JobName); err == nil && prev != nil {
		failures = prev.ConsecutiveFailures
	}

	job := storage.ScheduledJob{
		Name:           JobName,
		LastRunAt:      started,
		LastDurationMs: dur.Milliseconds(),
		LastSuccess:    runErr == nil,
	}
	if runErr != nil {
		job.LastError = runErr.Error()
		job.ConsecutiveFailures = failures + 1
	}

	if err := w.cache.UpdateScheduledJob(ctx, JobName, job); err != nil {
		log.Printf("updater: update scheduled job failed: %v", err)
	}

	if runErr != nil && w.alerter != nil {
		if err := w.alerter.SendJobAlert(ctx, alerting.JobAlert{
			JobName:             JobName,
			Error:               runErr.Error(),
			ConsecutiveFailures: job.ConsecutiveFailures,
			Duration:            dur,
			Timestamp:           started,
		}); err != nil {
			log.Printf("updater: send alert failed: %v", err)
		}
	}

	// Email is noisier than a webhook, so it only fires once the
	// failure streak crosses the configured threshold exactly.
	if runErr != nil && w.notifier != nil && job.ConsecutiveFailures == w.emailThreshold(ctx) {
		subject := "solartally: dataset updates are failing"
		body := fmt.Sprintf("<p>The %s job has failed %d times in a row.</p><p>Last error: %s</p>",
			JobName, job.ConsecutiveFailures, runErr.Error())
		if err := w.notifier.SendEmail(ctx, "", subject, body); err != nil {
			log.Printf("updater: send failure email: %v", err)
		}
	}
}

// emailThreshold reads the stored alert_failure_count setting, falling
// back to three consecutive failures.
func (w *Worker) emailThreshold(ctx context.Context) int {
	const def = 3
	raw, err := w.getSetting(ctx, storage.SettingAlertFailureCount)
	if err != nil || raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (w *Worker) getSetting(ctx context.Context, key string) (string, error) {
	if w.cache == nil {
		return "", nil
	}
	return w.cache.GetSetting(ctx, key)
}

// getNextRun calculates the next run time from a schedule setting that
// is either integer seconds or a standard cron expression.
func getNextRun(setting string, lastRun time.Time) time.Time {
	if v, err := strconv.Atoi(setting); err == nil && v > 0 {
		return lastRun.Add(time.Duration(v) * time.Second)
	}
	if sched, err := cron.ParseStandard(setting); err == nil {
		return sched.Next(lastRun)
	}
	// Fallback to the original dashboard's 15 minute cadence.
	return lastRun.Add(15 * time.Minute)
}
