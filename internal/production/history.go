package production

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"solartally/internal/tariff"
)

// DefaultRecentDays is the width of the still-mutable recent window.
// Upstream gives no guarantee for how long a day's data stays mutable;
// five days is a heuristic bound, configurable rather than load-bearing.
const DefaultRecentDays = 5

// HistoryConfig configures the windowed history synchronizer.
type HistoryConfig struct {
	// Start is the first day of recorded history (bulk window start).
	Start time.Time
	// RecentDays is the width of the recent window. Defaults to
	// DefaultRecentDays.
	RecentDays int
}

// History assembles the full production history from two windows: a
// stable bulk range and a still-mutable recent range. Each range is
// fetched at most once per range descriptor per process lifetime;
// concurrent callers share the in-flight fetch. A failed range
// contributes an empty sequence rather than failing the assembly.
type History struct {
	client  *Client
	builder *Builder
	cfg     HistoryConfig

	group   singleflight.Group
	mu      sync.RWMutex
	results map[string][]RawDailyRecord
}

func NewHistory(client *Client, builder *Builder, cfg HistoryConfig) *History {
	if cfg.RecentDays <= 0 {
		cfg.RecentDays = DefaultRecentDays
	}
	return &History{
		client:  client,
		builder: builder,
		cfg:     cfg,
		results: make(map[string][]RawDailyRecord),
	}
}

// window is one fetch range, closed on both ends.
type window struct {
	start, end time.Time
}

func (w window) key() string {
	return w.start.Format(dateLayout) + ".." + w.end.Format(dateLayout)
}

// windows computes the bulk and recent ranges for the given day. The
// ranges are disjoint and chronological: bulk strictly precedes recent.
func (h *History) windows(now time.Time) (bulk, recent window) {
	today := now.UTC().Truncate(24 * time.Hour)
	recent = window{start: today.AddDate(0, 0, -(h.cfg.RecentDays - 1)), end: today}
	bulk = window{start: h.cfg.Start, end: recent.start.AddDate(0, 0, -1)}
	return bulk, recent
}

// Records returns the merged history for the day containing now. The
// recent window is always fetched (or read from the memo) before
// returning; if the bulk window has not resolved yet its fetch is
// started and the recent data is returned alone with complete=false.
// Callers must tolerate the same logical query widening across calls.
func (h *History) Records(ctx context.Context, now time.Time) (records []RawDailyRecord, complete bool) {
	bulk, recent := h.windows(now)

	recentRecords := h.fetchWindow(ctx, recent)

	bulkRecords, resolved := h.resolved(bulk.key())
	if !resolved {
		go h.fetchWindow(context.Background(), bulk)
		return recentRecords, false
	}

	merged := make([]RawDailyRecord, 0, len(bulkRecords)+len(recentRecords))
	merged = append(merged, bulkRecords...)
	merged = append(merged, recentRecords...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartTime < merged[j].StartTime
	})
	return merged, true
}

// All blocks until both windows have resolved and returns the merged
// history.
func (h *History) All(ctx context.Context, now time.Time) []RawDailyRecord {
	bulk, recent := h.windows(now)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { h.fetchWindow(gctx, bulk); return nil })
	g.Go(func() error { h.fetchWindow(gctx, recent); return nil })
	_ = g.Wait()

	records, _ := h.Records(ctx, now)
	return records
}

// Stats derives cost-classified stats for the merged history.
func (h *History) Stats(ctx context.Context, now time.Time) ([]ProductionStat, bool, error) {
	records, complete := h.Records(ctx, now)
	stats, err := h.builder.BuildAll(records)
	if err != nil {
		return nil, complete, err
	}
	return stats, complete, nil
}

// resolved returns the memoized result for a range key, if any.
func (h *History) resolved(key string) ([]RawDailyRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	res, ok := h.results[key]
	return res, ok
}

// fetchWindow returns the records for a range, fetching at most once
// per range descriptor. Concurrent callers attach to the same in-flight
// fetch. Failures are memoized as an empty result; a poll after process
// restart retries them.
func (h *History) fetchWindow(ctx context.Context, w window) []RawDailyRecord {
	key := w.key()

	if res, ok := h.resolved(key); ok {
		return res
	}

	v, _, _ := h.group.Do(key, func() (interface{}, error) {
		records, err := h.client.DailyEnergy(ctx, w.start, w.end)
		if err != nil {
			log.Printf("history: range %s fetch failed: %v", key, err)
			records = nil
		}

		h.mu.Lock()
		h.results[key] = records
		h.mu.Unlock()
		return records, nil
	})

	records, _ := v.([]RawDailyRecord)
	return records
}

// Summary aggregates a stat series for display.
type Summary struct {
	TotalProduction tariff.WattHours `json:"totalProduction"`
	TotalValue      tariff.Dollars   `json:"totalValue"`
	DaysWithData    int              `json:"daysWithData"`
	ValuePerDay     tariff.Dollars   `json:"valuePerDay"`
}

// Summarize computes lifetime totals and the per-day dollar average
// over days that produced value.
func Summarize(stats []ProductionStat) Summary {
	var s Summary
	for _, stat := range stats {
		s.TotalProduction += stat.Usage
		s.TotalValue += stat.Total
		if stat.Total > 0 {
			s.DaysWithData++
		}
	}
	if s.DaysWithData > 0 {
		s.ValuePerDay = s.TotalValue / tariff.Dollars(s.DaysWithData)
	}
	return s
}
