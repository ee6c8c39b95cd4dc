package production

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func historyFixture(t *testing.T, handler http.HandlerFunc, cfg HistoryConfig) (*History, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL, SystemID: 1})
	return NewHistory(client, testBuilder(), cfg), srv
}

func TestRecordsReturnsRecentFirstThenMerged(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	h, _ := historyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("start_date") {
		case "2024-06-08": // recent window
			w.Write([]byte(`{"stats":[{"start_time":1717891200,"production":[100]}]}`))
		default: // bulk window
			w.Write([]byte(`{"stats":[{"start_time":1654041600,"production":[50]}]}`))
		}
	}, HistoryConfig{Start: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)})

	// First call may observe the recent window alone.
	first, complete := h.Records(context.Background(), now)
	if len(first) == 0 {
		t.Fatalf("expected at least the recent window")
	}

	// The merged result must eventually widen to include bulk.
	deadline := time.Now().Add(2 * time.Second)
	var merged []RawDailyRecord
	for {
		merged, complete = h.Records(context.Background(), now)
		if complete || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !complete {
		t.Fatalf("bulk window never resolved")
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged records, got %d", len(merged))
	}
	if merged[0].StartTime > merged[1].StartTime {
		t.Errorf("merged records not in ascending start-time order")
	}
}

func TestFetchWindowIsMemoizedAcrossConcurrentCallers(t *testing.T) {
	var calls int64
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	h, _ := historyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(20 * time.Millisecond) // widen the in-flight window
		w.Write([]byte(`{"stats":[{"start_time":1717891200,"production":[100]}]}`))
	}, HistoryConfig{Start: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)})

	_, recent := h.windows(now)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.fetchWindow(context.Background(), recent)
		}()
	}
	wg.Wait()

	// A later caller hits the memo, not the network.
	h.fetchWindow(context.Background(), recent)

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected exactly 1 upstream call, got %d", got)
	}
}

func TestFailedRangeContributesEmptySequence(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	h, _ := historyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start_date") == "2024-06-08" {
			w.WriteHeader(http.StatusInternalServerError) // recent fails
			return
		}
		w.Write([]byte(`{"stats":[{"start_time":1654041600,"production":[50]}]}`))
	}, HistoryConfig{Start: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)})

	records := h.All(context.Background(), now)
	if len(records) != 1 {
		t.Fatalf("expected bulk-only result, got %d records", len(records))
	}
	if records[0].StartTime != 1654041600 {
		t.Errorf("unexpected surviving record: %+v", records[0])
	}
}

func TestWindowsAreDisjointAndChronological(t *testing.T) {
	h := NewHistory(nil, testBuilder(), HistoryConfig{
		Start:      time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC),
		RecentDays: 5,
	})
	bulk, recent := h.windows(time.Date(2024, time.June, 12, 23, 0, 0, 0, time.UTC))

	if !bulk.end.Before(recent.start) {
		t.Errorf("windows overlap: bulk ends %s, recent starts %s", bulk.end, recent.start)
	}
	if got := recent.end.Sub(recent.start); got != 4*24*time.Hour {
		t.Errorf("recent window width: got %s", got)
	}
	if !recent.end.Equal(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("recent window should end today, got %s", recent.end)
	}
}

func TestSummarize(t *testing.T) {
	b := testBuilder()
	raw := weekdayRecord()
	stat, err := b.Build(raw)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	empty := ProductionStat{ProductionData: make([]*float64, 96)}
	s := Summarize([]ProductionStat{stat, empty, stat})

	if s.DaysWithData != 2 {
		t.Errorf("days with data: got %d, want 2", s.DaysWithData)
	}
	if s.TotalProduction != stat.Usage*2 {
		t.Errorf("total production: got %v", s.TotalProduction)
	}
	if s.ValuePerDay != s.TotalValue/2 {
		t.Errorf("per-day value: got %v", s.ValuePerDay)
	}
}
