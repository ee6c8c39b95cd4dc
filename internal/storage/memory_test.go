package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryForecastCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	defer m.Close()

	got, err := m.GetForecastCache(ctx)
	if err != nil {
		t.Fatalf("GetForecastCache failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil entry before first save, got %+v", got)
	}

	entry := ForecastCache{
		Payload:    []byte(`{"result":{}}`),
		Provenance: "Personal",
		FetchedAt:  time.Now(),
	}
	if err := m.SaveForecastCache(ctx, entry); err != nil {
		t.Fatalf("SaveForecastCache failed: %v", err)
	}

	got, err = m.GetForecastCache(ctx)
	if err != nil {
		t.Fatalf("GetForecastCache failed: %v", err)
	}
	if got == nil || got.Provenance != "Personal" {
		t.Fatalf("cache entry mismatch: %+v", got)
	}
	if string(got.Payload) != `{"result":{}}` {
		t.Errorf("payload mismatch: %s", got.Payload)
	}
}

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	v, err := m.GetSetting(ctx, SettingForecastAPIKey)
	if err != nil || v != "" {
		t.Fatalf("expected empty setting, got %q err=%v", v, err)
	}

	if err := m.SetSetting(ctx, SettingForecastAPIKey, "abc123"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, err = m.GetSetting(ctx, SettingForecastAPIKey)
	if err != nil || v != "abc123" {
		t.Fatalf("setting round trip failed: %q err=%v", v, err)
	}
}

func TestMemoryScheduledJob(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.UpdateScheduledJob(ctx, "update_dataset", ScheduledJob{
		LastRunAt:           time.Now(),
		LastSuccess:         false,
		LastError:           "upstream returned status 502",
		ConsecutiveFailures: 3,
	}); err != nil {
		t.Fatalf("UpdateScheduledJob failed: %v", err)
	}

	job, err := m.GetScheduledJob(ctx, "update_dataset")
	if err != nil {
		t.Fatalf("GetScheduledJob failed: %v", err)
	}
	if job == nil || job.Name != "update_dataset" || job.ConsecutiveFailures != 3 {
		t.Fatalf("job mismatch: %+v", job)
	}
}
