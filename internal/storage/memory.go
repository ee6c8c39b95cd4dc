package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation, useful for
// tests and cache-less single-process deployments.
type MemoryStorage struct {
	mu          sync.RWMutex
	caches      map[string]ForecastCache
	settings    map[string]string
	jobs        map[string]ScheduledJob
	emailConfig *EmailConfig
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		caches:   make(map[string]ForecastCache),
		settings: make(map[string]string),
		jobs:     make(map[string]ScheduledJob),
	}
}

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (m *MemoryStorage) GetForecastCache(ctx context.Context) (*ForecastCache, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.caches[ForecastCacheKey]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (m *MemoryStorage) SaveForecastCache(ctx context.Context, entry ForecastCache) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.Key = ForecastCacheKey
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now()
	}
	m.caches[entry.Key] = entry
	return nil
}

func (m *MemoryStorage) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *MemoryStorage) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MemoryStorage) GetEmailConfig(ctx context.Context) (*EmailConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.emailConfig == nil {
		return nil, nil
	}
	cp := *m.emailConfig
	return &cp, nil
}

func (m *MemoryStorage) SaveEmailConfig(ctx context.Context, cfg EmailConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailConfig = &cfg
	return nil
}

func (m *MemoryStorage) GetScheduledJob(ctx context.Context, name string) (*ScheduledJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[name]
	if !ok {
		return nil, nil
	}
	cp := j
	return &cp, nil
}

func (m *MemoryStorage) UpdateScheduledJob(ctx context.Context, name string, lastRun ScheduledJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lastRun.Name = name
	m.jobs[name] = lastRun
	return nil
}
