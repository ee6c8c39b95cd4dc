package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"solartally/internal/metrics"
	"solartally/internal/storage"
)

// ErrNoDataAvailable reports that every tier of the fallback chain,
// including the cache, came up empty. It is the only failure the
// fetcher surfaces.
var ErrNoDataAvailable = errors.New("forecast: no data available from any source")

// Fetcher walks the ordered fallback chain: the authenticated endpoint
// when a credential is available, then the public endpoint, then the
// last persisted payload. Endpoint successes are written back to the
// cache store so the cache tier always holds the last known good data.
type Fetcher struct {
	client *Client
	store  storage.Storage
	// apiKey is the configured credential; when empty the stored one
	// is used if present.
	apiKey string
}

func NewFetcher(client *Client, store storage.Storage, apiKey string) *Fetcher {
	return &Fetcher{client: client, store: store, apiKey: apiKey}
}

// attempt is one tier of the chain.
type attempt struct {
	provenance Provenance
	run        func(ctx context.Context) (*Payload, error)
}

// Fetch returns the first usable payload and where it came from. Tier
// failures are logged and swallowed; only a fully exhausted chain
// returns an error.
func (f *Fetcher) Fetch(ctx context.Context) (*Payload, Provenance, error) {
	for _, a := range f.attempts(ctx) {
		payload, err := a.run(ctx)
		if err != nil {
			log.Printf("forecast: %s tier failed: %v", a.provenance, err)
			metrics.FetchAttemptsTotal.WithLabelValues("forecast", string(a.provenance), "failure").Inc()
			continue
		}
		metrics.FetchAttemptsTotal.WithLabelValues("forecast", string(a.provenance), "success").Inc()
		return payload, a.provenance, nil
	}
	return nil, "", ErrNoDataAvailable
}

// attempts builds the ordered tier list for this fetch.
func (f *Fetcher) attempts(ctx context.Context) []attempt {
	var list []attempt

	if key := f.credential(ctx); key != "" {
		list = append(list, attempt{
			provenance: ProvenancePersonal,
			run: func(ctx context.Context) (*Payload, error) {
				payload, err := f.client.Estimate(ctx, key)
				if err != nil {
					return nil, err
				}
				f.persist(ctx, payload, ProvenancePersonal)
				f.persistCredential(ctx, key)
				return payload, nil
			},
		})
	}

	list = append(list, attempt{
		provenance: ProvenancePublic,
		run: func(ctx context.Context) (*Payload, error) {
			payload, err := f.client.Estimate(ctx, "")
			if err != nil {
				return nil, err
			}
			f.persist(ctx, payload, ProvenancePublic)
			return payload, nil
		},
	})

	list = append(list, attempt{
		provenance: ProvenanceCached,
		run:        f.readCache,
	})

	return list
}

// credential resolves the API key: explicit configuration wins, then
// the stored credential from a previous successful personal fetch.
func (f *Fetcher) credential(ctx context.Context) string {
	if f.apiKey != "" {
		return f.apiKey
	}
	if f.store == nil {
		return ""
	}
	stored, err := f.store.GetSetting(ctx, storage.SettingForecastAPIKey)
	if err != nil {
		log.Printf("forecast: read stored credential: %v", err)
		return ""
	}
	return stored
}

// persist writes the payload back to the cache store. Best effort: a
// cache write failure never fails a successful fetch.
func (f *Fetcher) persist(ctx context.Context, payload *Payload, prov Provenance) {
	if f.store == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := f.store.SaveForecastCache(ctx, storage.ForecastCache{
		Payload:    raw,
		Provenance: string(prov),
	}); err != nil {
		log.Printf("forecast: cache write failed: %v", err)
	}
}

func (f *Fetcher) persistCredential(ctx context.Context, key string) {
	if f.store == nil || f.apiKey == "" {
		return
	}
	if err := f.store.SetSetting(ctx, storage.SettingForecastAPIKey, key); err != nil {
		log.Printf("forecast: credential write failed: %v", err)
	}
}

func (f *Fetcher) readCache(ctx context.Context) (*Payload, error) {
	if f.store == nil {
		return nil, errors.New("no cache store configured")
	}
	entry, err := f.store.GetForecastCache(ctx)
	if err != nil {
		return nil, err
	}
	if entry == nil || len(entry.Payload) == 0 {
		return nil, errors.New("cache is empty")
	}

	var payload Payload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
