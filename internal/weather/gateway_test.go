package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"site-widgets/internal/cache"
	"site-widgets/internal/settings"
	"site-widgets/internal/storage"

	"gorm.io/gorm"
)

const upstreamPayload = `{
	"city": {"name": "Neukalen"},
	"list": [
		{"dt": 1747000000, "main": {"temp": 12.3, "temp_min": 10.1, "temp_max": 14.2},
		 "weather": [{"main": "Clouds", "description": "bedeckt", "icon": "04d"}]}
	]
}`

type testEnv struct {
	db      *gorm.DB
	cache   *cache.Store
	gateway *Gateway
	calls   *atomic.Int64
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(upstream.Close)

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { storage.Close(db) })

	settingsStore, err := settings.Open(db, settings.Settings{
		APIKey:        "test-key",
		Latitude:      53.822,
		Longitude:     12.788,
		LocationName:  "Neukalen",
		ForecastDays:  3,
		CacheDuration: 30,
	})
	if err != nil {
		t.Fatalf("failed to open settings store: %v", err)
	}

	cacheStore, err := cache.Open(db)
	if err != nil {
		t.Fatalf("failed to open cache store: %v", err)
	}

	return &testEnv{
		db:      db,
		cache:   cacheStore,
		gateway: NewGateway(settingsStore, cacheStore, NewClient(upstream.URL)),
		calls:   &calls,
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(upstreamPayload))
}

func TestGatewayServesFromCacheWithinTTL(t *testing.T) {
	env := newTestEnv(t, okHandler)
	ctx := context.Background()

	first, err := env.gateway.Forecast(ctx)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := env.gateway.Forecast(ctx)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if got := env.calls.Load(); got != 1 {
		t.Errorf("upstream called %d times, want 1", got)
	}
	if first.City.Name != "Neukalen" || second.City.Name != "Neukalen" {
		t.Errorf("unexpected city names %q / %q", first.City.Name, second.City.Name)
	}
	if len(second.List) != 1 {
		t.Errorf("cached response has %d entries, want 1", len(second.List))
	}
}

func TestGatewayRefetchesAfterExpiry(t *testing.T) {
	env := newTestEnv(t, okHandler)
	ctx := context.Background()

	if _, err := env.gateway.Forecast(ctx); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}

	// Age the slot past its TTL.
	res := env.db.Model(&cache.Entry{}).
		Where("key = ?", CacheKey).
		Update("expires_at", time.Now().Add(-time.Minute))
	if res.Error != nil || res.RowsAffected != 1 {
		t.Fatalf("failed to expire cache slot: %v (rows %d)", res.Error, res.RowsAffected)
	}

	if _, err := env.gateway.Forecast(ctx); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if got := env.calls.Load(); got != 2 {
		t.Errorf("upstream called %d times, want 2", got)
	}
}

func TestGatewayClearCacheForcesRefetch(t *testing.T) {
	env := newTestEnv(t, okHandler)
	ctx := context.Background()

	if _, err := env.gateway.Forecast(ctx); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if err := env.gateway.ClearCache(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// Clearing twice is not an error.
	if err := env.gateway.ClearCache(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	if _, err := env.gateway.Forecast(ctx); err != nil {
		t.Fatalf("fetch after clear failed: %v", err)
	}
	if got := env.calls.Load(); got != 2 {
		t.Errorf("upstream called %d times, want 2", got)
	}
}

func TestGatewayNon200StatusNoCacheWrite(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := env.gateway.Forecast(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Detail != "API-Fehler: HTTP 401" {
		t.Errorf("Detail = %q, want %q", apiErr.Detail, "API-Fehler: HTTP 401")
	}

	if _, err := env.cache.Get(CacheKey); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("expected empty cache slot after failed fetch, got %v", err)
	}
}

func TestGatewayParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing entries list", `{"city": {"name": "Neukalen"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := env.gateway.Forecast(context.Background())
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestGatewayRequestParameters(t *testing.T) {
	var query map[string][]string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(upstreamPayload))
	})

	if _, err := env.gateway.Forecast(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	expect := map[string]string{
		"units": "metric",
		"lang":  "de",
		"appid": "test-key",
	}
	for key, want := range expect {
		if got := query[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
	if got := query["lat"]; len(got) != 1 || got[0] != "53.822000" {
		t.Errorf("query lat = %v, want 53.822000", got)
	}
	if got := query["lon"]; len(got) != 1 || got[0] != "12.788000" {
		t.Errorf("query lon = %v, want 12.788000", got)
	}
}
