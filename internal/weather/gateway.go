package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"site-widgets/internal/cache"
	"site-widgets/internal/settings"
)

// CacheKey names the single cache slot used for the whole widget. One slot
// regardless of coordinates: switching location does not invalidate the slot,
// the stale response simply ages out.
const CacheKey = "site_widgets_weather_data"

// Gateway serves forecast data from the cache slot, fetching from the
// upstream provider only when the slot is cold or expired.
type Gateway struct {
	settings *settings.Store
	cache    *cache.Store
	client   *Client
}

func NewGateway(settings *settings.Store, cache *cache.Store, client *Client) *Gateway {
	return &Gateway{
		settings: settings,
		cache:    cache,
		client:   client,
	}
}

// Forecast returns the cached response verbatim when the slot is live,
// otherwise performs exactly one upstream call and, on success, overwrites
// the slot with the configured TTL. Fetch errors are returned unclassified
// and nothing is written.
func (g *Gateway) Forecast(ctx context.Context) (*ForecastResponse, error) {
	cfg := g.settings.Current()

	if raw, err := g.cache.Get(CacheKey); err == nil {
		var cached ForecastResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// Undecodable slot content: fall through and refetch.
		log.Printf("discarding undecodable cache slot %s", CacheKey)
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Printf("cache read failed: %v", err)
	}

	resp, err := g.client.FetchForecast(ctx, cfg.APIKey, cfg.Latitude, cfg.Longitude)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp)
	if err == nil {
		ttl := time.Duration(cfg.CacheDuration) * time.Minute
		if err := g.cache.Set(CacheKey, raw, ttl); err != nil {
			log.Printf("cache write failed: %v", err)
		}
	}

	return resp, nil
}

// ClearCache deletes the slot unconditionally. Idempotent.
func (g *Gateway) ClearCache() error {
	return g.cache.Delete(CacheKey)
}
