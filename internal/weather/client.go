package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// Client fetches multi-day forecasts from the OpenWeatherMap forecast
// endpoint. TLS verification stays on the default transport; the only
// resilience is the request timeout, a failed fetch surfaces immediately.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchForecast issues a single GET against the forecast endpoint and
// classifies the outcome: transport failures and non-200 statuses become
// *APIError, undecodable or structurally incomplete bodies become *ParseError.
func (c *Client) FetchForecast(ctx context.Context, apiKey string, lat, lon float64) (*ForecastResponse, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.6f", lat))
	query.Set("lon", fmt.Sprintf("%.6f", lon))
	query.Set("units", "metric")
	query.Set("lang", "de")
	query.Set("appid", apiKey)

	endpoint := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Detail: "API-Verbindung fehlgeschlagen: " + err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Detail: "API-Verbindung fehlgeschlagen: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Detail: fmt.Sprintf("API-Fehler: HTTP %d", resp.StatusCode)}
	}

	var payload ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	if payload.List == nil {
		return nil, &ParseError{Err: fmt.Errorf("response is missing the entries list")}
	}

	return &payload, nil
}
