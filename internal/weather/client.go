package weather

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	forecastDays   = 3
	userAgent      = "taskdeck-weather"

	meteoTimeLayout = "2006-01-02T15:04"
)

type meteoResponse struct {
	Hourly meteoHourly `json:"hourly"`
}

type meteoHourly struct {
	Time          []string  `json:"time"`
	Temperature2M []float64 `json:"temperature_2m"`
	WeatherCode   []int     `json:"weather_code"`
	IsDay         []int     `json:"is_day"`
}

// Client fetches hourly forecasts from open-meteo. It satisfies Fetcher.
type Client struct {
	http *resty.Client
}

// NewClient builds a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

// Fetch retrieves a 3-day hourly forecast for the given coordinates and
// buckets it by hour of day. Any failure is retryable.
func (c *Client) Fetch(coords Coordinates) (Forecast, error) {
	var payload meteoResponse
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"latitude":      fmt.Sprintf("%g", coords[0]),
			"longitude":     fmt.Sprintf("%g", coords[1]),
			"hourly":        "temperature_2m,weather_code,is_day",
			"timezone":      "auto",
			"forecast_days": fmt.Sprintf("%d", forecastDays),
		}).
		SetResult(&payload).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch forecast: unexpected status %s", resp.Status())
	}

	forecast := NewForecast()
	for i, raw := range payload.Hourly.Time {
		ts, err := time.Parse(meteoTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("parse forecast time %q: %w", raw, err)
		}
		hour := Hour{Time: ts.Format("15:04")}
		if i < len(payload.Hourly.Temperature2M) {
			hour.TempC = payload.Hourly.Temperature2M[i]
		}
		if i < len(payload.Hourly.WeatherCode) {
			hour.WeatherCode = payload.Hourly.WeatherCode[i]
		}
		if i < len(payload.Hourly.IsDay) {
			hour.IsDay = payload.Hourly.IsDay[i] == 1
		}
		bucket := i % 24
		forecast[bucket] = append(forecast[bucket], hour)
	}
	return forecast, nil
}
