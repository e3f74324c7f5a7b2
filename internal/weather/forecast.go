// Package weather keeps an hourly forecast fresh in the background. A single
// worker goroutine fetches on a timer with bounded retries and publishes into
// a versioned snapshot; consumers poll the version counter and only pay the
// clone cost when it has advanced.
package weather

// Hour is one hourly forecast reading.
type Hour struct {
	Time        string  `json:"time"`
	TempC       float64 `json:"temp_c"`
	WeatherCode int     `json:"weather_code"`
	IsDay       bool    `json:"is_day"`
}

// Forecast groups hourly readings into 24 hour-of-day buckets, one entry per
// forecast day. Bucket 0 holds every midnight reading, bucket 13 every 13:00
// reading, and so on.
type Forecast [][]Hour

// NewForecast returns an empty 24-bucket forecast.
func NewForecast() Forecast {
	return make(Forecast, 24)
}

// Clone deep-copies the forecast so consumers can hold it without touching
// the shared snapshot.
func (f Forecast) Clone() Forecast {
	out := make(Forecast, len(f))
	for i, bucket := range f {
		out[i] = append([]Hour(nil), bucket...)
	}
	return out
}

// Coordinates is a latitude/longitude pair.
type Coordinates [2]float32
