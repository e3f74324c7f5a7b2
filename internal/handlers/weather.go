package handlers

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/weather"
)

// WeatherHandler serves the latest published forecast snapshot.
type WeatherHandler struct {
	service *weather.Service
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(service *weather.Service) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetWeather returns the snapshot with its version counter so consumers can
// poll cheaply: re-fetch the body only when the version moved.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"version":  h.service.Version(),
		"forecast": h.service.Snapshot(),
	})
}
