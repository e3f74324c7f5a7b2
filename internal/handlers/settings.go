package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/planner"
	"github.com/taskdeck/taskdeck/internal/settings"
	"github.com/taskdeck/taskdeck/internal/weather"
)

// SettingsHandler reads and updates the persisted user settings, propagating
// changes to the planner window and the weather service.
type SettingsHandler struct {
	manager *settings.Manager
	planner *planner.Planner
	weather *weather.Service
	logger  *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(m *settings.Manager, p *planner.Planner, w *weather.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{manager: m, planner: p, weather: w, logger: logger}
}

// UpdateSettingsRequest represents a settings patch; absent fields are left
// unchanged.
type UpdateSettingsRequest struct {
	CalendarWeeksToShow *int        `json:"calendar_weeks_to_show" validate:"omitempty,min=1"`
	Coordinates         *[2]float32 `json:"coordinates"`
}

// GetSettings returns the current settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Get())
}

// PatchSettings applies a partial update, persists it, and reconfigures the
// dependent components.
func (h *SettingsHandler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	updated, err := h.manager.Update(func(s *settings.Settings) {
		if req.CalendarWeeksToShow != nil {
			s.CalendarWeeksToShow = *req.CalendarWeeksToShow
		}
		if req.Coordinates != nil {
			s.Coordinates = *req.Coordinates
		}
	})
	if err != nil {
		// In-memory settings are applied; only the file write failed.
		h.logger.Error("settings_persist_failed", zap.Error(err))
	}

	h.planner.SetWeeks(updated.CalendarWeeksToShow)
	if req.Coordinates != nil && h.weather != nil {
		h.weather.SetCoordinates(weather.Coordinates(updated.Coordinates))
	}

	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Settings applied but saving failed")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
