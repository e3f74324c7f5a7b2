package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/internal/planner"
	"github.com/taskdeck/taskdeck/internal/settings"
)

// PlanHandler serves the aggregated calendar view.
type PlanHandler struct {
	planner *planner.Planner
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(p *planner.Planner) *PlanHandler {
	return &PlanHandler{planner: p}
}

// GetPlan returns the day cells, month switches, and priority-ordered task
// list. An optional weeks query overrides the configured window for this
// request only.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	if raw := r.URL.Query().Get("weeks"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "weeks must be an integer")
			return
		}
		respondJSON(w, http.StatusOK, h.planner.SummarizeWeeks(now, settings.ClampWeeks(weeks)))
		return
	}

	respondJSON(w, http.StatusOK, h.planner.Summarize(now))
}
