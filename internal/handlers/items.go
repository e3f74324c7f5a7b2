package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/planner"
	"github.com/taskdeck/taskdeck/internal/validation"
)

const (
	// MaxItemNameLength is the maximum length for an item name
	MaxItemNameLength = 200
)

// ItemHandler handles active-item requests
type ItemHandler struct {
	planner *planner.Planner
	logger  *zap.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(p *planner.Planner, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{planner: p, logger: logger}
}

// RegisterRoutes registers item routes on the given router.
// The router should already have the /items prefix.
func (h *ItemHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListItems).Methods("GET")
	r.HandleFunc("", h.CreateItem).Methods("POST")
	r.HandleFunc("/{name}/complete", h.CompleteItem).Methods("POST")
	r.HandleFunc("/{name}", h.DeleteItem).Methods("DELETE")
}

// CreateItemRequest represents a create item request
type CreateItemRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=200"`
	Importance     *int       `json:"importance" validate:"omitempty,min=0,max=4"`
	TimeImportance *int       `json:"time_importance" validate:"omitempty,min=0,max=2"`
	Deadline       *time.Time `json:"deadline"`
	IsEvent        bool       `json:"is_event"`
}

// ListItems returns the task-only view of the active set in priority order.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	summary := h.planner.Summarize(time.Now())
	respondJSON(w, http.StatusOK, summary.Tasks)
}

// CreateItem adds a new task or event to the active set.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Name = validation.SanitizeName(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required and cannot be empty after sanitization")
		return
	}
	if len(req.Name) > MaxItemNameLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Name exceeds maximum length of %d characters", MaxItemNameLength))
		return
	}

	// Events always carry a deadline; inventing one would corrupt calendar
	// placement, so reject instead.
	if req.IsEvent && req.Deadline == nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Events require a deadline")
		return
	}
	if req.IsEvent && (req.Importance != nil || req.TimeImportance != nil) {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Events carry no importance fields")
		return
	}

	if !h.planner.NameIsUnique(req.Name) {
		respondJSONError(w, http.StatusConflict, "Conflict", "An active item with this name already exists")
		return
	}

	item := models.Item{
		Name:           req.Name,
		Importance:     req.Importance,
		TimeImportance: req.TimeImportance,
		Created:        time.Now(),
		Deadline:       req.Deadline,
		IsEvent:        req.IsEvent,
	}

	if _, err := h.planner.Add(item, time.Now()); err != nil {
		// In-memory state is already updated; report the persistence failure.
		h.logger.Error("item_persist_failed", zap.String("name", item.Name), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Item added but saving failed")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// CompleteItem archives an item and removes it from the active set.
func (h *ItemHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	_, err := h.planner.Complete(name, time.Now())
	if errors.Is(err, planner.ErrNotFound) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Item not found")
		return
	}
	if err != nil {
		h.logger.Error("item_complete_persist_failed", zap.String("name", name), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Item completed but saving failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"name": name, "status": "archived"})
}

// DeleteItem removes an item from the active set without archiving it.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	_, err := h.planner.Delete(name, time.Now())
	if errors.Is(err, planner.ErrNotFound) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Item not found")
		return
	}
	if err != nil {
		h.logger.Error("item_delete_persist_failed", zap.String("name", name), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Item deleted but saving failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"name": name, "status": "deleted"})
}
