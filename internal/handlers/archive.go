package handlers

import (
	"net/http"
	"strconv"

	"github.com/taskdeck/taskdeck/internal/planner"
)

const (
	// DefaultArchivePageSize is the archive pagination stride.
	DefaultArchivePageSize = 15
	// MaxArchivePageSize caps a single archive page
	MaxArchivePageSize = 100
)

// ArchiveHandler serves completed items, most recent first.
type ArchiveHandler struct {
	store planner.Store
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(store planner.Store) *ArchiveHandler {
	return &ArchiveHandler{store: store}
}

// ListArchive returns a page of archived items.
func (h *ArchiveHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	limit := DefaultArchivePageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
			if limit > MaxArchivePageSize {
				limit = MaxArchivePageSize
			}
		}
	}

	items, err := h.store.ReadArchived(offset, limit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to read archive")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"offset": offset,
		"limit":  limit,
	})
}
