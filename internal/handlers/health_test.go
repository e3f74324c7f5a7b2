package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		handler := NewHealthChecker(t.TempDir())
		req := httptest.NewRequest("GET", "/healthz", nil)
		rec := httptest.NewRecorder()
		handler.Healthz(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("data dir missing", func(t *testing.T) {
		t.Parallel()

		handler := NewHealthChecker(filepath.Join(t.TempDir(), "does-not-exist"))
		req := httptest.NewRequest("GET", "/healthz", nil)
		rec := httptest.NewRecorder()
		handler.Healthz(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}
