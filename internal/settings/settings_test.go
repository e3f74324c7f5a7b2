package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewManager_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	got := m.Get()
	if got.CalendarWeeksToShow != MinWeeksToShow {
		t.Errorf("CalendarWeeksToShow = %d, want %d", got.CalendarWeeksToShow, MinWeeksToShow)
	}
	if got.Coordinates == ([2]float32{}) {
		t.Error("Coordinates unset, want a default location")
	}
}

func TestNewManager_LoadsAndClampsExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "calendar_weeks_to_show: 2\ncoordinates: [40.7, -74.0]\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	got := m.Get()
	if got.CalendarWeeksToShow != MinWeeksToShow {
		t.Errorf("CalendarWeeksToShow = %d, want clamped to %d", got.CalendarWeeksToShow, MinWeeksToShow)
	}
	if got.Coordinates != ([2]float32{40.7, -74.0}) {
		t.Errorf("Coordinates = %v", got.Coordinates)
	}
}

func TestNewManager_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(":\t:::not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager(dir); err == nil {
		t.Error("NewManager() error = nil, want decode failure")
	}
}

func TestManager_UpdatePersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	updated, err := m.Update(func(s *Settings) {
		s.CalendarWeeksToShow = 10
		s.Coordinates = [2]float32{48.85, 2.35}
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.CalendarWeeksToShow != 10 {
		t.Errorf("CalendarWeeksToShow = %d, want 10", updated.CalendarWeeksToShow)
	}

	// A fresh manager sees the persisted values.
	reloaded, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager() reload error: %v", err)
	}
	got := reloaded.Get()
	if got.CalendarWeeksToShow != 10 || got.Coordinates != ([2]float32{48.85, 2.35}) {
		t.Errorf("reloaded settings = %+v", got)
	}
}

func TestManager_UpdateClamps(t *testing.T) {
	t.Parallel()

	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	updated, err := m.Update(func(s *Settings) {
		s.CalendarWeeksToShow = 999999
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.CalendarWeeksToShow != MaxWeeksToShow {
		t.Errorf("CalendarWeeksToShow = %d, want %d", updated.CalendarWeeksToShow, MaxWeeksToShow)
	}
}

func TestClampWeeks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below floor", in: 1, want: MinWeeksToShow},
		{name: "in range", in: 12, want: 12},
		{name: "above ceiling", in: MaxWeeksToShow + 1, want: MaxWeeksToShow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ClampWeeks(tt.in); got != tt.want {
				t.Errorf("ClampWeeks(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
