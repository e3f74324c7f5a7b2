// Package settings manages the user-editable settings file that lives next to
// the planner's data. Unlike env configuration these values change at runtime
// (via the settings endpoint) and survive restarts.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileName = "settings.yaml"

const (
	// MinWeeksToShow is the smallest calendar window; anything lower makes the
	// calendar pointless.
	MinWeeksToShow = 6
	// MaxWeeksToShow bounds the window so a typo can't ask for megabytes of cells.
	MaxWeeksToShow = 20000
)

// Settings are the persisted user preferences.
type Settings struct {
	CalendarWeeksToShow int        `yaml:"calendar_weeks_to_show" json:"calendar_weeks_to_show"`
	Coordinates         [2]float32 `yaml:"coordinates" json:"coordinates"`
}

// Defaults returns the settings used when no file exists yet.
func Defaults() Settings {
	return Settings{
		CalendarWeeksToShow: MinWeeksToShow,
		Coordinates:         [2]float32{51.5074, -0.1278},
	}
}

// Normalize clamps values into their valid ranges.
func (s *Settings) Normalize() {
	if s.CalendarWeeksToShow < MinWeeksToShow {
		s.CalendarWeeksToShow = MinWeeksToShow
	}
	if s.CalendarWeeksToShow > MaxWeeksToShow {
		s.CalendarWeeksToShow = MaxWeeksToShow
	}
}

// ClampWeeks bounds an ad-hoc week count the same way persisted settings are.
func ClampWeeks(weeks int) int {
	s := Settings{CalendarWeeksToShow: weeks}
	s.Normalize()
	return s.CalendarWeeksToShow
}

// Manager serializes access to the settings file.
type Manager struct {
	mu   sync.Mutex
	dir  string
	cur  Settings
}

// NewManager loads settings from dir, falling back to defaults when the file
// is missing.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{dir: dir, cur: Defaults()}

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &m.cur); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	m.cur.Normalize()
	return m, nil
}

// Get returns the current settings.
func (m *Manager) Get() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Update applies fn to the settings, clamps them, and persists the result
// atomically. The in-memory settings are updated even if the write fails.
func (m *Manager) Update(fn func(*Settings)) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&m.cur)
	m.cur.Normalize()

	data, err := yaml.Marshal(m.cur)
	if err != nil {
		return m.cur, fmt.Errorf("encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, "settings-*.yaml.tmp")
	if err != nil {
		return m.cur, fmt.Errorf("create temp settings: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return m.cur, fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return m.cur, fmt.Errorf("sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return m.cur, fmt.Errorf("close settings: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return m.cur, fmt.Errorf("chmod settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(m.dir, fileName)); err != nil {
		return m.cur, fmt.Errorf("replace settings: %w", err)
	}
	return m.cur, nil
}
