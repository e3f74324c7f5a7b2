package commands

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/planner"
	"github.com/taskdeck/taskdeck/internal/settings"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// deadlineLayouts are the formats accepted by --deadline, tried in order.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDeadline(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized deadline %q (want RFC3339, '2006-01-02 15:04' or '2006-01-02')", value)
}

// openPlanner opens the data directory named by configuration (optionally
// overridden by --data) and loads the active set into a planner.
func openPlanner(dataDir string) (*planner.Planner, *storage.FileStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir == "" {
		dataDir = cfg.DataDir
	}

	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data dir: %w", err)
	}

	settingsManager, err := settings.NewManager(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	plan, err := planner.New(store, settingsManager.Get().CalendarWeeksToShow, zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active set: %w", err)
	}
	return plan, store, nil
}
