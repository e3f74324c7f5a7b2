package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/validation"
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	var (
		dataDir        string
		importance     int
		timeImportance int
		deadline       string
		isEvent        bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the active set",
		Long:  "Add a task or event to the active set and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := validation.SanitizeName(args[0])
			if name == "" {
				return fmt.Errorf("item name must not be empty")
			}

			item := models.Item{
				Name:    name,
				Created: time.Now(),
				IsEvent: isEvent,
			}
			if cmd.Flags().Changed("importance") {
				if importance < 0 || importance > 4 {
					return fmt.Errorf("importance must be between 0 and 4")
				}
				item.Importance = &importance
			}
			if cmd.Flags().Changed("time-importance") {
				if timeImportance < 0 || timeImportance > 2 {
					return fmt.Errorf("time-importance must be between 0 and 2")
				}
				item.TimeImportance = &timeImportance
			}
			if deadline != "" {
				t, err := parseDeadline(deadline)
				if err != nil {
					return err
				}
				item.Deadline = &t
			}

			if isEvent {
				if item.Deadline == nil {
					return fmt.Errorf("an event needs a deadline")
				}
				if item.Importance != nil {
					return fmt.Errorf("an event cannot carry an importance")
				}
			}

			plan, _, err := openPlanner(dataDir)
			if err != nil {
				return err
			}
			if !plan.NameIsUnique(name) {
				return fmt.Errorf("an item named %q already exists", name)
			}

			if _, err := plan.Add(item, time.Now()); err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}

			fmt.Printf("Added %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (defaults to DATA_DIR)")
	cmd.Flags().IntVar(&importance, "importance", 0, "Importance class 0-4 (with --deadline)")
	cmd.Flags().IntVar(&timeImportance, "time-importance", 0, "Time-urgency class 0-2 (no deadline)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline, e.g. '2026-09-15 17:00'")
	cmd.Flags().BoolVar(&isEvent, "event", false, "Mark the item as a calendar event")

	return cmd
}
