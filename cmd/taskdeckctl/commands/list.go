package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active items",
		Long:  "List the active set in aggregation order: events by deadline, then tasks by urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := openPlanner(dataDir)
			if err != nil {
				return err
			}

			plan.Summarize(time.Now())
			items := plan.Items()
			if len(items) == 0 {
				fmt.Println("No active items")
				return nil
			}

			for _, it := range items {
				kind := "task"
				if it.IsEvent {
					kind = "event"
				}
				fmt.Printf("  - %s (%s)\n", it.Name, kind)
				if it.Deadline != nil {
					fmt.Printf("    Deadline: %s\n", it.Deadline.Format("2006-01-02 15:04"))
				}
				if it.Importance != nil {
					fmt.Printf("    Importance: %d\n", *it.Importance)
				}
				if it.TimeImportance != nil {
					fmt.Printf("    Time importance: %d\n", *it.TimeImportance)
				}
				if it.Classify() == models.ScoreMalformed {
					fmt.Println("    (malformed: no usable scoring fields)")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (defaults to DATA_DIR)")

	return cmd
}
