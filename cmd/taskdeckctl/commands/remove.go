package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/planner"
)

// NewRemoveCmd creates the rm command
func NewRemoveCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an item without archiving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := openPlanner(dataDir)
			if err != nil {
				return err
			}

			if _, err := plan.Delete(args[0], time.Now()); err != nil {
				if errors.Is(err, planner.ErrNotFound) {
					return fmt.Errorf("no active item named %q", args[0])
				}
				return fmt.Errorf("failed to remove item: %w", err)
			}

			fmt.Printf("Removed %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (defaults to DATA_DIR)")

	return cmd
}
