package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewArchiveCmd creates the archive command
func NewArchiveCmd() *cobra.Command {
	var (
		dataDir string
		offset  int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List archived items, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openPlanner(dataDir)
			if err != nil {
				return err
			}

			entries, err := store.ReadArchived(offset, limit)
			if err != nil {
				return fmt.Errorf("failed to read archive: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No archived items")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("  - %s (archived %s)\n", entry.Name, entry.ArchivedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (defaults to DATA_DIR)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of most-recent entries to skip")
	cmd.Flags().IntVar(&limit, "limit", 15, "Maximum entries to show")

	return cmd
}
