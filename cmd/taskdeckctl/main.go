package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cmd/taskdeckctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskdeckctl",
		Short: "Command-line tool for the taskdeck planner",
		Long:  "CLI tool for managing planner items against a taskdeck data directory",
	}

	rootCmd.AddCommand(commands.NewAddCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewDoneCmd())
	rootCmd.AddCommand(commands.NewRemoveCmd())
	rootCmd.AddCommand(commands.NewArchiveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
