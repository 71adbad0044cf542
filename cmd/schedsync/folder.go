package main

import (
	"fmt"

	"github.com/spf13/cobra"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
	"github.com/gschlitt/course-schedule-visualizer/internal/config"
)

// folderCmd groups the shared-folder selection commands.
var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage the shared folder selection",
}

var folderSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Select or change the shared folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := schedsync.SelectFolder(args[0]); err != nil {
			fatal("Failed to set shared folder", err)
		}
		cfg, err := config.Load()
		if err != nil {
			fatal("Failed to reload config", err)
		}
		fmt.Printf("shared folder: %s\n", cfg.Folder.Path)
	},
}

var folderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current shared folder",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fatal("Failed to load config", err)
		}
		if cfg.Folder.Path == "" {
			fmt.Println("no shared folder selected (run 'schedsync folder set <path>')")
			return
		}
		fmt.Println(cfg.Folder.Path)
	},
}

func init() {
	folderCmd.AddCommand(folderSetCmd)
	folderCmd.AddCommand(folderShowCmd)
	rootCmd.AddCommand(folderCmd)
}
