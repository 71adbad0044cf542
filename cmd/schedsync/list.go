package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
	"github.com/gschlitt/course-schedule-visualizer/internal/config"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List documents in the shared folder",
	Long:  `List documents matching a glob pattern, e.g. 'schedsync list "sections-*.json"'.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "*.json"
		if len(args) == 1 {
			pattern = args[0]
		}

		cfg, err := config.Load()
		if err != nil {
			fatal("Failed to load config", err)
		}
		if cfg.Folder.Path == "" {
			fmt.Println("no shared folder selected (run 'schedsync folder set <path>')")
			os.Exit(1)
		}

		store := schedsync.OpenStore(cfg.Folder.Path, 0, nil)
		names, err := store.List(context.Background(), pattern)
		if err != nil {
			fatal("Failed to list documents", err)
		}

		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
