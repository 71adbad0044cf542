package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
	"github.com/gschlitt/course-schedule-visualizer/internal/config"
	docsource "github.com/gschlitt/course-schedule-visualizer/pkg/adapters/lifecycle"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Watch the shared folder for edits by other users",
	Long: `Print an event whenever a document matching the pattern changes in the
shared folder, until interrupted. This is the mechanism the UI uses to prompt
for a reload when another user's save lands.`,
	Args: cobra.MaximumNArgs(1),
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := schedsync.OpenStore(cfg.Folder.Path, 0, slog.Default())
		events, err := store.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		source := docsource.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Fprintf(os.Stderr, "watching %s for %s (ctrl-c to stop)\n", cfg.Folder.Path, pattern)
		for e := range source.Events() {
			fmt.Println(e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
