package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schedsync",
	Short: "Synchronize shared scheduling documents with optimistic concurrency",
	Long: `Schedsync reads and writes the scheduling documents a team shares through
a common network folder. Writes are conditional on the version observed at
read time, so edits made by other users are detected instead of lost; related
documents commit together as one batch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// newClient opens a client for the configured shared folder. Commands that
// need a folder check Configured() themselves so the degraded-mode message
// fits the command.
func newClient() (*schedsync.Client, error) {
	return schedsync.New(
		schedsync.WithLogger(slog.Default()),
		schedsync.WithConflictHandler(func(c schedsync.Conflict) {
			fmt.Fprintf(os.Stderr, "conflict: %s was changed by another user (their version %d)\n",
				c.Name, c.Theirs.Version)
		}),
		schedsync.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
		}),
	)
}
