package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of schedsync",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("schedsync version %s\n", strings.TrimSpace(schedsync.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
