package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show client and store state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fatal("Failed to initialize client", err)
		}
		defer c.Close(context.Background())

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(c.IntrospectionState()); err != nil {
			fatal("Failed to encode status", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
