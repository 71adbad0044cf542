package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Read a document from the shared folder",
	Long:  `Print a document's content as JSON, e.g. 'schedsync read sections-2026-Fall.json'.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fatal("Failed to initialize client", err)
		}
		defer c.Close(context.Background())

		if !c.Configured() {
			fmt.Println("no shared folder selected (run 'schedsync folder set <path>')")
			os.Exit(1)
		}

		content, version, err := c.Load(context.Background(), args[0], nil)
		if err != nil {
			fatal("Failed to read document", err)
		}
		if content == nil {
			fmt.Printf("%s does not exist yet\n", args[0])
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(content); err != nil {
			fatal("Failed to encode output", err)
		}
		fmt.Fprintf(os.Stderr, "version: %d\n", version)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
