package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
	"github.com/gschlitt/course-schedule-visualizer/pkg/schedule"
)

var (
	writeFile  string
	writeTerm  string
	writeForce bool
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write <name>",
	Short: "Write a document to the shared folder",
	Long: `Write a document from a JSON file (or stdin). When --term is given and the
document is that term's sections document, the instructor and course workload
ledgers are recomputed and committed in the same batch.

A write that loses a race against another user is reported as a conflict;
--force resolves it by overwriting with the local content.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		data, err := readInput()
		if err != nil {
			fatal("Failed to read input", err)
		}
		var content core.Content
		if err := json.Unmarshal(data, &content); err != nil {
			fatal("Input is not valid JSON", err)
		}

		c, err := newClient()
		if err != nil {
			fatal("Failed to initialize client", err)
		}
		ctx := context.Background()
		defer c.Close(ctx)

		if !c.Configured() {
			fmt.Println("no shared folder selected (run 'schedsync folder set <path>')")
			os.Exit(1)
		}

		// Establish the version baseline so the write is conditional.
		if _, _, err := c.Load(ctx, name, nil); err != nil {
			fatal("Failed to read current document", err)
		}

		var derive core.DeriveFunc
		if writeTerm != "" {
			term, err := schedule.ParseTermKey(writeTerm)
			if err != nil {
				fatal("Invalid --term", err)
			}
			if name == schedule.SectionsDocument(term) {
				derive = schedule.NewUpdater(term).Derive
			}
		}

		c.Save(name, content, derive)
		if err := c.Flush(ctx); err != nil {
			fatal("Failed to flush save", err)
		}

		if conflict, ok := c.Conflict(); ok {
			if !writeForce {
				fmt.Fprintf(os.Stderr, "write rejected: %s changed in the shared folder (their version %d)\n",
					conflict.Name, conflict.Theirs.Version)
				fmt.Fprintln(os.Stderr, "re-run with --force to overwrite, or 'schedsync read' to inspect theirs")
				os.Exit(1)
			}
			if err := c.Overwrite(ctx); err != nil {
				fatal("Failed to overwrite", err)
			}
			fmt.Printf("%s overwritten\n", name)
			return
		}

		fmt.Printf("%s written\n", name)
	},
}

func readInput() ([]byte, error) {
	if writeFile != "" && writeFile != "-" {
		return os.ReadFile(writeFile)
	}
	return readAllStdin()
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("no input: pass --file or pipe JSON on stdin")
	}
	return io.ReadAll(os.Stdin)
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeFile, "file", "", "JSON file to write ('-' for stdin)")
	writeCmd.Flags().StringVar(&writeTerm, "term", "", "Active term key (e.g. 2026-Fall) to update workload ledgers")
	writeCmd.Flags().BoolVar(&writeForce, "force", false, "Overwrite on conflict instead of failing")
}
