// Package history implements the `history` subcommand: list past
// explorations recorded in the SQLite history database.
package history

import (
	"context"
	"flag"
	"fmt"
	"time"

	"smart_scout/internal/store"
)

func Run(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	dbPath := fs.String("db", "smart_scout.db", "History database path")
	limit := fs.Int("limit", 20, "Entries to show")

	if err := fs.Parse(args); err != nil {
		return err
	}

	history, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer history.Close()

	entries, err := history.Recent(context.Background(), *limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No explorations recorded yet.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-15s %-5s", e.ExploredAt.Local().Format(time.DateTime), e.Guideline, e.Source)
		if e.Title != "" {
			line += "  " + e.Title
		}
		if e.Version != "" {
			line += " (v" + e.Version + ")"
		}
		fmt.Println(line)
	}
	return nil
}
