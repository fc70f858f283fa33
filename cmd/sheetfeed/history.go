// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sheetfeed/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent export runs",
	Long: `History lists the most recent export runs recorded in the ledger,
newest first: when the run started, what was exported, how many rows,
and whether it succeeded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.Open(viper.GetString("history.db_path"))
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No export runs recorded.")
			return nil
		}

		w := os.Stdout
		fmt.Fprintf(w, "%-4s  %-20s  %-6s  %-24s  %5s  %-14s  %-6s  %s\n",
			"ID", "Started", "Source", "Table", "Rows", "Formats", "Status", "Error")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for _, r := range runs {
			errText := r.Error
			if len(errText) > 40 {
				errText = errText[:37] + "..."
			}
			fmt.Fprintf(w, "%-4d  %-20s  %-6s  %-24s  %5d  %-14s  %-6s  %s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Source,
				truncate(r.TableName, 24),
				r.Rows,
				r.Formats,
				r.Status,
				errText)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
