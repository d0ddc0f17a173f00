package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"markestedt/easypaste/config"
	"markestedt/easypaste/storage"
)

const noHistoryMessage = "No pastes recorded yet. Set [history] enabled = true to record them."

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently pasted segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dir, err := historyDir(cfg)
			if err != nil {
				return err
			}

			// A read-only listing must not create the database
			if _, err := os.Stat(filepath.Join(dir, storage.FileName)); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), noHistoryMessage)
				return nil
			}

			db, err := storage.Open(dir)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer db.Close()

			return printHistory(cmd.OutOrStdout(), db, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

// printHistory writes a summary line followed by the newest entries
func printHistory(w io.Writer, db *storage.DB, limit int) error {
	stats, err := db.GetOverallStats()
	if err != nil {
		return err
	}

	if stats.TotalPastes == 0 {
		fmt.Fprintln(w, noHistoryMessage)
		return nil
	}

	fmt.Fprintf(w, "%s pastes in %s sessions, %s characters, %d failed, last %s\n",
		humanize.Comma(int64(stats.TotalPastes)),
		humanize.Comma(int64(stats.TotalSessions)),
		humanize.Comma(int64(stats.TotalCharacters)),
		stats.FailureCount,
		humanize.Time(stats.LastPaste),
	)

	entries, err := db.GetEntries(limit, 0)
	if err != nil {
		return err
	}

	for _, e := range entries {
		status := "copied"
		switch {
		case !e.Success:
			status = "failed: " + e.ErrorMessage
		case e.Pasted:
			status = "pasted"
		}

		line := fmt.Sprintf("%-14s %s %d/%d  %s  (%s)",
			humanize.Time(e.Timestamp), e.FilePath, e.Position, e.Total,
			oneLine(truncate(e.Text, 40)), status)
		if e.Note != "" {
			line += "  [" + e.Note + "]"
		}
		fmt.Fprintln(w, line)
	}

	return nil
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
