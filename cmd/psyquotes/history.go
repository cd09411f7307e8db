package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nickpending/psyquotes/internal/db"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved shorts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer db.CloseDB()

			saved, err := db.ListShorts(limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(saved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shorts saved yet.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), historyTable(saved))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")

	return cmd
}

func historyTable(saved []db.SavedShort) string {
	rows := make([][]string, 0, len(saved))
	for _, s := range saved {
		rows = append(rows, []string{
			s.QuoteID,
			s.Author,
			s.Model,
			humanize.Bytes(uint64(s.Bytes)),
			humanize.Time(s.CreatedAt),
			filepath.Base(s.Path),
		})
	}
	return renderTable([]column{
		{title: "Quote"},
		{title: "Author", maxWidth: 24},
		{title: "Model"},
		{title: "Size", align: text.AlignRight},
		{title: "Saved"},
		{title: "File", maxWidth: 40},
	}, rows)
}
