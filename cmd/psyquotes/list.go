package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nickpending/psyquotes/internal/catalog"
)

func newListCmd() *cobra.Command {
	var category, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.ParseCategory(category)
			if err != nil {
				return err
			}

			quotes := catalog.Default().Filter(c, search)
			if len(quotes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quotes match.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), quoteTable(quotes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "Category: all, motivation, behavior, unconscious")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by text or author")

	return cmd
}

func quoteTable(quotes []catalog.Quote) string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.ID,
			q.Category.ShortLabel(),
			q.Author,
			excerpt(q.Text, 50),
		})
	}
	return renderTable([]column{
		{title: "ID"},
		{title: "Category"},
		{title: "Author", maxWidth: 24},
		{title: "Quote", maxWidth: 60},
	}, rows)
}

// excerpt shortens s to n runes
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
