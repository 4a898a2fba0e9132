package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nyayalens-backend/services/caselookup"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of entries to list")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent case queries, newest first.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var entries []caselookup.HistoryEntry
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("limit", strconv.Itoa(historyLimit)).
			SetResult(&entries).
			Get("/api/v1/history")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if res.StatusCode() != 200 {
			fmt.Fprintln(os.Stderr, res.String())
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Queried At", "Case", "Source", "Result"})
		for _, entry := range entries {
			result := string(entry.Classification)
			if entry.Success {
				result = "found"
			}
			t.AppendRow(table.Row{
				entry.ID,
				time.Unix(entry.QueriedAt, 0).Format(time.DateTime),
				fmt.Sprintf("%s %s/%s", entry.Request.CaseType, entry.Request.CaseNumber, entry.Request.FilingYear),
				entry.Source,
				result,
			})
		}
		t.Render()
	},
}
