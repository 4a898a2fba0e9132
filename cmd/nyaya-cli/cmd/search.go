package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nyayalens-backend/lib/scrapers/courts"
	"nyayalens-backend/services/caselookup"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <case type> <case number> <filing year>",
	Short: "Search for a case across the configured court sources.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		var outcome caselookup.Outcome
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(courts.CaseRequest{
				CaseType:   args[0],
				CaseNumber: args[1],
				FilingYear: args[2],
			}).
			SetResult(&outcome).
			Post("/api/v1/search")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if res.StatusCode() != 200 {
			fmt.Fprintln(os.Stderr, res.String())
			os.Exit(1)
		}

		for _, warning := range outcome.Warnings {
			fmt.Println("warning:", warning)
		}

		if !outcome.Success {
			fmt.Println(outcome.Message)
			if outcome.DirectURL != "" {
				fmt.Println("Search manually at:", outcome.DirectURL)
			}
			for _, alt := range outcome.Alternatives {
				fmt.Println("  -", alt)
			}
			os.Exit(1)
		}

		record := outcome.Record

		t := newTable()
		t.AppendRows([]table.Row{
			{"Source", outcome.Source},
			{"Plaintiff / Petitioner", record.Plaintiff},
			{"Defendant / Respondent", record.Defendant},
			{"Filing Date", record.FilingDate},
			{"Next Hearing", record.NextHearingDate},
			{"Status", record.Status},
		})
		if record.Notes != "" {
			t.AppendRow(table.Row{"Notes", record.Notes})
		}
		t.Render()

		if len(record.Orders) > 0 {
			orders := newTable()
			orders.AppendHeader(table.Row{"#", "Title", "Date", "Category", "Document"})
			for i, order := range record.Orders {
				document := order.DocumentURL
				if document == "" {
					document = order.DocumentRef
				}
				orders.AppendRow(table.Row{i + 1, order.Title, order.Date, order.Category, document})
			}
			orders.Render()
		}
	},
}
