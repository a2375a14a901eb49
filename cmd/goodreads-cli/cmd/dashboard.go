package cmd

import (
	"fmt"
	"os"

	"github.com/katzenj/goodreads-analytics/services/goodreads"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/insights"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var dashboardYear int64

func init() {
	dashboardCmd.Flags().Int64Var(&dashboardYear, "year", 0, "Restrict metrics to books read in a given year.")
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <reader>",
	Short: "Prints summary metrics for a previously synced reader.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		readerID, err := goodreads.ResolveReaderID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		store, db := openStore()
		defer db.Close()

		var year *int64
		if dashboardYear != 0 {
			year = &dashboardYear
		}
		recs, err := store.GetRecords(cmd.Context(), readerID, year)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		summary := insights.Summarize(recs)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Metric", "Value"})
		t.AppendRow(table.Row{"Books read", summary.Count})
		t.AppendRow(table.Row{"Total pages", summary.TotalPages})
		t.AppendRow(table.Row{"Average rating", summary.AverageRating})
		t.AppendRow(table.Row{"Average length", summary.AverageLength})
		t.AppendRow(table.Row{"Highest rated", bookCell(summary.MaxRatedBook)})
		t.AppendRow(table.Row{"Lowest rated", bookCell(summary.MinRatedBook)})
		t.AppendRow(table.Row{"Longest book", bookCell(summary.LongestBook)})
		t.AppendRow(table.Row{"Shortest book", bookCell(summary.ShortestBook)})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func bookCell(r *records.Record) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s by %s", r.Title, r.Author)
}
