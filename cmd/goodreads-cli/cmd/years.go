package cmd

import (
	"fmt"
	"os"

	"github.com/katzenj/goodreads-analytics/services/goodreads"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(yearsCmd)
}

var yearsCmd = &cobra.Command{
	Use:   "years <reader>",
	Short: "Prints the years a reader has recorded finished books in.",
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

		years, err := store.DistinctYears(cmd.Context(), readerID)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Year"})
		for _, y := range years {
			t.AppendRow(table.Row{y})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
