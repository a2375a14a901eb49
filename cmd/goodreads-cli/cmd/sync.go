package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/katzenj/goodreads-analytics/services/goodreads"
	"github.com/katzenj/goodreads-analytics/services/syncer"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync <reader>",
	Short: "Scrapes a reader's review list and stores the result.",
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

		client := goodreads.NewClient(goodreads.ClientOptions{
			Timeout: time.Minute,
		})
		coordinator := syncer.New(client, store, syncer.Options{})

		result, err := coordinator.Sync(cmd.Context(), readerID)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if result.Status == syncer.StatusSkipped {
			fmt.Println("skipped: synced too recently")
			return
		}
		fmt.Printf("synced %d records across %d pages\n", result.Records, result.Pages)
	},
}
