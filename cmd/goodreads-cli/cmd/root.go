package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/katzenj/goodreads-analytics/lib/sqliteutil"
	"github.com/katzenj/goodreads-analytics/services/library"
	librarydb "github.com/katzenj/goodreads-analytics/services/library/db"

	"github.com/spf13/cobra"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   "goodreads-cli",
	Short: "goodreads-cli inspects and syncs scraped reading activity.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "database", "goodreads.db", "Path to the sqlite database.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (library.Store, *sql.DB) {
	db, err := sqliteutil.OpenDB(librarydb.Schema, databasePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return library.NewStore(db), db
}
