// Package commands is the lawsite command line.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lawFirmWebsite/internal/config"
)

var (
	// Global flags
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "lawsite",
	Short: "Law office website server and admin tools",
	Long: `lawsite serves the law office website and its admin REST API, and carries the
tools to manage it:

  serve    - run the web server
  migrate  - apply or check the database schema
  seed     - load initial site content from a TOML file
  admin    - terminal admin console for a running server`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $DATABASE_PATH or ./lawsite.db)")
}

func databasePath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.LoadDatabasePath()
}
