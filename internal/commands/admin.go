package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lawFirmWebsite/internal/admin"
	"lawFirmWebsite/internal/carousel"
	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/console"
	"lawFirmWebsite/internal/logging"
)

var (
	// Admin flags
	apiURL          string
	apiToken        string
	consoleLogFile  string
	previewInterval time.Duration
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Open the terminal admin console",
	Long: `Manage carousel slides and projects of a running server over its REST API.

The server URL and token default to $LAWSITE_API_URL and $ADMIN_API_TOKEN.

Examples:
  lawsite admin
  lawsite admin --url https://example-law.com --token $ADMIN_API_TOKEN`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConsoleConfig()
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if apiToken != "" {
			cfg.APIToken = apiToken
		}
		if cfg.APIToken == "" {
			return fmt.Errorf("an API token is required: set ADMIN_API_TOKEN or pass --token")
		}

		// The console owns the terminal, so logs only go to a file when asked.
		logger := logging.Discard()
		if consoleLogFile != "" {
			f, err := os.OpenFile(consoleLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			logger = logging.New("DEBUG", f)
		}

		client := admin.NewClient(cfg.APIURL, cfg.APIToken, admin.DefaultTimeout)
		return console.Run(cmd.Context(), client, console.Options{
			Logger:   logger,
			Interval: previewInterval,
		})
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.Flags().StringVar(&apiURL, "url", "", "Server base URL")
	adminCmd.Flags().StringVar(&apiToken, "token", "", "Admin API token")
	adminCmd.Flags().StringVar(&consoleLogFile, "log-file", "", "Write console logs to this file")
	adminCmd.Flags().DurationVar(&previewInterval, "interval", carousel.DefaultInterval, "Hero preview auto-advance interval")
}
