package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/database/migrations"
	"lawFirmWebsite/internal/output"
	"lawFirmWebsite/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load initial site content",
	Long: `Load site content from a TOML file into the collections that are still empty.
Collections that already hold records are left alone. Everything runs in one
transaction: an invalid record leaves the database untouched.

Examples:
  lawsite seed --file site.toml
  lawsite seed --file site.toml --db ./lawsite.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(cmd.OutOrStdout())

		doc, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		db, err := database.OpenConnection(databasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.MigrateUp(db); err != nil {
			return err
		}

		report, err := seed.Apply(cmd.Context(), database.NewStore(db, nil, nil), doc)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}

		out.Section("Seeded")
		if len(report.Inserted) == 0 {
			out.Muted("nothing inserted")
		}
		out.Counts(report.Inserted)
		for _, name := range report.Skipped {
			out.Warning("%s already has records, skipped", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "site.toml", "Seed TOML file")
}
