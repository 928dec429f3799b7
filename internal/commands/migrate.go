package commands

import (
	"github.com/spf13/cobra"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/database/migrations"
	"lawFirmWebsite/internal/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Manage the database schema embedded in the binary.

Subcommands:
  up      - Apply pending migrations
  status  - Check whether the database is current`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(cmd.OutOrStdout())

		db, err := database.OpenConnection(databasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.MigrateUp(db); err != nil {
			out.Error("Migration failed")
			return err
		}
		latest, err := migrations.LatestVersion()
		if err != nil {
			return err
		}
		out.Success("Database is at version %d", latest)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(cmd.OutOrStdout())

		db, err := database.OpenConnection(databasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.CheckDBMigrationStatus(db); err != nil {
			out.Warning("%s", err.Error())
			out.Muted("Run `lawsite migrate up` to apply pending migrations.")
			return nil
		}
		latest, err := migrations.LatestVersion()
		if err != nil {
			return err
		}
		out.Success("Database is up to date (version %d)", latest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}
