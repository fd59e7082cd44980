package main

import (
	"fmt"
	"os"

	"github.com/hamiltra/net-reminder/internal/infra/database"
	"github.com/hamiltra/net-reminder/internal/infra/logger"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the net_schedule and roster_members tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				url = os.Getenv("NET_REMINDER_DATABASE_URL")
			}
			if url == "" {
				return fmt.Errorf("--database-url or NET_REMINDER_DATABASE_URL is required")
			}

			log := logger.Fallback()
			db, err := database.Open(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Infof("Migrations applied to %s database", db.Driver())
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "database-url", "", "postgres:// or sqlite:// URL")
	return cmd
}
