package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
	"github.com/marmotkit/asset-mgmt-accounting/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	migrateCmd.AddCommand(
		newMigrateDirectionCommand("up", "Apply all pending migrations", database.MigrateUp),
		newMigrateDirectionCommand("down", "Roll back every migration", database.MigrateDown),
	)
	return migrateCmd
}

func newMigrateDirectionCommand(use, short string, direction database.MigrateDirection) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("PGSQL_URL is not set")
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return database.RunMigrations(cfg.DatabaseURL, path, direction, logger)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migration source URL (defaults to MIGRATIONS_PATH)")
	return cmd
}
