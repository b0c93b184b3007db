// Package cli implements the aam operator command line.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
)

// AppFactory builds the application for commands that need services.
type AppFactory func(ctx context.Context, logger *slog.Logger) (*bootstrap.App, error)

// DefaultAppFactory loads configuration from the environment and wires the app.
func DefaultAppFactory(ctx context.Context, logger *slog.Logger) (*bootstrap.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, logger)
}

type rootOptions struct {
	newApp  AppFactory
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(newApp AppFactory) *cobra.Command {
	if newApp == nil {
		newApp = DefaultAppFactory
	}
	opts := &rootOptions{newApp: newApp}

	rootCmd := &cobra.Command{
		Use:   "aam",
		Short: "Operator tools for the asset management accounting service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at info level")

	rootCmd.AddCommand(
		newSyncCommand(opts),
		newClosingCommand(opts),
		newUserCommand(opts),
		newMigrateCommand(),
		newJobsCommand(),
	)
	return rootCmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// withApp runs fn with a wired app and closes it afterwards.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(app *bootstrap.App) error) error {
	app, err := o.newApp(cmd.Context(), o.logger(cmd))
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
