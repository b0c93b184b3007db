package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
)

func newSyncCommand(opts *rootOptions) *cobra.Command {
	var actor string

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull pending fees, rentals and member profits into the ledgers",
	}
	syncCmd.PersistentFlags().StringVar(&actor, "actor", domain.SystemActor, "user id recorded as creator")

	syncCmd.AddCommand(
		&cobra.Command{
			Use:   "fees",
			Short: "Create receivables for pending membership fees",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(app *bootstrap.App) error {
					result, err := app.Services.Sync.SyncFeeReceivables(cmd.Context(), actor)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), result)
				})
			},
		},
		&cobra.Command{
			Use:   "rentals",
			Short: "Create receivables for pending rental payments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(app *bootstrap.App) error {
					result, err := app.Services.Sync.SyncRentalReceivables(cmd.Context(), actor)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), result)
				})
			},
		},
		&cobra.Command{
			Use:   "member-profits",
			Short: "Create payables for pending member profit shares",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(app *bootstrap.App) error {
					result, err := app.Services.Sync.SyncMemberProfitPayables(cmd.Context(), actor)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), result)
				})
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Run every synchronization pass",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(app *bootstrap.App) error {
					result, err := app.Services.Sync.SyncAllAccountingData(cmd.Context(), actor)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), result)
				})
			},
		},
		newSyncPreClosingCommand(opts, &actor),
	)
	return syncCmd
}

func newSyncPreClosingCommand(opts *rootOptions, actor *string) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "pre-closing",
		Short: "Synchronize and summarize a month before closing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := domain.NewPeriod(year, month); err != nil {
				return fmt.Errorf("invalid period: %w", err)
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				summary, err := app.Services.Sync.SyncBeforeMonthlyClosing(cmd.Context(), year, month, *actor)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year of the period")
	cmd.Flags().IntVar(&month, "month", 0, "month of the period (1-12)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
