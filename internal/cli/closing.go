package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
)

func newClosingCommand(opts *rootOptions) *cobra.Command {
	var actor string

	closingCmd := &cobra.Command{
		Use:   "closing",
		Short: "Create, finalize and list monthly closings",
	}
	closingCmd.PersistentFlags().StringVar(&actor, "actor", domain.SystemActor, "user id recorded on the closing")

	closingCmd.AddCommand(
		newClosingCreateCommand(opts, &actor),
		newClosingFinalizeCommand(opts, &actor),
		newClosingListCommand(opts),
	)
	return closingCmd
}

func newClosingCreateCommand(opts *rootOptions, actor *string) *cobra.Command {
	var year, month int
	var notes string
	var syncFirst bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compute and store the pending closing of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := domain.NewPeriod(year, month); err != nil {
				return fmt.Errorf("invalid period: %w", err)
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				var summary *domain.ClosingSyncSummary
				if syncFirst {
					s, err := app.Services.Sync.SyncBeforeMonthlyClosing(cmd.Context(), year, month, *actor)
					if err != nil {
						return err
					}
					summary = s
				}
				closing, err := app.Services.MonthlyClosing.CreateMonthlyClosing(cmd.Context(), year, month, notes, *actor)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.MonthlyClosingResponse{Closing: *closing, PreClosingSync: summary})
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year of the period")
	cmd.Flags().IntVar(&month, "month", 0, "month of the period (1-12)")
	cmd.Flags().StringVar(&notes, "notes", "", "free text stored on the closing")
	cmd.Flags().BoolVar(&syncFirst, "sync-first", false, "run the pre-closing synchronization before closing")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func newClosingFinalizeCommand(opts *rootOptions, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <closing-id>",
		Short: "Finalize a pending closing and lock its month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				closing, err := app.Services.MonthlyClosing.FinalizeMonthlyClosing(cmd.Context(), args[0], *actor)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), closing)
			})
		},
	}
}

func newClosingListCommand(opts *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List monthly closings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var yearFilter *int
			if cmd.Flags().Changed("year") {
				yearFilter = &year
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				closings, err := app.Services.MonthlyClosing.ListMonthlyClosings(cmd.Context(), yearFilter)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPERIOD\tSTATUS\tINCOME\tEXPENSE\tNET")
				for _, c := range closings {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						c.ClosingID, c.Period(), c.Status,
						c.TotalIncome.StringFixed(2), c.TotalExpense.StringFixed(2), c.NetAmount.StringFixed(2))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "only closings of this year")
	return cmd
}
