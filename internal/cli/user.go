package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
)

func newUserCommand(opts *rootOptions) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}
	userCmd.AddCommand(
		newUserCreateCommand(opts),
		newUserStatusCommand(opts, "enable", "Allow an operator to log in again", true),
		newUserStatusCommand(opts, "disable", "Block an operator from logging in", false),
	)
	return userCmd
}

func newUserCreateCommand(opts *rootOptions) *cobra.Command {
	var req dto.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator who can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				user, err := app.Services.Auth.CreateUser(cmd.Context(), req, domain.SystemActor)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.UserID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password (min 8 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserStatusCommand(opts *rootOptions, use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				user, err := app.Services.Auth.SetUserActive(cmd.Context(), args[0], active, domain.SystemActor)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s active=%t\n", user.Username, user.IsActive)
				return nil
			})
		},
	}
}
