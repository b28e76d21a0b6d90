package main

import (
	"fmt"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/agentdesk/agentdesk-go/internal/utils"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/spf13/cobra"
)

func newBalanceCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "balance",
		Short:   "Show the account balance",
		PreRunE: guard.RequireAuthenticated(app.session),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := app.users.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f %s\n", balance.Balance, balance.Currency)
			return nil
		},
	}
}

func newProfileCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "profile",
		Short:             "Manage the account profile",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}
	cmd.AddCommand(newProfileUpdateCommand(app))
	return cmd
}

func newProfileUpdateCommand(app *app) *cobra.Command {
	var firstName, lastName, company string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			var update users.ProfileUpdate
			if cmd.Flags().Changed("first-name") {
				update.FirstName = utils.Ptr(firstName)
			}
			if cmd.Flags().Changed("last-name") {
				update.LastName = utils.Ptr(lastName)
			}
			if cmd.Flags().Changed("company") {
				update.Company = utils.Ptr(company)
			}

			profile, err := app.users.Update(cmd.Context(), update)
			if err != nil {
				return err
			}
			if err := app.session.RefreshProfile(cmd.Context()); err != nil {
				app.logger.Warn().Err(err).Msg("profile updated but session refresh failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s, %s\n", profile.FullName(), profile.Company)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	return cmd
}
