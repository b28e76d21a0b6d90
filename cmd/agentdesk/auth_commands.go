package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/agentdesk/agentdesk-go/auth"
	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Authenticate against the platform",
		PreRunE: guard.RequireAnonymous(app.session),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			credentials := auth.Credentials{Email: email, Password: password}
			if err := app.session.Login(cmd.Context(), credentials); err != nil {
				return err
			}

			snapshot := app.session.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n",
				snapshot.User.FullName(), snapshot.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCommand(app *app) *cobra.Command {
	var registration auth.Registration

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create a platform account",
		PreRunE: guard.RequireAnonymous(app.session),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.auth.Register(cmd.Context(), registration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s, run `agentdesk login` to sign in\n", profile.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&registration.Email, "email", "", "account email")
	cmd.Flags().StringVar(&registration.Password, "password", "", "account password")
	cmd.Flags().StringVar(&registration.ConfirmPassword, "confirm-password", "", "repeat the password")
	cmd.Flags().StringVar(&registration.Company, "company", "", "company name")
	cmd.Flags().StringVar(&registration.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&registration.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")

	return cmd
}

func newLogoutCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored credential and cached profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(app *app) *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:     "whoami",
		Short:   "Show the authenticated user",
		PreRunE: guard.RequireAuthenticated(app.session),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.session.Snapshot().User
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.FullName(), user.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Company:  %s\n", user.Company)
			fmt.Fprintf(cmd.OutOrStdout(), "Balance:  %.2f\n", user.Balance)
			if user.IsSuperuser {
				fmt.Fprintln(cmd.OutOrStdout(), "Role:     admin")
			}

			if showToken {
				token, ok := app.store.Token()
				if !ok {
					return nil
				}
				info, err := auth.InspectToken(token)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Token:    opaque (not JWT-shaped)")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Token:    sub=%s expires=%s\n", info.Subject, info.ExpiresAt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showToken, "token", false, "also show decoded token claims")
	return cmd
}
