package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(app *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "agentdesk",
		Short:         "Command-line client for the agentdesk platform",
		Long:          "agentdesk manages your AI agents, documents, subscriptions and wallets from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(app),
		newRegisterCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newBalanceCommand(app),
		newProfileCommand(app),
		newAgentsCommand(app),
		newPlansCommand(app),
		newSubscriptionsCommand(app),
		newWalletsCommand(app),
		newTelegramCommand(app),
		newMetricsCommand(app),
		newDashboardCommand(app),
	)

	return root
}
