package main

import (
	"fmt"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/spf13/cobra"
)

func newWalletsCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "wallets",
		Short:             "Manage deposit wallets",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newWalletsListCommand(app),
		newWalletsGenerateCommand(app),
		newWalletsBalanceCommand(app),
	)
	return cmd
}

func newWalletsListCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your wallets",
		RunE: func(cmd *cobra.Command, args []string) error {
			mine, err := app.wallets.Mine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, wallet := range mine {
				fmt.Fprintf(out, "%-10s %s\n", wallet.Network, wallet.Address)
			}
			return nil
		},
	}
}

func newWalletsGenerateCommand(app *app) *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deposit wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := app.wallets.Generate(cmd.Context(), network)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New %s wallet: %s\n", wallet.Network, wallet.Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&network, "network", "", "blockchain network")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}

func newWalletsBalanceCommand(app *app) *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show a wallet's observed balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := app.wallets.Balance(cmd.Context(), network)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2f USDT (%.2f USD), updated %s\n",
				balance.Network, balance.USDTBalance, balance.USDEquivalent, balance.LastUpdated)
			return nil
		},
	}

	cmd.Flags().StringVar(&network, "network", "", "blockchain network")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}
