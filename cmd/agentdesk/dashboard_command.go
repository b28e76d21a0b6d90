package main

import (
	"fmt"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func newDashboardCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Account overview: balance, plans and subscriptions",
		PreRunE: guard.RequireAuthenticated(app.session),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := app.dashboard.Overview(cmd.Context())
			if err != nil {
				return err
			}

			banner := figure.NewFigure(app.config.GetAppName(), "cybermedium", true)
			banner.Print()
			fmt.Println()

			out := cmd.OutOrStdout()
			user := app.session.Snapshot().User
			fmt.Fprintf(out, "Signed in as %s <%s>\n\n", user.FullName(), user.Email)
			fmt.Fprintf(out, "Balance: %.2f %s\n\n", overview.Balance.Balance, overview.Balance.Currency)

			fmt.Fprintf(out, "Active subscriptions (%d):\n", len(overview.Subscriptions))
			for _, subscription := range overview.Subscriptions {
				fmt.Fprintf(out, "  plan %-4d until %s\n", subscription.PlanID, subscription.EndDate)
			}

			fmt.Fprintf(out, "\nPlans on offer (%d):\n", len(overview.Plans))
			for _, plan := range overview.Plans {
				fmt.Fprintf(out, "  %-20s %3d days  %8.2f\n", plan.Name, plan.Days, plan.Price)
			}
			return nil
		},
	}
}
