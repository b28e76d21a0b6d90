package main

import (
	"fmt"

	"github.com/agentdesk/agentdesk-go/billing"
	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/agentdesk/agentdesk-go/internal/utils"
	"github.com/spf13/cobra"
)

func newPlansCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "plans",
		Short:             "Browse and administer subscription plans",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newPlansListCommand(app),
		newPlansShowCommand(app),
		newPlansCreateCommand(app),
		newPlansUpdateCommand(app),
		newPlansDeleteCommand(app),
		newPlansDeactivateCommand(app),
	)
	return cmd
}

func newPlansListCommand(app *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				plans []billing.Plan
				err   error
			)
			if all {
				plans, err = app.billing.Plans(cmd.Context())
			} else {
				plans, err = app.billing.ActivePlans(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, plan := range plans {
				fmt.Fprintf(out, "%-6d %-20s %3d days  %8.2f\n",
					plan.ID, plan.Name, plan.Days, plan.Price)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive plans (admin)")
	return cmd
}

func newPlansShowCommand(app *app) *cobra.Command {
	var planID int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.billing.Plan(cmd.Context(), planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d days, %.2f)\n", plan.Name, plan.Days, plan.Price)
			if plan.Description != nil {
				fmt.Fprintln(out, *plan.Description)
			}
			if plan.DiscountPercent != nil {
				fmt.Fprintf(out, "Discount: %.0f%%\n", *plan.DiscountPercent)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newPlansCreateCommand(app *app) *cobra.Command {
	var create billing.PlanCreate
	var discount float64
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("discount") {
				create.DiscountPercent = utils.Ptr(discount)
			}
			if cmd.Flags().Changed("description") {
				create.Description = utils.Ptr(description)
			}
			plan, err := app.billing.CreatePlan(cmd.Context(), create)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan %d created\n", plan.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&create.Name, "name", "", "plan name")
	cmd.Flags().IntVar(&create.Days, "days", 0, "duration in days")
	cmd.Flags().Float64Var(&create.Price, "price", 0, "price")
	cmd.Flags().Float64Var(&discount, "discount", 0, "discount percent")
	cmd.Flags().StringVar(&description, "description", "", "plan description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("days")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newPlansUpdateCommand(app *app) *cobra.Command {
	var planID int64
	var name, description string
	var days int
	var price, discount float64
	var active bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a plan (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var update billing.PlanUpdate
			if cmd.Flags().Changed("name") {
				update.Name = utils.Ptr(name)
			}
			if cmd.Flags().Changed("days") {
				update.Days = utils.Ptr(days)
			}
			if cmd.Flags().Changed("price") {
				update.Price = utils.Ptr(price)
			}
			if cmd.Flags().Changed("discount") {
				update.DiscountPercent = utils.Ptr(discount)
			}
			if cmd.Flags().Changed("description") {
				update.Description = utils.Ptr(description)
			}
			if cmd.Flags().Changed("active") {
				update.IsActive = utils.Ptr(active)
			}

			plan, err := app.billing.UpdatePlan(cmd.Context(), planID, update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan %d updated\n", plan.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	cmd.Flags().StringVar(&name, "name", "", "plan name")
	cmd.Flags().IntVar(&days, "days", 0, "duration in days")
	cmd.Flags().Float64Var(&price, "price", 0, "price")
	cmd.Flags().Float64Var(&discount, "discount", 0, "discount percent")
	cmd.Flags().StringVar(&description, "description", "", "plan description")
	cmd.Flags().BoolVar(&active, "active", true, "whether the plan is active")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newPlansDeleteCommand(app *app) *cobra.Command {
	var planID int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a plan (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.billing.DeletePlan(cmd.Context(), planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan %d deleted\n", planID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newPlansDeactivateCommand(app *app) *cobra.Command {
	var planID int64

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Take a plan off sale (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.billing.DeactivatePlan(cmd.Context(), planID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan %d deactivated\n", plan.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newSubscriptionsCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "subscriptions",
		Short:             "View and manage subscriptions",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newSubscriptionsListCommand(app),
		newSubscriptionsBuyCommand(app),
		newSubscriptionsCancelCommand(app),
	)
	return cmd
}

func newSubscriptionsListCommand(app *app) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				subscriptions []billing.Subscription
				err           error
			)
			if activeOnly {
				subscriptions, err = app.billing.ActiveSubscriptions(cmd.Context())
			} else {
				subscriptions, err = app.billing.Subscriptions(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, subscription := range subscriptions {
				state := "expired"
				if subscription.IsActive {
					state = "active"
				}
				fmt.Fprintf(out, "%-6d plan %-4d %s → %s  %s\n",
					subscription.ID, subscription.PlanID,
					subscription.StartDate, subscription.EndDate, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active subscriptions")
	return cmd
}

func newSubscriptionsBuyCommand(app *app) *cobra.Command {
	var planID int64

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Purchase a plan from your balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			subscription, err := app.billing.Subscribe(cmd.Context(), planID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscribed until %s (paid %.2f)\n",
				subscription.EndDate, subscription.TotalPaid)
			return nil
		},
	}

	cmd.Flags().Int64Var(&planID, "plan", 0, "plan id")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newSubscriptionsCancelCommand(app *app) *cobra.Command {
	var subscriptionID int64

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.billing.Cancel(cmd.Context(), subscriptionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %d cancelled\n", subscriptionID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&subscriptionID, "subscription", 0, "subscription id")
	_ = cmd.MarkFlagRequired("subscription")
	return cmd
}
