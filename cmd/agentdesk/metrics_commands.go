package main

import (
	"fmt"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/spf13/cobra"
)

func newMetricsCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "metrics",
		Short:             "Usage and performance metrics",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newMetricsMineCommand(app),
		newMetricsAgentCommand(app),
		newMetricsSystemCommand(app),
		newMetricsPerformanceCommand(app),
	)
	return cmd
}

func newMetricsMineCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "my",
		Short: "Your usage across connected agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.metrics.Mine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Connected agents: %d\n", m.ConnectedAgents)
			fmt.Fprintf(out, "Total requests:   %d\n", m.TotalRequests)
			fmt.Fprintf(out, "Avg processing:   %.2fs\n", m.AvgProcessingTime)
			for _, breakdown := range m.AgentBreakdown {
				fmt.Fprintf(out, "  agent %-6d %6d requests  %.2fs avg\n",
					breakdown.AgentID, breakdown.Requests, breakdown.AvgProcessingTime)
			}
			return nil
		},
	}
}

func newMetricsAgentCommand(app *app) *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Usage for one agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.metrics.Agent(cmd.Context(), agentID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Requests:     %d (%d in 24h)\n", m.TotalRequests, m.RecentRequests24h)
			fmt.Fprintf(out, "Unique users: %d\n", m.UniqueUsers)
			fmt.Fprintf(out, "Avg time:     %.2fs\n", m.AvgProcessingTime)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}

func newMetricsSystemCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Platform-wide usage (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.metrics.System(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Agents:      %d\n", m.TotalAgents)
			fmt.Fprintf(out, "Connections: %d\n", m.ActiveConnections)
			fmt.Fprintf(out, "Requests:    %d (%d in 7d)\n", m.TotalRequests, m.RecentRequests7d)
			for _, top := range m.TopAgents {
				fmt.Fprintf(out, "  agent %-6d %6d requests\n", top.AgentID, top.Requests)
			}
			return nil
		},
	}
}

func newMetricsPerformanceCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "performance",
		Short: "Latency and error rates (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.metrics.Performance(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Avg time:    %.2fs (median %.2fs)\n", m.AvgProcessingTime, m.MedianProcessingTime)
			fmt.Fprintf(out, "Error rate:  %.2f%%\n", m.ErrorRatePercent)
			fmt.Fprintf(out, "Slow calls:  %d of %d\n", m.SlowRequests, m.TotalRequests)
			return nil
		},
	}
}
