package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/spf13/cobra"
)

func newAgentsCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "agents",
		Short:             "Browse and manage agent connections",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newAgentsListCommand(app),
		newAgentsConnectCommand(app),
		newAgentsDisconnectCommand(app),
		newAgentsDocsCommand(app),
		newAgentsUploadCommand(app),
		newAgentsClearDocsCommand(app),
		newAgentsAnalyzeCommand(app),
	)
	return cmd
}

func newAgentsListCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available agents and your connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.dashboard.AgentsView(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Available agents (%d):\n", len(view.Available))
			for _, agent := range view.Available {
				marker := " "
				if agent.IsUserAgent {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %-6d %s\n", marker, agent.ID, agent.Name)
			}

			fmt.Fprintf(out, "\nYour connections (%d):\n", len(view.Mine))
			for _, connection := range view.Mine {
				fmt.Fprintf(out, "    %-6d %s (agent %d)\n",
					connection.ID, connection.AgentName, connection.AgentID)
			}
			return nil
		},
	}
}

func newAgentsConnectCommand(app *app) *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to an agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			connection, err := app.agents.Connect(cmd.Context(), agentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s (connection %d)\n",
				connection.AgentName, connection.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}

func newAgentsDisconnectCommand(app *app) *cobra.Command {
	var connectionID int64

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect from an agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.agents.Disconnect(cmd.Context(), connectionID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&connectionID, "connection", 0, "connection id")
	_ = cmd.MarkFlagRequired("connection")
	return cmd
}

func newAgentsDocsCommand(app *app) *cobra.Command {
	var connectionID int64
	var deleteID int64

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List or delete a connection's documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("delete") {
				status, err := app.agents.DeleteDocument(cmd.Context(), deleteID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), status.Message)
				return nil
			}

			documents, err := app.agents.Documents(cmd.Context(), connectionID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, document := range documents {
				processed := "pending"
				if document.Processed {
					processed = "processed"
				}
				fmt.Fprintf(out, "%-6d %-30s %8d bytes  %s\n",
					document.ID, document.Filename, document.FileSize, processed)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&connectionID, "connection", 0, "connection id")
	cmd.Flags().Int64Var(&deleteID, "delete", 0, "document id to delete")
	return cmd
}

func newAgentsUploadCommand(app *app) *cobra.Command {
	var connectionID int64
	var path string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a knowledge document to a connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			status, err := app.agents.UploadDocument(cmd.Context(), connectionID, filepath.Base(path), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&connectionID, "connection", 0, "connection id")
	cmd.Flags().StringVar(&path, "file", "", "path of the file to upload")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newAgentsClearDocsCommand(app *app) *cobra.Command {
	var connectionID int64

	cmd := &cobra.Command{
		Use:   "clear-docs",
		Short: "Remove every document from a connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.agents.ClearDocuments(cmd.Context(), connectionID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&connectionID, "connection", 0, "connection id")
	_ = cmd.MarkFlagRequired("connection")
	return cmd
}

func newAgentsAnalyzeCommand(app *app) *cobra.Command {
	var connectionID int64
	var text string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run text through a connected agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := app.agents.Analyze(cmd.Context(), connectionID, text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !analysis.Success {
				fmt.Fprintf(out, "Analysis failed: %s\n", analysis.ErrorMessage)
				return nil
			}
			fmt.Fprintln(out, analysis.Response)
			fmt.Fprintf(out, "\n(%.2fs, %d documents used)\n",
				analysis.ProcessingTime, analysis.DocumentsUsed)
			return nil
		},
	}

	cmd.Flags().Int64Var(&connectionID, "connection", 0, "connection id")
	cmd.Flags().StringVar(&text, "text", "", "text to analyze")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
