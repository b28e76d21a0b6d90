package main

import (
	"fmt"
	"strings"

	"github.com/agentdesk/agentdesk-go/guard"
	"github.com/agentdesk/agentdesk-go/telegram"
	"github.com/spf13/cobra"
)

func newTelegramCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "telegram",
		Short:             "Configure and observe an agent's Telegram bot",
		PersistentPreRunE: guard.RequireAuthenticated(app.session),
	}

	cmd.AddCommand(
		newTelegramConfigCommand(app),
		newTelegramTestCommand(app),
		newTelegramChatsCommand(app),
		newTelegramBotCommand(app),
	)
	return cmd
}

func newTelegramConfigCommand(app *app) *cobra.Command {
	var agentID int64
	var botToken, chatID string
	var remove bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, save or delete the bot configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if remove {
				if err := app.telegram.DeleteConfig(cmd.Context(), agentID); err != nil {
					return err
				}
				fmt.Fprintln(out, "Telegram configuration removed")
				return nil
			}

			if cmd.Flags().Changed("bot-token") {
				input := telegram.ConfigInput{BotToken: botToken, ChatID: chatID, IsActive: true}
				config, err := app.telegram.SaveConfig(cmd.Context(), agentID, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Configuration saved for agent %d\n", config.AgentID)
				return nil
			}

			config, err := app.telegram.Config(cmd.Context(), agentID)
			if err != nil {
				return err
			}
			state := "inactive"
			if config.IsActive {
				state = "active"
			}
			fmt.Fprintf(out, "Agent %d: chat %s, %s\n", config.AgentID, config.ChatID, state)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	cmd.Flags().StringVar(&botToken, "bot-token", "", "bot token to save")
	cmd.Flags().StringVar(&chatID, "chat-id", "", "chat id to save")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the configuration")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}

func newTelegramTestCommand(app *app) *cobra.Command {
	var agentID int64
	var message string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test message through the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.telegram.SendTest(cmd.Context(), agentID, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	cmd.Flags().StringVar(&message, "message", "Test message from agentdesk", "message text")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}

func newTelegramChatsCommand(app *app) *cobra.Command {
	var agentID, chatID int64
	var addChatID, chatType, keywords string
	var remove, test bool

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Manage the chats the bot monitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case addChatID != "":
				input := telegram.MonitoredChatInput{
					ChatID:   addChatID,
					ChatType: chatType,
					IsActive: true,
				}
				if keywords != "" {
					input.Keywords = strings.Split(keywords, ",")
				}
				chat, err := app.telegram.AddMonitoredChat(cmd.Context(), agentID, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Monitoring chat %s (%d)\n", chat.ChatID, chat.ID)
				return nil

			case remove:
				if err := app.telegram.DeleteMonitoredChat(cmd.Context(), agentID, chatID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Stopped monitoring chat %d\n", chatID)
				return nil

			case test:
				status, err := app.telegram.TestMonitoredChat(cmd.Context(), agentID, chatID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, status.Message)
				return nil
			}

			chats, err := app.telegram.MonitoredChats(cmd.Context(), agentID)
			if err != nil {
				return err
			}
			for _, chat := range chats {
				title := chat.ChatID
				if chat.ChatTitle != nil {
					title = *chat.ChatTitle
				}
				fmt.Fprintf(out, "%-6d %-20s %-10s keywords: %s\n",
					chat.ID, title, chat.ChatType, strings.Join(chat.Keywords, ", "))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	cmd.Flags().Int64Var(&chatID, "chat", 0, "monitored chat id (for --delete/--test)")
	cmd.Flags().StringVar(&addChatID, "add", "", "telegram chat id to start monitoring")
	cmd.Flags().StringVar(&chatType, "type", "group", "chat type")
	cmd.Flags().StringVar(&keywords, "keywords", "", "comma-separated keywords")
	cmd.Flags().BoolVar(&remove, "delete", false, "stop monitoring --chat")
	cmd.Flags().BoolVar(&test, "test", false, "probe --chat")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}

func newTelegramBotCommand(app *app) *cobra.Command {
	var agentID int64
	var restart bool

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Show or restart the agent's bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if restart {
				status, err := app.telegram.RestartBot(cmd.Context(), agentID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, status.Message)
				return nil
			}

			status, err := app.telegram.BotStatus(cmd.Context(), agentID)
			if err != nil {
				return err
			}
			state := "stopped"
			if status.IsActive {
				state = "running"
			}
			fmt.Fprintf(out, "Bot %s, monitoring %d chats\n", state, status.MonitoredChatsCount)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent id")
	cmd.Flags().BoolVar(&restart, "restart", false, "restart the bot")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}
