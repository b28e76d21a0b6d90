package telegram

import (
	"context"
	"fmt"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// Config is the Telegram bot wiring for one agent.
type Config struct {
	ID        int64  `json:"id"`
	AgentID   int64  `json:"agent_id"`
	UserID    int64  `json:"user_id"`
	BotToken  string `json:"bot_token"`
	ChatID    string `json:"chat_id"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ConfigInput carries the editable config fields.
type ConfigInput struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
	IsActive bool   `json:"is_active"`
}

// MonitoredChat is a chat the agent's bot watches for keywords.
type MonitoredChat struct {
	ID               int64    `json:"id"`
	TelegramConfigID int64    `json:"telegram_config_id"`
	ChatID           string   `json:"chat_id"`
	ChatTitle        *string  `json:"chat_title,omitempty"`
	ChatType         string   `json:"chat_type"`
	IsActive         bool     `json:"is_active"`
	Keywords         []string `json:"keywords,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// MonitoredChatInput carries the editable monitored-chat fields.
type MonitoredChatInput struct {
	ChatID    string   `json:"chat_id"`
	ChatTitle *string  `json:"chat_title,omitempty"`
	ChatType  string   `json:"chat_type"`
	IsActive  bool     `json:"is_active"`
	Keywords  []string `json:"keywords,omitempty"`
}

// BotStatus is the backend's report on the agent's running bot.
type BotStatus struct {
	BotToken            string   `json:"bot_token"`
	IsActive            bool     `json:"is_active"`
	MonitoredChatsCount int      `json:"monitored_chats_count"`
	ChatIDs             []string `json:"chat_ids"`
}

// StatusMessage is the acknowledgement shape for mutations.
type StatusMessage struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

// Service is the typed façade over the Telegram resource area. The bot
// itself runs backend-side, these calls configure and observe it.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Config fetches the bot configuration for an agent.
func (s *Service) Config(ctx context.Context, agentID int64) (*Config, error) {
	var config Config
	path := fmt.Sprintf("/user/agents/%d/telegram-config", agentID)
	if err := s.client.Get(ctx, path, &config); err != nil {
		return nil, errors.Wrapf(err, "[Service.Config] fetching config for agent %d", agentID)
	}
	return &config, nil
}

// SaveConfig creates or replaces the bot configuration for an agent.
func (s *Service) SaveConfig(ctx context.Context, agentID int64, input ConfigInput) (*Config, error) {
	var config Config
	path := fmt.Sprintf("/user/agents/%d/telegram-config", agentID)
	if err := s.client.Post(ctx, path, input, &config); err != nil {
		return nil, errors.Wrapf(err, "[Service.SaveConfig] saving config for agent %d", agentID)
	}
	return &config, nil
}

// DeleteConfig removes the bot configuration for an agent.
func (s *Service) DeleteConfig(ctx context.Context, agentID int64) error {
	path := fmt.Sprintf("/user/agents/%d/telegram-config", agentID)
	if err := s.client.Delete(ctx, path, nil); err != nil {
		return errors.Wrapf(err, "[Service.DeleteConfig] deleting config for agent %d", agentID)
	}
	return nil
}

// SendTest asks the bot to send a test message to its configured chat.
func (s *Service) SendTest(ctx context.Context, agentID int64, message string) (*StatusMessage, error) {
	body := map[string]string{"message": message}
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d/telegram-config/test", agentID)
	if err := s.client.Post(ctx, path, body, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.SendTest] sending test for agent %d", agentID)
	}
	return &status, nil
}

// MonitoredChats lists the chats watched for an agent.
func (s *Service) MonitoredChats(ctx context.Context, agentID int64) ([]MonitoredChat, error) {
	var chats []MonitoredChat
	path := fmt.Sprintf("/user/agents/%d/telegram-config/monitored-chats", agentID)
	if err := s.client.Get(ctx, path, &chats); err != nil {
		return nil, errors.Wrapf(err, "[Service.MonitoredChats] listing chats for agent %d", agentID)
	}
	return chats, nil
}

// AddMonitoredChat starts watching a chat.
func (s *Service) AddMonitoredChat(ctx context.Context, agentID int64, input MonitoredChatInput) (*MonitoredChat, error) {
	var chat MonitoredChat
	path := fmt.Sprintf("/user/agents/%d/telegram-config/monitored-chats", agentID)
	if err := s.client.Post(ctx, path, input, &chat); err != nil {
		return nil, errors.Wrapf(err, "[Service.AddMonitoredChat] adding chat for agent %d", agentID)
	}
	return &chat, nil
}

// UpdateMonitoredChat changes a watched chat.
func (s *Service) UpdateMonitoredChat(ctx context.Context, agentID, chatID int64, input MonitoredChatInput) (*MonitoredChat, error) {
	var chat MonitoredChat
	path := fmt.Sprintf("/user/agents/%d/telegram-config/monitored-chats/%d", agentID, chatID)
	if err := s.client.Put(ctx, path, input, &chat); err != nil {
		return nil, errors.Wrapf(err, "[Service.UpdateMonitoredChat] updating chat %d", chatID)
	}
	return &chat, nil
}

// DeleteMonitoredChat stops watching a chat.
func (s *Service) DeleteMonitoredChat(ctx context.Context, agentID, chatID int64) error {
	path := fmt.Sprintf("/user/agents/%d/telegram-config/monitored-chats/%d", agentID, chatID)
	if err := s.client.Delete(ctx, path, nil); err != nil {
		return errors.Wrapf(err, "[Service.DeleteMonitoredChat] deleting chat %d", chatID)
	}
	return nil
}

// TestMonitoredChat asks the backend to probe one watched chat.
func (s *Service) TestMonitoredChat(ctx context.Context, agentID, chatID int64) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d/telegram-config/monitored-chats/%d/test", agentID, chatID)
	if err := s.client.Post(ctx, path, nil, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.TestMonitoredChat] testing chat %d", chatID)
	}
	return &status, nil
}

// BotStatus fetches the running state of the agent's bot.
func (s *Service) BotStatus(ctx context.Context, agentID int64) (*BotStatus, error) {
	var status BotStatus
	path := fmt.Sprintf("/user/agents/%d/aiogram-bot/status", agentID)
	if err := s.client.Get(ctx, path, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.BotStatus] fetching bot status for agent %d", agentID)
	}
	return &status, nil
}

// RestartBot restarts the agent's bot.
func (s *Service) RestartBot(ctx context.Context, agentID int64) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d/aiogram-bot/restart", agentID)
	if err := s.client.Post(ctx, path, nil, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.RestartBot] restarting bot for agent %d", agentID)
	}
	return &status, nil
}
