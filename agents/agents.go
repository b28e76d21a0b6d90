package agents

import (
	"context"
	"fmt"
	"io"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// Agent is a platform-owned AI agent available for connection.
type Agent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	UserAgentID *int64 `json:"user_agent_id,omitempty"`
	IsUserAgent bool   `json:"is_user_agent"`
}

// Connection is a user's link to an agent, the unit most operations act on.
type Connection struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	AgentID     int64  `json:"agent_id"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	AgentName   string `json:"agent_name"`
	AgentPrompt string `json:"agent_prompt"`
}

// Document is an uploaded knowledge file attached to a connection.
type Document struct {
	ID         int64  `json:"id"`
	AgentID    int64  `json:"agent_id"`
	UserID     int64  `json:"user_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	UploadedAt string `json:"uploaded_at"`
	Processed  bool   `json:"processed"`
}

// Analysis is the agent's answer to an analyze request.
type Analysis struct {
	Success        bool    `json:"success"`
	AgentID        int64   `json:"agent_id"`
	Response       string  `json:"response"`
	ProcessingTime float64 `json:"processing_time"`
	DocumentsUsed  int     `json:"documents_used"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// StatusMessage is the backend's acknowledgement shape for mutations.
type StatusMessage struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

// Service is the typed façade over the agent resource area.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Available lists every agent the platform offers.
func (s *Service) Available(ctx context.Context) ([]Agent, error) {
	var available []Agent
	if err := s.client.Get(ctx, "/user/agents/", &available); err != nil {
		return nil, errors.Wrap(err, "[Service.Available] listing agents")
	}
	return available, nil
}

// Mine lists the user's connected agents.
func (s *Service) Mine(ctx context.Context) ([]Connection, error) {
	var mine []Connection
	if err := s.client.Get(ctx, "/user/agents/my", &mine); err != nil {
		return nil, errors.Wrap(err, "[Service.Mine] listing connections")
	}
	return mine, nil
}

// Connect links the user to an agent.
func (s *Service) Connect(ctx context.Context, agentID int64) (*Connection, error) {
	body := map[string]int64{"agent_id": agentID}
	var connection Connection
	if err := s.client.Post(ctx, "/user/agents/", body, &connection); err != nil {
		return nil, errors.Wrapf(err, "[Service.Connect] connecting to agent %d", agentID)
	}
	return &connection, nil
}

// Disconnect removes a connection.
func (s *Service) Disconnect(ctx context.Context, connectionID int64) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d", connectionID)
	if err := s.client.Delete(ctx, path, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.Disconnect] disconnecting %d", connectionID)
	}
	return &status, nil
}

// UploadDocument attaches a knowledge file to a connection.
func (s *Service) UploadDocument(ctx context.Context, connectionID int64, filename string, file io.Reader) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d/documents", connectionID)
	if err := s.client.Upload(ctx, path, filename, file, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.UploadDocument] uploading %s", filename)
	}
	return &status, nil
}

// Documents lists the files attached to a connection.
func (s *Service) Documents(ctx context.Context, connectionID int64) ([]Document, error) {
	var documents []Document
	path := fmt.Sprintf("/user/agents/%d/documents", connectionID)
	if err := s.client.Get(ctx, path, &documents); err != nil {
		return nil, errors.Wrapf(err, "[Service.Documents] listing documents for %d", connectionID)
	}
	return documents, nil
}

// DeleteDocument removes a single document.
func (s *Service) DeleteDocument(ctx context.Context, documentID int64) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/documents/%d", documentID)
	if err := s.client.Delete(ctx, path, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.DeleteDocument] deleting document %d", documentID)
	}
	return &status, nil
}

// ClearDocuments removes every document attached to a connection.
func (s *Service) ClearDocuments(ctx context.Context, connectionID int64) (*StatusMessage, error) {
	var status StatusMessage
	path := fmt.Sprintf("/user/agents/%d/documents", connectionID)
	if err := s.client.Delete(ctx, path, &status); err != nil {
		return nil, errors.Wrapf(err, "[Service.ClearDocuments] clearing documents for %d", connectionID)
	}
	return &status, nil
}

// Analyze runs text through a connected agent.
func (s *Service) Analyze(ctx context.Context, connectionID int64, text string) (*Analysis, error) {
	body := map[string]string{"text": text}
	var analysis Analysis
	path := fmt.Sprintf("/user/agents/%d/analyze", connectionID)
	if err := s.client.Post(ctx, path, body, &analysis); err != nil {
		return nil, errors.Wrapf(err, "[Service.Analyze] analyzing with %d", connectionID)
	}
	return &analysis, nil
}
