package metrics

import (
	"context"
	"fmt"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// AgentMetrics is usage data for one platform agent.
type AgentMetrics struct {
	AgentID           int64   `json:"agent_id"`
	TotalRequests     int64   `json:"total_requests"`
	UniqueUsers       int64   `json:"unique_users"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	AvgDocumentsUsed  float64 `json:"avg_documents_used"`
	RecentRequests24h int64   `json:"recent_requests_24h"`
	Timestamp         string  `json:"timestamp"`
}

// AgentBreakdown is one agent's share of a user's activity.
type AgentBreakdown struct {
	AgentID           int64   `json:"agent_id"`
	Requests          int64   `json:"requests"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	AvgDocumentsUsed  float64 `json:"avg_documents_used"`
}

// UserMetrics is usage data for one user across their agents.
type UserMetrics struct {
	UserID            int64            `json:"user_id"`
	ConnectedAgents   int64            `json:"connected_agents"`
	TotalRequests     int64            `json:"total_requests"`
	AvgProcessingTime float64          `json:"avg_processing_time"`
	AgentBreakdown    []AgentBreakdown `json:"agent_breakdown"`
	Timestamp         string           `json:"timestamp"`
}

// TopAgent is one entry of the platform-wide leaderboard.
type TopAgent struct {
	AgentID           int64   `json:"agent_id"`
	Requests          int64   `json:"requests"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
}

// SystemMetrics is platform-wide usage data.
type SystemMetrics struct {
	TotalAgents       int64      `json:"total_agents"`
	ActiveConnections int64      `json:"active_connections"`
	TotalRequests     int64      `json:"total_requests"`
	RecentRequests7d  int64      `json:"recent_requests_7d"`
	TopAgents         []TopAgent `json:"top_agents"`
	Timestamp         string     `json:"timestamp"`
}

// PerformanceMetrics is latency and error-rate data.
type PerformanceMetrics struct {
	AvgProcessingTime    float64 `json:"avg_processing_time"`
	MedianProcessingTime float64 `json:"median_processing_time"`
	ErrorRatePercent     float64 `json:"error_rate_percent"`
	SlowRequests         int64   `json:"slow_requests"`
	TotalRequests        int64   `json:"total_requests"`
	Timestamp            string  `json:"timestamp"`
}

// Service is the typed façade over the metrics resource area.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Agent fetches metrics for one agent.
func (s *Service) Agent(ctx context.Context, agentID int64) (*AgentMetrics, error) {
	var m AgentMetrics
	if err := s.client.Get(ctx, fmt.Sprintf("/metrics/agent/%d", agentID), &m); err != nil {
		return nil, errors.Wrapf(err, "[Service.Agent] fetching metrics for agent %d", agentID)
	}
	return &m, nil
}

// User fetches metrics for one user. Admin only on the backend.
func (s *Service) User(ctx context.Context, userID int64) (*UserMetrics, error) {
	var m UserMetrics
	if err := s.client.Get(ctx, fmt.Sprintf("/metrics/user/%d", userID), &m); err != nil {
		return nil, errors.Wrapf(err, "[Service.User] fetching metrics for user %d", userID)
	}
	return &m, nil
}

// Mine fetches metrics for the authenticated user.
func (s *Service) Mine(ctx context.Context) (*UserMetrics, error) {
	var m UserMetrics
	if err := s.client.Get(ctx, "/metrics/my", &m); err != nil {
		return nil, errors.Wrap(err, "[Service.Mine] fetching my metrics")
	}
	return &m, nil
}

// System fetches platform-wide metrics.
func (s *Service) System(ctx context.Context) (*SystemMetrics, error) {
	var m SystemMetrics
	if err := s.client.Get(ctx, "/metrics/system", &m); err != nil {
		return nil, errors.Wrap(err, "[Service.System] fetching system metrics")
	}
	return &m, nil
}

// Performance fetches latency and error-rate metrics.
func (s *Service) Performance(ctx context.Context) (*PerformanceMetrics, error) {
	var m PerformanceMetrics
	if err := s.client.Get(ctx, "/metrics/performance", &m); err != nil {
		return nil, errors.Wrap(err, "[Service.Performance] fetching performance metrics")
	}
	return &m, nil
}
