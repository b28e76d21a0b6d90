package wallets

import (
	"context"
	"fmt"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// Wallet is a deposit address generated for the user on one network.
type Wallet struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Address     string  `json:"address"`
	Network     string  `json:"network"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	LastChecked *string `json:"last_checked,omitempty"`
}

// Balance is the on-chain balance for a wallet, as observed by the backend.
type Balance struct {
	WalletAddress string  `json:"wallet_address"`
	Network       string  `json:"network"`
	USDTBalance   float64 `json:"usdt_balance"`
	USDEquivalent float64 `json:"usd_equivalent"`
	LastUpdated   string  `json:"last_updated"`
}

// Service is the typed façade over the wallet resource area. All blockchain
// work happens backend-side, these calls are pass-through.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Generate creates a deposit wallet on the given network.
func (s *Service) Generate(ctx context.Context, network string) (*Wallet, error) {
	body := map[string]string{"network": network}
	var wallet Wallet
	if err := s.client.Post(ctx, "/wallets/generate", body, &wallet); err != nil {
		return nil, errors.Wrapf(err, "[Service.Generate] generating %s wallet", network)
	}
	return &wallet, nil
}

// Mine lists the user's wallets.
func (s *Service) Mine(ctx context.Context) ([]Wallet, error) {
	var mine []Wallet
	if err := s.client.Get(ctx, "/wallets/my", &mine); err != nil {
		return nil, errors.Wrap(err, "[Service.Mine] listing wallets")
	}
	return mine, nil
}

// ByNetwork fetches the wallet for one network.
func (s *Service) ByNetwork(ctx context.Context, network string) (*Wallet, error) {
	var wallet Wallet
	if err := s.client.Get(ctx, fmt.Sprintf("/wallets/my/%s", network), &wallet); err != nil {
		return nil, errors.Wrapf(err, "[Service.ByNetwork] fetching %s wallet", network)
	}
	return &wallet, nil
}

// Balance fetches the observed balance for one network's wallet.
func (s *Service) Balance(ctx context.Context, network string) (*Balance, error) {
	var balance Balance
	if err := s.client.Get(ctx, fmt.Sprintf("/wallets/my/%s/balance", network), &balance); err != nil {
		return nil, errors.Wrapf(err, "[Service.Balance] fetching %s balance", network)
	}
	return &balance, nil
}
