// Package dashboard aggregates independent platform reads into composite
// views. Sub-loads run concurrently and the composite fails as a whole when
// any one of them fails: callers never see partial results as success.
package dashboard

import (
	"context"

	"github.com/agentdesk/agentdesk-go/agents"
	"github.com/agentdesk/agentdesk-go/billing"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// BalanceAPI is the slice of the users façade the dashboard needs.
type BalanceAPI interface {
	Balance(ctx context.Context) (*users.Balance, error)
}

// BillingAPI is the slice of the billing façade the dashboard needs.
type BillingAPI interface {
	ActivePlans(ctx context.Context) ([]billing.Plan, error)
	ActiveSubscriptions(ctx context.Context) ([]billing.Subscription, error)
}

// AgentsAPI is the slice of the agents façade the dashboard needs.
type AgentsAPI interface {
	Available(ctx context.Context) ([]agents.Agent, error)
	Mine(ctx context.Context) ([]agents.Connection, error)
}

// Overview is the billing-side composite view.
type Overview struct {
	Balance       *users.Balance
	Plans         []billing.Plan
	Subscriptions []billing.Subscription
}

// AgentsView pairs the platform's agent catalogue with the user's
// connections.
type AgentsView struct {
	Available []agents.Agent
	Mine      []agents.Connection
}

// Service composes domain façades into dashboard views.
type Service struct {
	userAPI    BalanceAPI
	billingAPI BillingAPI
	agentsAPI  AgentsAPI
}

func NewService(userAPI BalanceAPI, billingAPI BillingAPI, agentsAPI AgentsAPI) *Service {
	return &Service{
		userAPI:    userAPI,
		billingAPI: billingAPI,
		agentsAPI:  agentsAPI,
	}
}

// Overview loads balance, active plans and active subscriptions together.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var view Overview

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		balance, err := s.userAPI.Balance(ctx)
		if err != nil {
			return err
		}
		view.Balance = balance
		return nil
	})
	group.Go(func() error {
		plans, err := s.billingAPI.ActivePlans(ctx)
		if err != nil {
			return err
		}
		view.Plans = plans
		return nil
	})
	group.Go(func() error {
		subscriptions, err := s.billingAPI.ActiveSubscriptions(ctx)
		if err != nil {
			return err
		}
		view.Subscriptions = subscriptions
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "[Service.Overview] composite load")
	}
	return &view, nil
}

// AgentsView loads the agent catalogue and the user's connections together.
func (s *Service) AgentsView(ctx context.Context) (*AgentsView, error) {
	var view AgentsView

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		available, err := s.agentsAPI.Available(ctx)
		if err != nil {
			return err
		}
		view.Available = available
		return nil
	})
	group.Go(func() error {
		mine, err := s.agentsAPI.Mine(ctx)
		if err != nil {
			return err
		}
		view.Mine = mine
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "[Service.AgentsView] composite load")
	}
	return &view, nil
}
