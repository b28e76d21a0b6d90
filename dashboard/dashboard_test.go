package dashboard_test

import (
	"context"
	"testing"

	"github.com/agentdesk/agentdesk-go/agents"
	"github.com/agentdesk/agentdesk-go/billing"
	"github.com/agentdesk/agentdesk-go/dashboard"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/stretchr/testify/require"
)

type fakeBalanceAPI struct {
	balanceFn func(ctx context.Context) (*users.Balance, error)
}

func (f fakeBalanceAPI) Balance(ctx context.Context) (*users.Balance, error) {
	if f.balanceFn == nil {
		return &users.Balance{Balance: 25, Currency: "USD", UserID: 1}, nil
	}
	return f.balanceFn(ctx)
}

type fakeBillingAPI struct {
	plansFn         func(ctx context.Context) ([]billing.Plan, error)
	subscriptionsFn func(ctx context.Context) ([]billing.Subscription, error)
}

func (f fakeBillingAPI) ActivePlans(ctx context.Context) ([]billing.Plan, error) {
	if f.plansFn == nil {
		return []billing.Plan{{ID: 1, Name: "Monthly", Days: 30, Price: 10, IsActive: true}}, nil
	}
	return f.plansFn(ctx)
}

func (f fakeBillingAPI) ActiveSubscriptions(ctx context.Context) ([]billing.Subscription, error) {
	if f.subscriptionsFn == nil {
		return []billing.Subscription{{ID: 7, PlanID: 1, IsActive: true}}, nil
	}
	return f.subscriptionsFn(ctx)
}

type fakeAgentsAPI struct {
	availableFn func(ctx context.Context) ([]agents.Agent, error)
	mineFn      func(ctx context.Context) ([]agents.Connection, error)
}

func (f fakeAgentsAPI) Available(ctx context.Context) ([]agents.Agent, error) {
	if f.availableFn == nil {
		return []agents.Agent{{ID: 3, Name: "Researcher", IsActive: true}}, nil
	}
	return f.availableFn(ctx)
}

func (f fakeAgentsAPI) Mine(ctx context.Context) ([]agents.Connection, error) {
	if f.mineFn == nil {
		return []agents.Connection{{ID: 9, AgentID: 3, AgentName: "Researcher"}}, nil
	}
	return f.mineFn(ctx)
}

func TestOverviewJoinsAllThreeLoads(t *testing.T) {
	service := dashboard.NewService(fakeBalanceAPI{}, fakeBillingAPI{}, fakeAgentsAPI{})

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 25.0, overview.Balance.Balance)
	require.Len(t, overview.Plans, 1)
	require.Len(t, overview.Subscriptions, 1)
}

func TestOverviewFailsWholeWhenOneLoadFails(t *testing.T) {
	failing := fakeBillingAPI{
		subscriptionsFn: func(ctx context.Context) ([]billing.Subscription, error) {
			return nil, &rest.APIError{StatusCode: 500, Message: "HTTP error! status: 500"}
		},
	}
	service := dashboard.NewService(fakeBalanceAPI{}, failing, fakeAgentsAPI{})

	overview, err := service.Overview(context.Background())
	require.Error(t, err)
	require.Nil(t, overview)
	require.Equal(t, "HTTP error! status: 500", rest.Message(err))
}

func TestAgentsViewJoinsBothLoads(t *testing.T) {
	service := dashboard.NewService(fakeBalanceAPI{}, fakeBillingAPI{}, fakeAgentsAPI{})

	view, err := service.AgentsView(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Available, 1)
	require.Len(t, view.Mine, 1)
}

func TestAgentsViewFailsWholeWhenOwnedListFails(t *testing.T) {
	failing := fakeAgentsAPI{
		mineFn: func(ctx context.Context) ([]agents.Connection, error) {
			return nil, &rest.APIError{StatusCode: 403, Message: "no active subscription"}
		},
	}
	service := dashboard.NewService(fakeBalanceAPI{}, fakeBillingAPI{}, failing)

	view, err := service.AgentsView(context.Background())
	require.Error(t, err)
	require.Nil(t, view)
	require.Equal(t, "no active subscription", rest.Message(err))
}
