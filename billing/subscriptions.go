package billing

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Subscription is a purchased plan period.
type Subscription struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	PlanID    int64   `json:"plan_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	IsActive  bool    `json:"is_active"`
	TotalPaid float64 `json:"total_paid"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Subscribe purchases a plan, paying from the account balance.
func (s *Service) Subscribe(ctx context.Context, planID int64) (*Subscription, error) {
	body := map[string]int64{"plan_id": planID}
	var subscription Subscription
	if err := s.client.Post(ctx, "/subscriptions/", body, &subscription); err != nil {
		return nil, errors.Wrapf(err, "[Service.Subscribe] subscribing to plan %d", planID)
	}
	return &subscription, nil
}

// Subscriptions lists every subscription the user has held.
func (s *Service) Subscriptions(ctx context.Context) ([]Subscription, error) {
	var subscriptions []Subscription
	if err := s.client.Get(ctx, "/subscriptions/my", &subscriptions); err != nil {
		return nil, errors.Wrap(err, "[Service.Subscriptions] listing subscriptions")
	}
	return subscriptions, nil
}

// ActiveSubscriptions lists the subscriptions currently in force.
func (s *Service) ActiveSubscriptions(ctx context.Context) ([]Subscription, error) {
	var subscriptions []Subscription
	if err := s.client.Get(ctx, "/subscriptions/my/active", &subscriptions); err != nil {
		return nil, errors.Wrap(err, "[Service.ActiveSubscriptions] listing active subscriptions")
	}
	return subscriptions, nil
}

// Cancel ends a subscription.
func (s *Service) Cancel(ctx context.Context, subscriptionID int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/subscriptions/%d", subscriptionID), nil); err != nil {
		return errors.Wrapf(err, "[Service.Cancel] cancelling subscription %d", subscriptionID)
	}
	return nil
}
