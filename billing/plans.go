package billing

import (
	"context"
	"fmt"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// Plan is a purchasable subscription plan.
type Plan struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Days            int      `json:"days"`
	Price           float64  `json:"price"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	Description     *string  `json:"description,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// PlanCreate carries the fields for a new plan. Admin only on the backend.
type PlanCreate struct {
	Name            string   `json:"name"`
	Days            int      `json:"days"`
	Price           float64  `json:"price"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	Description     *string  `json:"description,omitempty"`
}

// PlanUpdate carries optional plan changes. Nil fields are left untouched.
type PlanUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Days            *int     `json:"days,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	Description     *string  `json:"description,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// Service is the typed façade over plans and subscriptions.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Plans lists every plan, active or not.
func (s *Service) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.Get(ctx, "/plans/", &plans); err != nil {
		return nil, errors.Wrap(err, "[Service.Plans] listing plans")
	}
	return plans, nil
}

// ActivePlans lists the plans currently offered for purchase.
func (s *Service) ActivePlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.Get(ctx, "/plans/active", &plans); err != nil {
		return nil, errors.Wrap(err, "[Service.ActivePlans] listing active plans")
	}
	return plans, nil
}

// Plan fetches a single plan.
func (s *Service) Plan(ctx context.Context, planID int64) (*Plan, error) {
	var plan Plan
	if err := s.client.Get(ctx, fmt.Sprintf("/plans/%d", planID), &plan); err != nil {
		return nil, errors.Wrapf(err, "[Service.Plan] fetching plan %d", planID)
	}
	return &plan, nil
}

// CreatePlan adds a new plan.
func (s *Service) CreatePlan(ctx context.Context, create PlanCreate) (*Plan, error) {
	var plan Plan
	if err := s.client.Post(ctx, "/plans/", create, &plan); err != nil {
		return nil, errors.Wrap(err, "[Service.CreatePlan] creating plan")
	}
	return &plan, nil
}

// UpdatePlan changes an existing plan.
func (s *Service) UpdatePlan(ctx context.Context, planID int64, update PlanUpdate) (*Plan, error) {
	var plan Plan
	if err := s.client.Put(ctx, fmt.Sprintf("/plans/%d", planID), update, &plan); err != nil {
		return nil, errors.Wrapf(err, "[Service.UpdatePlan] updating plan %d", planID)
	}
	return &plan, nil
}

// DeletePlan removes a plan.
func (s *Service) DeletePlan(ctx context.Context, planID int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/plans/%d", planID), nil); err != nil {
		return errors.Wrapf(err, "[Service.DeletePlan] deleting plan %d", planID)
	}
	return nil
}

// DeactivatePlan takes a plan off sale without deleting it.
func (s *Service) DeactivatePlan(ctx context.Context, planID int64) (*Plan, error) {
	var plan Plan
	if err := s.client.Patch(ctx, fmt.Sprintf("/plans/%d/deactivate", planID), nil, &plan); err != nil {
		return nil, errors.Wrapf(err, "[Service.DeactivatePlan] deactivating plan %d", planID)
	}
	return &plan, nil
}
