package users

import (
	"context"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/pkg/errors"
)

// Profile is the user-identity record returned by the platform. The client
// mirrors it as-is and does not validate it beyond JSON decoding.
type Profile struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Company     string  `json:"company"`
	IsActive    bool    `json:"is_active"`
	Balance     float64 `json:"balance"`
	IsSuperuser bool    `json:"is_superuser"`
}

// FullName returns the display name for the profile.
func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Balance is the account balance as reported by the platform.
type Balance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	UserID   int64   `json:"user_id"`
}

// ProfileUpdate carries the optional profile fields to change. Nil fields are
// omitted from the request and left untouched by the backend.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Company   *string `json:"company,omitempty"`
}

// Service is the typed façade over the user resource area.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Me fetches the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.client.Get(ctx, "/user/me/profile", &profile); err != nil {
		return nil, errors.Wrap(err, "[Service.Me] fetching profile")
	}
	return &profile, nil
}

// Balance fetches the authenticated user's account balance.
func (s *Service) Balance(ctx context.Context) (*Balance, error) {
	var balance Balance
	if err := s.client.Get(ctx, "/user/balance", &balance); err != nil {
		return nil, errors.Wrap(err, "[Service.Balance] fetching balance")
	}
	return &balance, nil
}

// Update changes the given profile fields and returns the updated profile.
func (s *Service) Update(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := s.client.Put(ctx, "/user/profile", update, &profile); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] updating profile")
	}
	return &profile, nil
}
