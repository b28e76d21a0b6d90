package auth

import (
	"context"

	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/pkg/errors"
)

// Credentials are the login inputs exchanged for a bearer token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the platform's answer to a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Registration carries the sign-up form fields.
type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Company         string `json:"company"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Service is the typed façade over the authentication endpoints.
type Service struct {
	client *rest.Client
}

func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Login exchanges credentials for a bearer token. It does not persist the
// token, that is the session manager's job.
func (s *Service) Login(ctx context.Context, credentials Credentials) (*TokenResponse, error) {
	var response TokenResponse
	if err := s.client.Post(ctx, "/auth/login", credentials, &response); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] exchanging credentials")
	}
	return &response, nil
}

// Register creates a new account and returns its profile. The caller is not
// logged in afterwards, a separate Login is required.
func (s *Service) Register(ctx context.Context, registration Registration) (*users.Profile, error) {
	var profile users.Profile
	if err := s.client.Post(ctx, "/auth/register", registration, &profile); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] creating account")
	}
	return &profile, nil
}
