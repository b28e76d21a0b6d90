package main

import (
	"time"

	"github.com/agentdesk/agentdesk-go/agents"
	"github.com/agentdesk/agentdesk-go/auth"
	"github.com/agentdesk/agentdesk-go/billing"
	"github.com/agentdesk/agentdesk-go/credstore"
	"github.com/agentdesk/agentdesk-go/dashboard"
	"github.com/agentdesk/agentdesk-go/internal/config"
	"github.com/agentdesk/agentdesk-go/metrics"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/agentdesk/agentdesk-go/session"
	"github.com/agentdesk/agentdesk-go/telegram"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/agentdesk/agentdesk-go/wallets"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// app wires the credential store, HTTP client, domain façades and the
// session manager together. The session manager is the only holder of
// cross-command authentication state and is passed down explicitly.
type app struct {
	config  config.Config
	logger  zerolog.Logger
	store   credstore.Store
	session *session.Manager

	auth      *auth.Service
	users     *users.Service
	agents    *agents.Service
	billing   *billing.Service
	wallets   *wallets.Service
	telegram  *telegram.Service
	metrics   *metrics.Service
	dashboard *dashboard.Service
}

func newApp(c config.Config, logger zerolog.Logger) (*app, error) {
	store := credstore.NewFileStore(c.GetDataFolder())

	client := rest.New(
		c.GetAPIBaseURL(),
		store,
		rest.WithTimeout(time.Duration(c.GetRequestTimeout())*time.Second),
		rest.WithLogger(logger),
	)

	authService := auth.NewService(client)
	userService := users.NewService(client)
	billingService := billing.NewService(client)
	agentService := agents.NewService(client)

	manager, err := session.NewManager(store, authService, userService, session.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] creating session manager")
	}

	return &app{
		config:    c,
		logger:    logger,
		store:     store,
		session:   manager,
		auth:      authService,
		users:     userService,
		agents:    agentService,
		billing:   billingService,
		wallets:   wallets.NewService(client),
		telegram:  telegram.NewService(client),
		metrics:   metrics.NewService(client),
		dashboard: dashboard.NewService(userService, billingService, agentService),
	}, nil
}
