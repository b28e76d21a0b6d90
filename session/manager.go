package session

import (
	"context"
	"sync"

	"github.com/agentdesk/agentdesk-go/auth"
	"github.com/agentdesk/agentdesk-go/credstore"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// State is the session lifecycle position.
type State int

const (
	// Initializing means the stored credential has not been validated yet.
	Initializing State = iota
	// Anonymous means no validated credential is held.
	Anonymous
	// Authenticated means a profile was successfully loaded for the credential.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is a consistent view of the session at one point in time.
// IsAuthenticated is true exactly when User is present.
type Snapshot struct {
	State           State
	User            *users.Profile
	IsAuthenticated bool
	IsLoading       bool
}

// Listener is notified after every state transition.
type Listener func(Snapshot)

// AuthAPI is the slice of the auth façade the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, credentials auth.Credentials) (*auth.TokenResponse, error)
}

// ProfileAPI is the slice of the users façade the manager needs.
type ProfileAPI interface {
	Me(ctx context.Context) (*users.Profile, error)
}

// Manager owns the cross-component authentication state. It is the only
// writer of that state: all mutation goes through Initialize, Login, Logout
// and RefreshProfile.
type Manager struct {
	store    credstore.Store
	authAPI  AuthAPI
	profiles ProfileAPI
	logger   zerolog.Logger

	lock      sync.RWMutex
	state     State
	user      *users.Profile
	listeners []Listener
}

// Option modifies a Manager during construction.
type Option func(*Manager)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager in the Initializing state.
func NewManager(store credstore.Store, authAPI AuthAPI, profiles ProfileAPI, options ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	if authAPI == nil {
		return nil, errors.New("[NewManager] authAPI is required")
	}
	if profiles == nil {
		return nil, errors.New("[NewManager] profiles API is required")
	}

	manager := &Manager{
		store:    store,
		authAPI:  authAPI,
		profiles: profiles,
		logger:   zerolog.Nop(),
		state:    Initializing,
	}
	for _, opt := range options {
		opt(manager)
	}
	return manager, nil
}

// Initialize resolves the Initializing state: a held credential is exchanged
// for a fresh profile; an absent or rejected credential leaves the session
// Anonymous with the store cleared. A rejected credential is not an error
// here, it is the expected lazy-cleanup path.
func (m *Manager) Initialize(ctx context.Context) error {
	if !m.store.HasToken() {
		m.becomeAnonymous(true)
		return nil
	}

	if err := m.RefreshProfile(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("stored credential rejected, clearing session")
		m.becomeAnonymous(true)
		return nil
	}
	return nil
}

// Login exchanges credentials for a token, persists it, then loads the
// profile. A profile-load failure aborts the transition: the session stays
// unauthenticated while the already-persisted token is left for Initialize
// to validate and clean up on the next start.
func (m *Manager) Login(ctx context.Context, credentials auth.Credentials) error {
	response, err := m.authAPI.Login(ctx, credentials)
	if err != nil {
		return errors.Wrap(err, "[Manager.Login] exchanging credentials")
	}

	if err := m.store.SaveToken(response.AccessToken); err != nil {
		return errors.Wrap(err, "[Manager.Login] persisting token")
	}

	if err := m.RefreshProfile(ctx); err != nil {
		return errors.Wrap(err, "[Manager.Login] loading profile")
	}

	m.logger.Info().Str("email", credentials.Email).Msg("logged in")
	return nil
}

// Logout clears the store and the in-memory user. It never fails: a storage
// error is logged and the in-memory session is dropped regardless.
func (m *Manager) Logout() {
	m.becomeAnonymous(true)
	m.logger.Info().Msg("logged out")
}

// RefreshProfile re-fetches the profile for the held credential and caches
// it. Callers treat a failure as "credential invalid"; this method itself
// does not clear anything.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	profile, err := m.profiles.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "[Manager.RefreshProfile] fetching profile")
	}

	if err := m.store.SaveProfile(profile); err != nil {
		m.logger.Warn().Err(err).Msg("could not cache profile")
	}

	m.lock.Lock()
	m.state = Authenticated
	m.user = profile
	snapshot := m.snapshotLocked()
	m.lock.Unlock()

	m.notify(snapshot)
	return nil
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.snapshotLocked()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

// Subscribe registers a listener for state transitions. Listeners run
// synchronously, outside the manager's lock.
func (m *Manager) Subscribe(listener Listener) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.listeners = append(m.listeners, listener)
}

func (m *Manager) becomeAnonymous(clearStore bool) {
	if clearStore {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn().Err(err).Msg("could not clear credential store")
		}
	}

	m.lock.Lock()
	m.state = Anonymous
	m.user = nil
	snapshot := m.snapshotLocked()
	m.lock.Unlock()

	m.notify(snapshot)
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		State:           m.state,
		User:            m.user,
		IsAuthenticated: m.user != nil,
		IsLoading:       m.state == Initializing,
	}
}

func (m *Manager) notify(snapshot Snapshot) {
	m.lock.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.lock.RUnlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}
