package session_test

import (
	"context"
	"testing"

	"github.com/agentdesk/agentdesk-go/auth"
	"github.com/agentdesk/agentdesk-go/credstore/storefakes"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/agentdesk/agentdesk-go/session"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "john.doe@example.com"
	testPassword = "password123"
	testToken    = "issued-token-1"
)

type fakeAuthAPI struct {
	loginFn func(ctx context.Context, credentials auth.Credentials) (*auth.TokenResponse, error)
}

func (f fakeAuthAPI) Login(ctx context.Context, credentials auth.Credentials) (*auth.TokenResponse, error) {
	if f.loginFn == nil {
		return &auth.TokenResponse{AccessToken: testToken, TokenType: "bearer", ExpiresIn: 3600}, nil
	}
	return f.loginFn(ctx, credentials)
}

type fakeProfileAPI struct {
	meFn func(ctx context.Context) (*users.Profile, error)
}

func (f fakeProfileAPI) Me(ctx context.Context) (*users.Profile, error) {
	if f.meFn == nil {
		return testProfile(), nil
	}
	return f.meFn(ctx)
}

func testProfile() *users.Profile {
	return &users.Profile{
		ID:        42,
		Email:     testEmail,
		FirstName: "John",
		LastName:  "Doe",
		Company:   "Acme",
		IsActive:  true,
	}
}

type testFixture struct {
	store    *storefakes.FakeStore
	authAPI  fakeAuthAPI
	profiles fakeProfileAPI
	manager  *session.Manager
}

func setupTestFixture(t *testing.T, authAPI fakeAuthAPI, profiles fakeProfileAPI) *testFixture {
	t.Helper()

	store := storefakes.NewFakeStore()
	manager, err := session.NewManager(store, authAPI, profiles)
	require.NoError(t, err)

	return &testFixture{
		store:    store,
		authAPI:  authAPI,
		profiles: profiles,
		manager:  manager,
	}
}

func TestManagerStartsInitializing(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Initializing, snapshot.State)
	require.True(t, snapshot.IsLoading)
	require.False(t, snapshot.IsAuthenticated)
	require.Nil(t, snapshot.User)
}

func TestInitializeWithoutTokenBecomesAnonymous(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})

	require.NoError(t, f.manager.Initialize(context.Background()))

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Anonymous, snapshot.State)
	require.False(t, snapshot.IsLoading)
	require.False(t, snapshot.IsAuthenticated)
}

func TestInitializeWithValidTokenBecomesAuthenticated(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})
	require.NoError(t, f.store.SaveToken(testToken))

	require.NoError(t, f.manager.Initialize(context.Background()))

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Authenticated, snapshot.State)
	require.True(t, snapshot.IsAuthenticated)
	require.Equal(t, testProfile(), snapshot.User)

	cached, ok := f.store.Profile()
	require.True(t, ok)
	require.Equal(t, testProfile(), cached)
}

func TestInitializeWithRejectedTokenClearsTheStore(t *testing.T) {
	profiles := fakeProfileAPI{
		meFn: func(ctx context.Context) (*users.Profile, error) {
			return nil, &rest.APIError{StatusCode: 401, Message: "Could not validate credentials"}
		},
	}
	f := setupTestFixture(t, fakeAuthAPI{}, profiles)
	require.NoError(t, f.store.SaveToken("stale-token"))
	require.NoError(t, f.store.SaveProfile(testProfile()))

	require.NoError(t, f.manager.Initialize(context.Background()))

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Anonymous, snapshot.State)
	require.False(t, snapshot.IsAuthenticated)
	require.False(t, f.store.HasToken())
	_, ok := f.store.Profile()
	require.False(t, ok)
}

func TestLoginHappyPath(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})
	require.NoError(t, f.manager.Initialize(context.Background()))

	err := f.manager.Login(context.Background(), auth.Credentials{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Authenticated, snapshot.State)
	require.Equal(t, testProfile(), snapshot.User)

	token, ok := f.store.Token()
	require.True(t, ok)
	require.Equal(t, testToken, token)
}

func TestLoginWithBadCredentialsStaysAnonymous(t *testing.T) {
	authAPI := fakeAuthAPI{
		loginFn: func(ctx context.Context, credentials auth.Credentials) (*auth.TokenResponse, error) {
			return nil, &rest.APIError{StatusCode: 401, Message: "Incorrect email or password"}
		},
	}
	f := setupTestFixture(t, authAPI, fakeProfileAPI{})
	require.NoError(t, f.manager.Initialize(context.Background()))

	err := f.manager.Login(context.Background(), auth.Credentials{Email: testEmail, Password: "bad"})
	require.Error(t, err)
	require.Equal(t, "Incorrect email or password", rest.Message(err))

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Anonymous, snapshot.State)
	require.False(t, f.store.HasToken())
}

// A profile fetch that fails after the token exchange must not report the
// session authenticated. The persisted token is intentionally left behind,
// the next Initialize validates and clears it.
func TestLoginProfileFetchFailureIsNotAuthenticated(t *testing.T) {
	profiles := fakeProfileAPI{
		meFn: func(ctx context.Context) (*users.Profile, error) {
			return nil, errors.New("connection refused")
		},
	}
	f := setupTestFixture(t, fakeAuthAPI{}, profiles)
	require.NoError(t, f.manager.Initialize(context.Background()))

	err := f.manager.Login(context.Background(), auth.Credentials{Email: testEmail, Password: testPassword})
	require.Error(t, err)

	snapshot := f.manager.Snapshot()
	require.False(t, snapshot.IsAuthenticated)
	require.Nil(t, snapshot.User)

	// Dangling credential until the next Initialize.
	token, ok := f.store.Token()
	require.True(t, ok)
	require.Equal(t, testToken, token)
}

func TestLogoutClearsEverythingFromAnyState(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})
	require.NoError(t, f.manager.Initialize(context.Background()))
	require.NoError(t, f.manager.Login(context.Background(), auth.Credentials{Email: testEmail, Password: testPassword}))
	require.True(t, f.manager.Snapshot().IsAuthenticated)

	f.manager.Logout()

	snapshot := f.manager.Snapshot()
	require.Equal(t, session.Anonymous, snapshot.State)
	require.Nil(t, snapshot.User)
	require.False(t, f.store.HasToken())
	_, ok := f.store.Profile()
	require.False(t, ok)

	// Logging out twice is harmless.
	f.manager.Logout()
	require.False(t, f.store.HasToken())
}

func TestRefreshProfileUpdatesUserAndCache(t *testing.T) {
	updated := testProfile()
	updated.Company = "NewCo"

	calls := 0
	profiles := fakeProfileAPI{
		meFn: func(ctx context.Context) (*users.Profile, error) {
			calls++
			if calls == 1 {
				return testProfile(), nil
			}
			copied := *updated
			return &copied, nil
		},
	}
	f := setupTestFixture(t, fakeAuthAPI{}, profiles)
	require.NoError(t, f.store.SaveToken(testToken))
	require.NoError(t, f.manager.Initialize(context.Background()))

	require.NoError(t, f.manager.RefreshProfile(context.Background()))

	snapshot := f.manager.Snapshot()
	require.Equal(t, "NewCo", snapshot.User.Company)
	cached, ok := f.store.Profile()
	require.True(t, ok)
	require.Equal(t, "NewCo", cached.Company)
}

func TestRefreshProfileFailureDoesNotClearSession(t *testing.T) {
	calls := 0
	profiles := fakeProfileAPI{
		meFn: func(ctx context.Context) (*users.Profile, error) {
			calls++
			if calls == 1 {
				return testProfile(), nil
			}
			return nil, &rest.APIError{StatusCode: 500, Message: "HTTP error! status: 500"}
		},
	}
	f := setupTestFixture(t, fakeAuthAPI{}, profiles)
	require.NoError(t, f.store.SaveToken(testToken))
	require.NoError(t, f.manager.Initialize(context.Background()))

	err := f.manager.RefreshProfile(context.Background())
	require.Error(t, err)
	require.Equal(t, "HTTP error! status: 500", rest.Message(err))

	// The caller decides what a refresh failure means; the manager keeps
	// the last known good state.
	require.True(t, f.manager.Snapshot().IsAuthenticated)
}

func TestListenersSeeTransitions(t *testing.T) {
	f := setupTestFixture(t, fakeAuthAPI{}, fakeProfileAPI{})

	var states []session.State
	f.manager.Subscribe(func(snapshot session.Snapshot) {
		states = append(states, snapshot.State)
	})

	require.NoError(t, f.manager.Initialize(context.Background()))
	require.NoError(t, f.manager.Login(context.Background(), auth.Credentials{Email: testEmail, Password: testPassword}))
	f.manager.Logout()

	require.Equal(t, []session.State{session.Anonymous, session.Authenticated, session.Anonymous}, states)
}
