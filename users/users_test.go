package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentdesk/agentdesk-go/internal/utils"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/agentdesk/agentdesk-go/users"
	"github.com/stretchr/testify/require"
)

func TestMeFetchesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/me/profile", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":42,"email":"john.doe@example.com","first_name":"John",
			"last_name":"Doe","company":"Acme","is_active":true,"balance":12.5,"is_superuser":false}`))
	}))
	defer server.Close()

	service := users.NewService(rest.New(server.URL, nil))
	profile, err := service.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), profile.ID)
	require.Equal(t, 12.5, profile.Balance)
	require.Equal(t, "John Doe", profile.FullName())
}

func TestBalanceFetched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/balance", r.URL.Path)
		_, _ = w.Write([]byte(`{"balance":25.0,"currency":"USD","user_id":42}`))
	}))
	defer server.Close()

	service := users.NewService(rest.New(server.URL, nil))
	balance, err := service.Balance(context.Background())
	require.NoError(t, err)
	require.Equal(t, 25.0, balance.Balance)
	require.Equal(t, "USD", balance.Currency)
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/user/profile", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"id":42,"email":"john.doe@example.com","company":"NewCo"}`))
	}))
	defer server.Close()

	service := users.NewService(rest.New(server.URL, nil))
	profile, err := service.Update(context.Background(), users.ProfileUpdate{
		Company: utils.Ptr("NewCo"),
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"company": "NewCo"}, received)
	require.Equal(t, "NewCo", profile.Company)
}

func TestFullNameHandlesMissingParts(t *testing.T) {
	require.Equal(t, "John", users.Profile{FirstName: "John"}.FullName())
	require.Equal(t, "Doe", users.Profile{LastName: "Doe"}.FullName())
	require.Equal(t, "", users.Profile{}.FullName())
}
