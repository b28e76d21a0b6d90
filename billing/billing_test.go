package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentdesk/agentdesk-go/billing"
	"github.com/agentdesk/agentdesk-go/internal/utils"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/stretchr/testify/require"
)

func TestActivePlansDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/plans/active", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Monthly","days":30,"price":10.0,"is_active":true},
			{"id":2,"name":"Yearly","days":365,"price":100.0,"discount_percent":20,"is_active":true}]`))
	}))
	defer server.Close()

	service := billing.NewService(rest.New(server.URL, nil))
	plans, err := service.ActivePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Nil(t, plans[0].DiscountPercent)
	require.NotNil(t, plans[1].DiscountPercent)
	require.Equal(t, 20.0, *plans[1].DiscountPercent)
}

func TestUpdatePlanOmitsUnsetFields(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/plans/2", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"id":2,"name":"Yearly","days":365,"price":90.0,"is_active":true}`))
	}))
	defer server.Close()

	service := billing.NewService(rest.New(server.URL, nil))
	_, err := service.UpdatePlan(context.Background(), 2, billing.PlanUpdate{
		Price: utils.Ptr(90.0),
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"price": 90.0}, received)
}

func TestSubscribePostsPlanID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/subscriptions/", r.URL.Path)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(1), body["plan_id"])
		_, _ = w.Write([]byte(`{"id":7,"plan_id":1,"is_active":true,"total_paid":10.0,"end_date":"2026-09-27"}`))
	}))
	defer server.Close()

	service := billing.NewService(rest.New(server.URL, nil))
	subscription, err := service.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "2026-09-27", subscription.EndDate)
}

func TestInsufficientBalanceErrorIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":{"error":"insufficient_balance","message":"Top up your balance to subscribe"}}`))
	}))
	defer server.Close()

	service := billing.NewService(rest.New(server.URL, nil))
	_, err := service.Subscribe(context.Background(), 1)
	require.Error(t, err)
	require.Equal(t, "Top up your balance to subscribe", rest.Message(err))
}
