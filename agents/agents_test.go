package agents_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentdesk/agentdesk-go/agents"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/stretchr/testify/require"
)

type route struct {
	method string
	path   string
}

// routedServer answers each known route with a canned body and records what
// was called.
func routedServer(t *testing.T, responses map[route]string) (*httptest.Server, *[]route) {
	t.Helper()

	var calls []route
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := route{method: r.Method, path: r.URL.Path}
		calls = append(calls, key)
		body, ok := responses[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	return server, &calls
}

func TestConnectPostsAgentID(t *testing.T) {
	var requestBody map[string]int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/user/agents/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&requestBody))
		_, _ = w.Write([]byte(`{"id":9,"agent_id":3,"agent_name":"Researcher"}`))
	}))
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	connection, err := service.Connect(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), requestBody["agent_id"])
	require.Equal(t, int64(9), connection.ID)
	require.Equal(t, "Researcher", connection.AgentName)
}

func TestDisconnectHitsConnectionPath(t *testing.T) {
	server, calls := routedServer(t, map[route]string{
		{http.MethodDelete, "/api/v1/user/agents/9"}: `{"message":"disconnected"}`,
	})
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	status, err := service.Disconnect(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "disconnected", status.Message)
	require.Len(t, *calls, 1)
}

func TestUploadDocumentSendsMultipartFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/agents/9/documents", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "notes.txt", header.Filename)

		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "knowledge", string(contents))

		_, _ = w.Write([]byte(`{"message":"Document uploaded"}`))
	}))
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	status, err := service.UploadDocument(context.Background(), 9, "notes.txt", strings.NewReader("knowledge"))
	require.NoError(t, err)
	require.Equal(t, "Document uploaded", status.Message)
}

func TestDocumentLifecyclePaths(t *testing.T) {
	server, calls := routedServer(t, map[route]string{
		{http.MethodGet, "/api/v1/user/agents/9/documents"}:    `[{"id":1,"filename":"notes.txt","processed":true}]`,
		{http.MethodDelete, "/api/v1/user/agents/documents/1"}: `{"success":true,"message":"deleted"}`,
		{http.MethodDelete, "/api/v1/user/agents/9/documents"}: `{"success":true,"message":"cleared"}`,
	})
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	ctx := context.Background()

	documents, err := service.Documents(ctx, 9)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	require.True(t, documents[0].Processed)

	deleted, err := service.DeleteDocument(ctx, 1)
	require.NoError(t, err)
	require.True(t, deleted.Success)

	cleared, err := service.ClearDocuments(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, "cleared", cleared.Message)

	require.Len(t, *calls, 3)
}

func TestAnalyzeReturnsAgentResponse(t *testing.T) {
	server, _ := routedServer(t, map[route]string{
		{http.MethodPost, "/api/v1/user/agents/9/analyze"}: `{"success":true,"agent_id":3,"response":"summary","processing_time":1.2,"documents_used":2}`,
	})
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	analysis, err := service.Analyze(context.Background(), 9, "long text")
	require.NoError(t, err)
	require.True(t, analysis.Success)
	require.Equal(t, "summary", analysis.Response)
	require.Equal(t, 2, analysis.DocumentsUsed)
}

func TestSubscriptionGateErrorReachesCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"no active subscription"}`))
	}))
	defer server.Close()

	service := agents.NewService(rest.New(server.URL, nil))
	_, err := service.Mine(context.Background())
	require.Error(t, err)
	require.Equal(t, "no active subscription", rest.Message(err))
}
