package kix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kix-ai-bridge/internal/common/config"
	"kix-ai-bridge/internal/common/errors"
	"kix-ai-bridge/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(config.KIXConfig{
		BaseURL:  baseURL,
		Username: "agent",
		Password: "secret",
		Timeout:  5000,
	}, logger.NewTestLogger(t))
}

func TestAuthenticate_Success(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"Token": "tok-123"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	token, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	assert.Equal(t, "agent", gotBody["UserLogin"])
	assert.Equal(t, "secret", gotBody["Password"])
	assert.Equal(t, "Agent", gotBody["UserType"])
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "missing token field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{})
			},
		},
		{
			name: "empty token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"Token": ""})
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.Authenticate(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeKIXAuthFailed, errors.CodeOf(err))
		})
	}
}

func TestAuthenticate_TransportError(t *testing.T) {
	// Closed server: the transport error is conflated into the same code.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Authenticate(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeKIXAuthFailed, errors.CodeOf(err))
}

func TestFetchTicket_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tickets/10000", r.URL.Path)
		assert.Equal(t, "Articles", r.URL.Query().Get("include"))
		assert.Equal(t, "Token tok-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Ticket": map[string]interface{}{
				"TicketID":     10000,
				"TicketNumber": "2024081767000011",
				"Title":        "Printer offline",
				"Created":      "2024-08-17 10:00:00",
				"Changed":      "2024-08-17 11:30:00",
				"Articles": []map[string]interface{}{
					{"ArticleID": 1, "Subject": "first", "SenderType": "external", "CustomerVisible": 1},
					{"ArticleID": 2, "Subject": "second", "SenderType": "agent", "CustomerVisible": 0},
				},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ticket, err := client.FetchTicket(context.Background(), "tok-123", 10000)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), ticket.TicketID)
	assert.Equal(t, "Printer offline", ticket.Title)
	require.Len(t, ticket.Articles, 2)
	assert.Equal(t, int64(1), ticket.Articles[0].ArticleID)
	assert.Equal(t, int64(2), ticket.Articles[1].ArticleID)
}

func TestFetchTicket_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "no ticket in response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]interface{}{})
			},
		},
		{
			name: "not found status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.FetchTicket(context.Background(), "tok", 42)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeTicketNotFound, errors.CodeOf(err))
		})
	}
}

func TestUpdateDynamicField(t *testing.T) {
	var gotBody updateTicketRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tickets/10000", r.URL.Path)
		assert.Equal(t, "Token tok-123", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	err := client.UpdateDynamicField(context.Background(), "tok-123", 10000, "AI_Summary", "Request: ...")
	require.NoError(t, err)

	require.Len(t, gotBody.Ticket.DynamicFields, 1)
	assert.Equal(t, "AI_Summary", gotBody.Ticket.DynamicFields[0].Name)
	assert.Equal(t, "Request: ...", gotBody.Ticket.DynamicFields[0].Value)
}

func TestUpdateDynamicField_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	err := client.UpdateDynamicField(context.Background(), "tok", 1, "AISummary", "text")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFieldUpdateFailed, errors.CodeOf(err))
}
