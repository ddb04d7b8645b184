package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

func TestNotify(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody dto.NotifyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.NotifyResponse{
			Message:        "Notification sent successfully",
			NotificationID: "notif-99",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	id, err := client.Notify(context.Background(), "token-abc", dto.NotifyRequest{
		To:      "creator@example.com",
		Message: "hello",
		Type:    "join_request",
	})
	require.NoError(t, err)

	assert.Equal(t, "notif-99", id)
	assert.Equal(t, "/api/notify", gotPath)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "creator@example.com", gotBody.To)
}

func TestNotifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Notify(context.Background(), "token", dto.NotifyRequest{To: "x", Message: "y"})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestNotifyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, time.Second)
	_, err := client.Notify(context.Background(), "token", dto.NotifyRequest{To: "x", Message: "y"})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestMarkHandled(t *testing.T) {
	var gotPath string
	var gotBody dto.MarkHandledRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.MarkHandled(context.Background(), "token", dto.MarkHandledRequest{
		Requester:      "ada",
		Community:      "gophers",
		Decision:       "accept",
		NotificationID: "notif-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/notify/mark-handled", gotPath)
	assert.Equal(t, "ada", gotBody.Requester)
	assert.Equal(t, "notif-1", gotBody.NotificationID)
}

func TestMarkHandledUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.MarkHandled(context.Background(), "token", dto.MarkHandledRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}
