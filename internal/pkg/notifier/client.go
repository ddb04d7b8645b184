package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// Client talks to the notification channel over HTTP. The channel runs in a
// separate process and owns its own storage, so calls here are network hops
// outside any graph transaction. The caller's bearer token is forwarded so
// the remote call is itself authenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a notification channel client with the given base URL and
// request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Notify delivers a notification to a user. Returns the correlation id the
// channel assigned to the stored notification.
func (c *Client) Notify(ctx context.Context, token string, req dto.NotifyRequest) (string, error) {
	var resp dto.NotifyResponse
	if err := c.post(ctx, token, "/api/notify", req, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.NotificationID, nil
}

// MarkHandled asks the channel to rewrite the original join_request
// notification after the request was resolved
func (c *Client) MarkHandled(ctx context.Context, token string, req dto.MarkHandledRequest) error {
	return c.post(ctx, token, "/api/notify/mark-handled", req, http.StatusOK, nil)
}

func (c *Client) post(ctx context.Context, token, path string, body interface{}, wantStatus int, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != wantStatus {
		detail, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return fmt.Errorf("%w: notification channel returned %d: %s",
			apperrors.ErrUpstreamFailure, httpResp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
