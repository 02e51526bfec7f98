package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the local notification daemon over its HTTP bridge.
// Calls are single-shot: a failed schedule or cancel is the caller's
// problem to self-heal on the next reconciliation pass, never retried here.
type Client struct {
	baseURL    string
	channel    string
	httpClient *http.Client
}

func NewClient(baseURL, channel string) *Client {
	return &Client{
		baseURL: baseURL,
		channel: channel,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configure registers the notification channel with the daemon. The daemon
// treats re-registration of an existing channel as a no-op, so this is safe
// to call on every startup.
func (c *Client) Configure(ctx context.Context) error {
	body, err := json.Marshal(channelRequest{
		Name:       c.channel,
		Importance: "default",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal channel request: %w", err)
	}

	endpoint, err := c.endpoint("/api/v1/channels")
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to register notification channel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("unexpected status code registering channel: %d", resp.StatusCode)
	}

	slog.Info("notification channel registered",
		slog.String("channel", c.channel),
	)
	return nil
}

func (c *Client) Schedule(ctx context.Context, n *Notification) (string, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	endpoint, err := c.endpoint("/api/v1/notifications")
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send schedule request",
			slog.String("title", n.Title),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.Warn("unexpected status code from notification daemon",
			slog.String("title", n.Title),
			slog.Int("status_code", resp.StatusCode),
		)
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var scheduled scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&scheduled); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if scheduled.ID == "" {
		return "", fmt.Errorf("notification daemon returned empty id")
	}

	return scheduled.ID, nil
}

// Cancel removes a scheduled notification. A 404 is success: the
// notification already fired or was cancelled out-of-band.
func (c *Client) Cancel(ctx context.Context, id string) error {
	endpoint, err := c.endpoint("/api/v1/notifications/" + url.PathEscape(id))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (c *Client) ListScheduled(ctx context.Context) ([]string, error) {
	endpoint, err := c.endpoint("/api/v1/notifications")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var listed listResponse
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	ids := make([]string, 0, len(listed.Notifications))
	for _, entry := range listed.Notifications {
		ids = append(ids, entry.ID)
	}
	return ids, nil
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path
	return u.String(), nil
}
