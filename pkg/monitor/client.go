package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client reads from a running monitor Server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://127.0.0.1:8090".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		dialer: websocket.DefaultDialer,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithHTTPClient replaces the HTTP client used for snapshots.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithClientTimeout overrides the default HTTP client timeout.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// Health reports whether the server answers /health.
func (c *Client) Health(ctx context.Context) error {
	status, body, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("health returned HTTP %d: %s", status, body)
	}
	return nil
}

// Stats fetches the collector statistics.
func (c *Client) Stats(ctx context.Context) (CollectorStats, error) {
	var stats CollectorStats
	err := c.getJSON(ctx, "/stats", &stats)
	return stats, err
}

// Dashboard fetches the current dashboard snapshot.
func (c *Client) Dashboard(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.getJSON(ctx, "/dashboard", &snap)
	return snap, err
}

// Watch streams messages from /ws to fn until ctx is done, the
// server closes the stream, or fn returns false.
func (c *Client) Watch(
	ctx context.Context,
	fn func(Message) bool,
) error {
	url := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws"
	conn, resp, err := c.dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil ||
				websocket.IsCloseError(err, websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read stream: %w", err)
		}
		if !fn(msg) {
			return nil
		}
	}
}

func (c *Client) get(
	ctx context.Context, path string,
) (int, []byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	status, data, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s returned HTTP %d: %s", path, status, data)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
