package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to the biometric access-control controller over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// PutMemberPayload registers a member on the access controller.
type PutMemberPayload struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	BadgeID  string `json:"badge_id"`
	ValidTo  string `json:"valid_to,omitempty"` // YYYY-MM-DD
}

// NewClient creates a new access-control device client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// PutMember creates or replaces a member binding on the controller.
func (c *Client) PutMember(ctx context.Context, p PutMemberPayload) error {
	if p.MemberID == "" || p.BadgeID == "" {
		return fmt.Errorf("device put request error: member_id and badge_id are required")
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("device put request error: %w", err)
	}

	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(p.BadgeID), payload)
}

// DeleteUser removes a badge binding from the controller.
func (c *Client) DeleteUser(ctx context.Context, badgeID string) error {
	if badgeID == "" {
		return fmt.Errorf("device delete request error: badge_id is required")
	}
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(badgeID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("device request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return fmt.Errorf("device config error: base_url is empty")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("device request error: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("device http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
	}

	return fmt.Errorf("device http error: status=%d body=%s", resp.StatusCode, string(respBody))
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("device timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("device network error: %w", err)
	}
	return fmt.Errorf("device request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
