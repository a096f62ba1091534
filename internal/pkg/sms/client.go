package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no gateway is configured for this
// deployment.
var ErrNotConfigured = errors.New("sms gateway not configured")

// Config holds SMS gateway configuration
type Config struct {
	BaseURL  string
	Token    string
	SenderID string
	Timeout  time.Duration
}

// Client represents the SMS gateway client
type Client struct {
	httpClient *http.Client
	config     Config
}

// SendRequest represents an outbound SMS
type SendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

// SendResponse represents the gateway's acknowledgement
type SendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// NewClient creates a new SMS gateway client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// Send submits a single SMS to the gateway
func (c *Client) Send(ctx context.Context, to, message string) (*SendResponse, error) {
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("validation error: recipient must be non-empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("validation error: message must be non-empty")
	}
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("sms client is not initialized")
	}
	if strings.TrimSpace(c.config.BaseURL) == "" {
		return nil, fmt.Errorf("sms config error: base_url is empty")
	}

	jsonData, err := json.Marshal(SendRequest{
		To:      to,
		Message: message,
		Sender:  c.config.SenderID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sms request: %w", err)
	}

	base := strings.TrimRight(c.config.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v1/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create sms request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sms gateway error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode sms response: %w", err)
	}

	return &out, nil
}
