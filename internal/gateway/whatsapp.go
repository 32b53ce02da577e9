package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/types"
)

// Gateway is the messaging side-effect boundary. Any non-nil error is a
// failure; the polling loops do not mutate state on failure and simply
// retry on the next tick.
type Gateway interface {
	SendText(ctx context.Context, recipient, message string) error
	SendImage(ctx context.Context, groupID, message, imageBase64 string) error
	Status(ctx context.Context) (ConnectionStatus, error)
}

// ConnectionStatus is the gateway session state, surfaced to the
// dashboard as-is.
type ConnectionStatus struct {
	Connected   bool   `json:"connected"`
	ProfileName string `json:"profileName,omitempty"`
}

type Config struct {
	SendURL   string
	ImageURL  string
	StatusURL string
	APIKey    string
}

// Client talks to the external WhatsApp webhook gateway. The gateway has
// no delivery-receipt callback; a 2xx response with a non-error body is
// the only success signal we get.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

func (c *Client) SendText(ctx context.Context, recipient, message string) error {
	_, err := c.post(ctx, c.cfg.SendURL, map[string]any{
		"phone":   recipient,
		"message": escapeNewlines(message),
	})
	return err
}

func (c *Client) SendImage(ctx context.Context, groupID, message, imageBase64 string) error {
	_, err := c.post(ctx, c.cfg.ImageURL, map[string]any{
		"phone":   groupID,
		"message": escapeNewlines(message),
		"image":   imageBase64,
	})
	return err
}

func (c *Client) Status(ctx context.Context) (ConnectionStatus, error) {
	if c.cfg.StatusURL == "" {
		return ConnectionStatus{}, fmt.Errorf("gateway status URL not configured")
	}
	body, err := c.post(ctx, c.cfg.StatusURL, map[string]any{})
	if err != nil {
		return ConnectionStatus{}, err
	}
	status := ConnectionStatus{}
	if s, ok := body["status"].(string); ok {
		status.Connected = s == "connected"
	}
	if name, ok := body["profileName"].(string); ok {
		status.ProfileName = name
	}
	return status, nil
}

// post sends a JSON body to a webhook endpoint. The api key rides inside
// the body on every request; that is the gateway's auth scheme.
func (c *Client) post(ctx context.Context, url string, body map[string]any) (map[string]any, error) {
	if c.cfg.APIKey != "" {
		body["apiKey"] = c.cfg.APIKey
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.log.Warn("gateway rate limited", zap.String("url", url))
		return nil, types.ErrRateLimited
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	// Some webhook flows reply with an empty body on success.
	parsed := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("gateway returned invalid JSON: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway request failed with status %d: %s", resp.StatusCode, errorMessage(parsed))
	}
	if s, ok := parsed["status"].(string); ok && s == "error" {
		return nil, fmt.Errorf("gateway error: %s", errorMessage(parsed))
	}

	return parsed, nil
}

func errorMessage(body map[string]any) string {
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg
	}
	return "unspecified error"
}

// escapeNewlines converts real newlines into the literal two-character
// sequence the gateway expects inside JSON string payloads.
func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}
