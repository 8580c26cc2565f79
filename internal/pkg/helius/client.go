package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitgajera/Blockchain-indexer/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.helius.dev/v0"

// Client talks to the Helius webhook API. The provider has no partial-update
// primitive we rely on; callers create and delete whole webhooks.
type Client struct {
	APIKey  string
	BaseURL string

	HTTPClient *http.Client
}

// WebhookParams is the creation payload for a Helius webhook.
type WebhookParams struct {
	WebhookURL       string   `json:"webhookURL"`
	TransactionTypes []string `json:"transactionTypes,omitempty"`
	AccountAddresses []string `json:"accountAddresses,omitempty"`
	WebhookType      string   `json:"webhookType,omitempty"`
	AuthHeader       string   `json:"authHeader,omitempty"`
}

// Webhook is the provider's view of a registered webhook.
type Webhook struct {
	WebhookID        string   `json:"webhookID"`
	WebhookURL       string   `json:"webhookURL"`
	TransactionTypes []string `json:"transactionTypes"`
	AccountAddresses []string `json:"accountAddresses"`
}

// NewClientFromEnv builds a client from HELIUS_API_KEY / HELIUS_API_BASE_URL.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  strings.TrimSpace(env.GetEnv("HELIUS_API_KEY", "")),
		BaseURL: strings.TrimRight(env.GetEnv("HELIUS_API_BASE_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateWebhook registers a webhook and returns its provider handle.
func (c *Client) CreateWebhook(ctx context.Context, params WebhookParams) (string, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/webhooks"), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var created Webhook
	if err := c.do(req, &created); err != nil {
		return "", fmt.Errorf("create webhook: %w", err)
	}
	if created.WebhookID == "" {
		return "", fmt.Errorf("create webhook: provider returned no webhook id")
	}
	return created.WebhookID, nil
}

// DeleteWebhook removes a webhook by its provider handle.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/webhooks/"+url.PathEscape(webhookID)), nil)
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("delete webhook %s: %w", webhookID, err)
	}
	return nil
}

// GetWebhook fetches the provider's current view of a webhook. Not part of
// the reconcile path, which must stay call-free for unchanged selections;
// kept to cover the provider's webhook API for operational checks when a
// stored handle is suspected stale.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/webhooks/"+url.PathEscape(webhookID)), nil)
	if err != nil {
		return nil, err
	}
	var hook Webhook
	if err := c.do(req, &hook); err != nil {
		return nil, fmt.Errorf("get webhook %s: %w", webhookID, err)
	}
	return &hook, nil
}

func (c *Client) endpoint(path string) string {
	base := c.BaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}
	return base + path + "?api-key=" + url.QueryEscape(c.APIKey)
}

func (c *Client) do(req *http.Request, out any) error {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
