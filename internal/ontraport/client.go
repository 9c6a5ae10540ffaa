// Package ontraport pushes assembled newsletters into the Ontraport CRM:
// it creates an email message object, wraps it in a draft campaign for
// review, and hands back the in-app preview URL.
package ontraport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/briteco/brief/internal/logger"
)

const defaultBaseURL = "https://api.ontraport.com/1"

// messageObjectID is Ontraport's object type for email messages.
const messageObjectID = 5

// ErrMissingCredentials is returned when the Ontraport app ID or API key is
// not set.
var ErrMissingCredentials = errors.New("Ontraport credentials not configured. Set ONTRAPORT_APP_ID and ONTRAPORT_API_KEY")

// Client is an Ontraport API client.
type Client struct {
	appID      string
	apiKey     string
	baseURL    string
	fromName   string
	fromEmail  string
	httpClient *http.Client
}

// Result is the outcome of one newsletter push.
type Result struct {
	MessageID  string `json:"message_id"`
	CampaignID string `json:"campaign_id"`
	PreviewURL string `json:"preview_url"`
	Status     string `json:"status"`
}

// NewClient creates an Ontraport client. fromEmail may be empty.
func NewClient(appID, apiKey, fromName, fromEmail string) (*Client, error) {
	if appID == "" || apiKey == "" {
		return nil, ErrMissingCredentials
	}
	if fromName == "" {
		fromName = "BriteCo"
	}
	return &Client{
		appID:     appID,
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		fromName:  fromName,
		fromEmail: fromEmail,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// apiResponse is the envelope Ontraport wraps around object payloads.
type apiResponse struct {
	Data struct {
		ID         json.Number `json:"id"`
		MessageID  json.Number `json:"message_id"`
		CampaignID json.Number `json:"campaign_id"`
	} `json:"data"`
}

// post sends one JSON request and decodes the response envelope.
func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Appid", c.appID)
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ontraport API returned status %d for %s", resp.StatusCode, endpoint)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &envelope, nil
}

// CreateMessage creates an email message object and returns its ID.
func (c *Client) CreateMessage(ctx context.Context, subject, htmlBody, plainText string) (string, error) {
	payload := map[string]any{
		"objectID":  messageObjectID,
		"subject":   subject,
		"html":      htmlBody,
		"from_name": c.fromName,
	}
	if plainText != "" {
		payload["plaintext"] = plainText
	}
	if c.fromEmail != "" {
		payload["from_email"] = c.fromEmail
	}

	envelope, err := c.post(ctx, "/objects", payload)
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	id := envelope.Data.ID.String()
	if id == "" {
		id = envelope.Data.MessageID.String()
	}
	if id == "" {
		return "", fmt.Errorf("message created but no ID returned")
	}

	logger.Info("Ontraport message created", "message_id", id)
	return id, nil
}

// CreateCampaign wraps a message in a campaign. Campaigns are always created
// as drafts so the team reviews before anything goes out.
func (c *Client) CreateCampaign(ctx context.Context, name, messageID string) (string, error) {
	envelope, err := c.post(ctx, "/CampaignBuilderItems", map[string]any{
		"name":       name,
		"message_id": messageID,
		"status":     "draft",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create campaign: %w", err)
	}

	id := envelope.Data.ID.String()
	if id == "" {
		id = envelope.Data.CampaignID.String()
	}

	logger.Info("Ontraport campaign created", "campaign_id", id)
	return id, nil
}

// PreviewURL returns the in-app edit/preview URL for a message.
func PreviewURL(messageID string) string {
	return fmt.Sprintf("https://app.ontraport.com/#!/message/edit&id=%s", messageID)
}

// Push runs the full workflow: create the message, create a draft campaign
// named after the subject, and return IDs plus the preview URL. The plain
// text variant is derived from the HTML body.
func (c *Client) Push(ctx context.Context, subject, htmlBody string) (*Result, error) {
	if subject == "" || htmlBody == "" {
		return nil, fmt.Errorf("subject and HTML content are required")
	}

	plainText, err := HTMLToPlainText(htmlBody)
	if err != nil {
		logger.Warn("Plain text derivation failed, sending HTML only", "error", err.Error())
		plainText = ""
	}

	messageID, err := c.CreateMessage(ctx, subject, htmlBody, plainText)
	if err != nil {
		return nil, err
	}

	campaignID, err := c.CreateCampaign(ctx, "BriteCo Brief - "+subject, messageID)
	if err != nil {
		return nil, err
	}

	return &Result{
		MessageID:  messageID,
		CampaignID: campaignID,
		PreviewURL: PreviewURL(messageID),
		Status:     "draft",
	}, nil
}
