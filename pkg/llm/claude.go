package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/helmcode/jira-ai/pkg/errors"
)

const claudeEndpoint = "https://api.anthropic.com/v1/messages"

type Claude struct {
	apiKey   string
	client   *http.Client
	model    string
	endpoint string
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, "claude-sonnet-4-20250514")
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 90 * time.Second},
		model:    model,
		endpoint: claudeEndpoint,
	}
}

// WithEndpoint points the client at a Messages-compatible server.
func (c *Claude) WithEndpoint(endpoint string) *Claude {
	if endpoint != "" {
		c.endpoint = endpoint
	}
	return c
}

// WithTimeout overrides the request timeout.
func (c *Claude) WithTimeout(timeout time.Duration) *Claude {
	if timeout > 0 {
		c.client.Timeout = timeout
	}
	return c
}

func (c *Claude) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewCompletion("No Anthropic API key available. Please configure ANTHROPIC_API_KEY", nil)
	}

	body := map[string]interface{}{
		"model":  c.model,
		"system": req.System,
		"messages": []map[string]string{{
			"role":    "user",
			"content": req.Prompt,
		}},
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewCompletion("encoding request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.NewCompletion("building request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", apperrors.NewCompletion("Claude request failed", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewCompletion("reading response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewCompletionStatus(resp.StatusCode,
			fmt.Sprintf("Claude API Error: %d\nDetails: %s", resp.StatusCode, errorMessage(respBytes)))
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", apperrors.NewCompletion("decoding response", err)
	}
	if len(claudeResp.Content) == 0 {
		return "", apperrors.NewCompletion("empty response from Claude", nil)
	}
	return claudeResp.Content[0].Text, nil
}

// GetModel returns the model being used by this Claude client
func (c *Claude) GetModel() string {
	return c.model
}

// Name returns the display name of the service.
func (c *Claude) Name() string {
	return "Claude API"
}
