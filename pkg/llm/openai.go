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

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type OpenAI struct {
	apiKey   string
	client   *http.Client
	model    string
	endpoint string
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 90 * time.Second},
		model:    "gpt-4o-2024-11-20",
		endpoint: openAIEndpoint,
	}
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	o := NewOpenAI(apiKey)
	o.model = model
	return o
}

// WithEndpoint points the client at an OpenAI-compatible server.
func (o *OpenAI) WithEndpoint(endpoint string) *OpenAI {
	if endpoint != "" {
		o.endpoint = endpoint
	}
	return o
}

// WithTimeout overrides the request timeout.
func (o *OpenAI) WithTimeout(timeout time.Duration) *OpenAI {
	if timeout > 0 {
		o.client.Timeout = timeout
	}
	return o
}

// Complete makes exactly one chat completion request.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if o.apiKey == "" {
		return "", apperrors.NewCompletion("No OpenAI API key available. Please configure OPENAI_API_KEY", nil)
	}

	body := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewCompletion("encoding request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.NewCompletion("building request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", apperrors.NewCompletion("OpenAI request failed", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewCompletion("reading response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewCompletionStatus(resp.StatusCode,
			fmt.Sprintf("OpenAI API Error: %d\nDetails: %s", resp.StatusCode, errorMessage(respBytes)))
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", apperrors.NewCompletion("decoding response", err)
	}
	if len(openaiResp.Choices) == 0 {
		return "", apperrors.NewCompletion("empty response from OpenAI", nil)
	}
	return openaiResp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}

// Name returns the display name of the service.
func (o *OpenAI) Name() string {
	return "OpenAI API"
}
