package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one completion request: a system instruction plus a single
// user message.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider sends a completion request and returns the generated text.
// Failures are COMPLETION errors carrying the HTTP status when there was one.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	GetModel() string
	Name() string
}

// errorMessage extracts error.message from a JSON error body, falling back
// to a short excerpt of the raw body.
func errorMessage(body []byte) string {
	var wire struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		return wire.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		return "empty response body"
	}
	return fmt.Sprintf("Response: %s", s)
}
