package analyzer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/jira-ai/pkg/config"
	apperrors "github.com/helmcode/jira-ai/pkg/errors"
	"github.com/helmcode/jira-ai/pkg/heuristic"
	"github.com/helmcode/jira-ai/pkg/llm"
	"github.com/helmcode/jira-ai/pkg/model"
	"github.com/helmcode/jira-ai/pkg/prompts"
)

type fakeProvider struct {
	text  string
	err   error
	calls int
	last  llm.Request
}

func (f *fakeProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls++
	f.last = req
	return f.text, f.err
}

func (f *fakeProvider) GetModel() string { return "gpt-test" }
func (f *fakeProvider) Name() string     { return "OpenAI API" }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Workspace.Path = "/work/app"
	cfg.Project.Name = "Billing"
	cfg.Jira.Email = "dev@example.com"
	cfg.Jira.APIToken = "token"
	cfg.LLM.APIKey = "sk-abcdefghijklmnopqrstuvwxyz"
	return cfg
}

func testTicket() *model.Ticket {
	return &model.Ticket{
		Key: "PROJ-7",
		Fields: model.TicketFields{
			Summary: "Database timeout on checkout",
		},
	}
}

func testSnapshot() *model.WorkspaceSnapshot {
	return &model.WorkspaceSnapshot{
		Root: "/work/app",
		Files: []model.FileSample{
			{Path: "src/CheckoutService.java", Content: "class CheckoutService {}", Lines: 1},
		},
		Structure: []string{"[DIR] src/"},
	}
}

func TestAnalyze_RemoteSuccess(t *testing.T) {
	provider := &fakeProvider{text: "Root cause: pool exhausted"}
	a := New(provider, testConfig(), zerolog.Nop())

	result := a.Analyze(context.Background(), testTicket(), testSnapshot())

	require.Equal(t, 1, provider.calls)
	assert.Equal(t, prompts.SystemPrompt, provider.last.System)
	assert.Contains(t, provider.last.Prompt, "PROJ-7")
	assert.Equal(t, 0.7, provider.last.Temperature)
	assert.Equal(t, 3000, provider.last.MaxTokens)

	assert.Equal(t, model.SourceRemote, result.Source)
	assert.Equal(t, "gpt-test", result.Model)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Contains(t, result.Text, "AI-POWERED BUG FIX ANALYSIS FOR PROJ-7 (gpt-test)")
	assert.Contains(t, result.Text, "PROJECT: Billing")
	assert.Contains(t, result.Text, "Total files analyzed: 1")
	assert.Contains(t, result.Text, "Workspace structure: 1 items")
	assert.Contains(t, result.Text, "Root cause: pool exhausted")
	assert.Contains(t, result.Text, "This analysis was generated by gpt-test")
}

func TestAnalyze_QuotaExceeded(t *testing.T) {
	provider := &fakeProvider{err: apperrors.NewCompletionStatus(429,
		"OpenAI API Error: 429\nDetails: You exceeded your current quota")}
	a := New(provider, testConfig(), zerolog.Nop())

	result := a.Analyze(context.Background(), testTicket(), testSnapshot())

	assert.Equal(t, model.SourceHeuristic, result.Source)
	assert.Contains(t, result.Warning, "⚠️  OpenAI API unavailable (OpenAI API Error: 429")
	assert.Contains(t, result.Text, "QUOTA EXCEEDED - ACTION REQUIRED")
	assert.Contains(t, result.Text, "https://platform.openai.com/account/usage")
	assert.Contains(t, result.Text, "https://platform.openai.com/account/billing/overview")
	assert.Contains(t, result.Text, "Current API key starts with: sk-abcdefghijklmnopq...")
	assert.Contains(t, result.Text, "Providing pattern-based analysis instead:")
	assert.Contains(t, result.Text, "Database connectivity or query issue")
}

func TestAnalyze_ServerError(t *testing.T) {
	provider := &fakeProvider{err: apperrors.NewCompletionStatus(500, "OpenAI API Error: 500\nDetails: boom")}
	a := New(provider, testConfig(), zerolog.Nop())

	result := a.Analyze(context.Background(), testTicket(), testSnapshot())

	assert.Equal(t, model.SourceHeuristic, result.Source)
	assert.True(t, strings.HasPrefix(result.Text, "\n⚠️  OpenAI API unavailable (OpenAI API Error: 500\nDetails: boom)\n"))
	assert.NotContains(t, result.Text, "QUOTA EXCEEDED")
}

func TestAnalyze_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	cfg := testConfig()
	provider := llm.NewOpenAI(cfg.LLM.APIKey).WithEndpoint(endpoint)
	a := New(provider, cfg, zerolog.Nop())

	result := a.Analyze(context.Background(), testTicket(), testSnapshot())

	require.Equal(t, model.SourceHeuristic, result.Source)
	assert.True(t, strings.HasPrefix(result.Warning, "⚠️  OpenAI API Error: OpenAI request failed"))

	expected := heuristic.Analyze(heuristic.Input{
		TicketID:      "PROJ-7",
		Summary:       "Database timeout on checkout",
		WorkspacePath: "/work/app",
	}, cfg.Project)
	assert.Equal(t, "\n"+result.Warning+"\nProviding pattern-based analysis instead:\n\n"+expected+"\n", result.Text)
}

func TestAnalyze_MissingKeyFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.APIKey = ""
	a := New(llm.NewOpenAI(""), cfg, zerolog.Nop())

	result := a.Analyze(context.Background(), testTicket(), testSnapshot())

	assert.Equal(t, model.SourceHeuristic, result.Source)
	assert.Contains(t, result.Warning, "No OpenAI API key available")
}

func TestAttempt_WrapsError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("dial tcp: refused")}
	a := New(provider, testConfig(), zerolog.Nop())

	_, err := a.Attempt(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial tcp: refused")
}

func TestOffline(t *testing.T) {
	provider := &fakeProvider{}
	a := New(provider, testConfig(), zerolog.Nop())

	result := a.Offline(testTicket(), testSnapshot())

	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, model.SourceHeuristic, result.Source)
	assert.Contains(t, result.Text, "src/CheckoutService.java")
}

func TestQuotaGuidance(t *testing.T) {
	assert.Contains(t, QuotaGuidance("OpenAI API", ""), "starts with: N/A...")
	assert.Contains(t, QuotaGuidance("OpenAI API", "sk-short"), "starts with: sk-short...")

	claude := QuotaGuidance("Claude API", "sk-ant-api03-abcdefghijkl")
	assert.Contains(t, claude, "Your Claude API key has exceeded its usage quota.")
	assert.Contains(t, claude, "https://console.anthropic.com/settings/usage")
	assert.Contains(t, claude, "starts with: sk-ant-api03-abcdefg...")
}
