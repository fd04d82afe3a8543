package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helmcode/jira-ai/pkg/config"
	apperrors "github.com/helmcode/jira-ai/pkg/errors"
	"github.com/helmcode/jira-ai/pkg/heuristic"
	"github.com/helmcode/jira-ai/pkg/llm"
	"github.com/helmcode/jira-ai/pkg/model"
	"github.com/helmcode/jira-ai/pkg/parser"
	"github.com/helmcode/jira-ai/pkg/prompts"
)

const divider = "═══════════════════════════════════════════════════════════════════"

// Analyzer turns a ticket and a workspace snapshot into an analysis. The
// remote completion is tried once; any failure falls back to the local
// heuristic.
type Analyzer struct {
	llm llm.Provider
	cfg *config.Config
	log zerolog.Logger
	now func() time.Time
}

func New(provider llm.Provider, cfg *config.Config, log zerolog.Logger) *Analyzer {
	return &Analyzer{llm: provider, cfg: cfg, log: log, now: time.Now}
}

// Attempt performs the remote step only.
func (a *Analyzer) Attempt(ctx context.Context, prompt string) (string, error) {
	text, err := a.llm.Complete(ctx, llm.Request{
		System:      prompts.SystemPrompt,
		Prompt:      prompt,
		Temperature: a.cfg.LLM.Temperature,
		MaxTokens:   a.cfg.LLM.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("LLM chat: %w", err)
	}
	return text, nil
}

// Analyze builds the prompt, attempts the remote completion and falls back
// to the heuristic on failure. It always returns a result.
func (a *Analyzer) Analyze(ctx context.Context, ticket *model.Ticket, snapshot *model.WorkspaceSnapshot) *model.AnalysisResult {
	input := prompts.TicketInputFrom(ticket)
	prompt := prompts.BuildAnalysisPrompt(input, a.cfg.Project, snapshot)

	a.log.Debug().Str("ticket", input.Key).Int("prompt_chars", len(prompt)).Msg("requesting completion")

	text, err := a.Attempt(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Str("ticket", input.Key).Msg("completion failed, using pattern-based analysis")
		return a.Fallback(input, snapshot, err)
	}
	text = parser.CleanCompletion(text)

	return &model.AnalysisResult{
		TicketKey:    input.Key,
		Label:        fmt.Sprintf("AI-Powered Bug Fix Suggestions (%s)", a.llm.GetModel()),
		Source:       model.SourceRemote,
		Model:        a.llm.GetModel(),
		FilesScanned: snapshot.TotalFiles(),
		Text:         a.decorate(input.Key, text, snapshot),
		GeneratedAt:  a.now(),
	}
}

// Fallback produces the heuristic result for a failed completion. The
// failure reason leads the text as a warning banner; quota exhaustion adds
// remediation guidance.
func (a *Analyzer) Fallback(input prompts.TicketInput, snapshot *model.WorkspaceSnapshot, cause error) *model.AnalysisResult {
	report := heuristic.Analyze(a.heuristicInput(input, snapshot), a.cfg.Project)
	warning := a.Banner(cause)

	return &model.AnalysisResult{
		TicketKey:    input.Key,
		Label:        "Pattern-Based Bug Fix Suggestions",
		Source:       model.SourceHeuristic,
		Warning:      warning,
		FilesScanned: snapshot.TotalFiles(),
		Text:         fmt.Sprintf("\n%s\nProviding pattern-based analysis instead:\n\n%s\n", warning, report),
		GeneratedAt:  a.now(),
	}
}

// Offline skips the completion service and returns the heuristic report
// extended with the workspace scan.
func (a *Analyzer) Offline(ticket *model.Ticket, snapshot *model.WorkspaceSnapshot) *model.AnalysisResult {
	input := prompts.TicketInputFrom(ticket)
	return &model.AnalysisResult{
		TicketKey:    input.Key,
		Label:        "Pattern-Based Bug Fix Suggestions",
		Source:       model.SourceHeuristic,
		FilesScanned: snapshot.TotalFiles(),
		Text:         heuristic.AnalyzeWithContext(a.heuristicInput(input, snapshot), a.cfg.Project, snapshot),
		GeneratedAt:  a.now(),
	}
}

func (a *Analyzer) heuristicInput(input prompts.TicketInput, snapshot *model.WorkspaceSnapshot) heuristic.Input {
	root := a.cfg.Workspace.Path
	if snapshot != nil && snapshot.Root != "" {
		root = snapshot.Root
	}
	return heuristic.Input{
		TicketID:      input.Key,
		Summary:       input.Summary,
		Description:   input.Description,
		WorkspacePath: root,
	}
}

// Banner renders the warning line for a failed completion.
func (a *Analyzer) Banner(cause error) string {
	aErr, ok := apperrors.As(cause)
	if !ok || aErr.Status == 0 {
		return fmt.Sprintf("⚠️  %s Error: %s", a.llm.Name(), reason(cause))
	}

	detail := aErr.Message
	if aErr.Status == 429 {
		detail += QuotaGuidance(a.llm.Name(), a.cfg.LLM.APIKey)
	}
	return fmt.Sprintf("⚠️  %s unavailable (%s)", a.llm.Name(), detail)
}

// reason strips the error code prefix from classified errors.
func reason(err error) string {
	aErr, ok := apperrors.As(err)
	if !ok {
		return err.Error()
	}
	if aErr.Err != nil {
		return aErr.Message + ": " + aErr.Err.Error()
	}
	return aErr.Message
}

// accountPages holds the usage and billing pages per service name.
var accountPages = map[string][2]string{
	"OpenAI API": {
		"https://platform.openai.com/account/usage",
		"https://platform.openai.com/account/billing/overview",
	},
	"Claude API": {
		"https://console.anthropic.com/settings/usage",
		"https://console.anthropic.com/settings/billing",
	},
}

// QuotaGuidance is appended to the banner when the completion service
// rejects the request with 429.
func QuotaGuidance(service, apiKey string) string {
	pages, ok := accountPages[service]
	if !ok {
		pages = accountPages["OpenAI API"]
	}
	keyPrefix := "N/A"
	if apiKey != "" {
		keyPrefix = apiKey
		if len(keyPrefix) > 20 {
			keyPrefix = keyPrefix[:20]
		}
	}

	return fmt.Sprintf(`

🔴 QUOTA EXCEEDED - ACTION REQUIRED:

   Your %s key has exceeded its usage quota.

   📋 Steps to resolve:

   1. Check your account usage:
      %s

   2. Check billing and add payment method:
      %s

   3. Options:
      • Add a payment method if free trial expired
      • Upgrade your plan for higher limits
      • Wait for quota reset (monthly cycle)
      • Generate a new API key

   4. Current API key starts with: %s...

   For now, using fallback pattern-based analysis.
`, service, pages[0], pages[1], keyPrefix)
}

func (a *Analyzer) decorate(key, text string, snapshot *model.WorkspaceSnapshot) string {
	techs := strings.Join(a.cfg.Project.Technologies, ", ")
	modelName := a.llm.GetModel()
	structure := 0
	root := a.cfg.Workspace.Path
	if snapshot != nil {
		structure = len(snapshot.Structure)
		if snapshot.Root != "" {
			root = snapshot.Root
		}
	}

	return fmt.Sprintf(`
╔═══════════════════════════════════════════════════════════════════╗
║     AI-POWERED BUG FIX ANALYSIS FOR %s (%s)
╚═══════════════════════════════════════════════════════════════════╝

PROJECT: %s
WORKSPACE: %s

📁 WORKSPACE SCAN RESULTS:
   • Total files analyzed: %d
   • File types: %s
   • Workspace structure: %d items

%s

%s

%s

💡 NOTE: This analysis was generated by %s based on:
   - JIRA bug details (Bug ID, Summary, Description)
   - Actual workspace code structure
   - %d source code files scanned
   - Project technologies: %s
   - Code samples from key files

%s
`, key, modelName,
		a.cfg.Project.Name, root,
		snapshot.TotalFiles(), techs, structure,
		divider, text, divider,
		modelName, snapshot.TotalFiles(), techs,
		divider)
}
