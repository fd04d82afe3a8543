package prompts

import (
	"fmt"
	"strings"

	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/model"
)

const (
	// MaxListedFiles is how many file paths the prompt lists.
	MaxListedFiles = 15
	// MaxSampledFiles is how many files contribute code to the prompt.
	MaxSampledFiles = 8
	// MaxSampleChars bounds each code sample.
	MaxSampleChars = 1500
)

// SystemPrompt is the system instruction sent with every analysis request.
const SystemPrompt = "You are an expert software engineer specializing in bug analysis and debugging. " +
	"Provide detailed, actionable suggestions based on the codebase provided. " +
	"Format your response clearly with sections and bullet points."

// TicketInput is the part of a ticket the prompt uses.
type TicketInput struct {
	Key         string
	Summary     string
	Description string
}

// TicketInputFrom extracts the prompt fields from a decoded ticket.
func TicketInputFrom(t *model.Ticket) TicketInput {
	if t == nil {
		return TicketInput{}
	}
	return TicketInput{
		Key:         t.Key,
		Summary:     t.Fields.Summary,
		Description: t.Description(),
	}
}

// BuildAnalysisPrompt assembles the user message for a remediation request.
// It has no failure mode: missing data renders as empty text.
func BuildAnalysisPrompt(ticket TicketInput, profile config.ProjectProfile, snapshot *model.WorkspaceSnapshot) string {
	if snapshot == nil {
		snapshot = &model.WorkspaceSnapshot{}
	}

	var fileList []string
	for _, f := range head(snapshot.Files, MaxListedFiles) {
		fileList = append(fileList, fmt.Sprintf("- %s (%d lines)", f.Path, f.Lines))
	}

	var samples strings.Builder
	for i, f := range head(snapshot.Files, MaxSampledFiles) {
		fmt.Fprintf(&samples, "\n--- File %d: %s ---\n", i+1, f.Path)
		samples.WriteString(truncateRunes(f.Content, MaxSampleChars))
		samples.WriteString("\n")
	}

	return fmt.Sprintf(`You are an expert software engineer analyzing a JIRA bug with access to the actual codebase.

**JIRA BUG DETAILS:**
Bug ID: %s
Summary: %s
Description: %s

**PROJECT CONTEXT:**
- Project: %s
- Technologies: %s
- Components: %s
- Workspace: %s

**WORKSPACE ANALYSIS:**
Total Files Scanned: %d

Workspace Structure:
%s

Relevant Code Files:
%s

**CODE SAMPLES FROM WORKSPACE:**
%s

**TASK:**
Analyze this bug in the context of the actual codebase above. Provide a comprehensive analysis with:

1. **Root Cause Analysis**: Based on the code patterns observed, identify the likely root cause
2. **Affected Files/Components**: List specific files from the workspace that might be affected
3. **Detailed Fix Recommendations**:
   - Provide step-by-step fix recommendations
   - Include code examples that match the project's technology stack
   - Suggest specific changes to the files listed above
4. **Testing Approach**: Recommend unit tests, integration tests specific to this codebase
5. **Potential Side Effects**: Warn about potential impacts on related components
6. **Implementation Steps**: Provide a clear action plan

Focus on providing actionable, code-specific suggestions based on the actual project structure and code samples provided.
`,
		ticket.Key, ticket.Summary, ticket.Description,
		profile.Name,
		strings.Join(profile.Technologies, ", "),
		strings.Join(profile.Components, ", "),
		snapshot.Root,
		snapshot.TotalFiles(),
		strings.Join(snapshot.Structure, "\n"),
		strings.Join(fileList, "\n"),
		samples.String(),
	)
}

func head(files []model.FileSample, n int) []model.FileSample {
	if len(files) > n {
		return files[:n]
	}
	return files
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
