// Package heuristic produces an offline remediation report from keyword
// matches against the ticket text. It needs no network access and has no
// failure mode.
package heuristic

import (
	"fmt"
	"strings"

	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/model"
)

// Input is the ticket text the heuristic inspects.
type Input struct {
	TicketID      string
	Summary       string
	Description   string
	WorkspacePath string
}

const divider = "═══════════════════════════════════════════════════════════════════"

// Analyze returns the pattern-based report for a ticket.
func Analyze(in Input, profile config.ProjectProfile) string {
	text := strings.ToLower(in.Summary + " " + in.Description)

	var b strings.Builder
	fmt.Fprintf(&b, `
╔═══════════════════════════════════════════════════════════════════╗
║           AI-POWERED BUG FIX ANALYSIS FOR %s
╚═══════════════════════════════════════════════════════════════════╝

PROJECT: %s
WORKSPACE: %s

📊 ROOT CAUSE ANALYSIS:
`, in.TicketID, profile.Name, in.WorkspacePath)

	matched := MatchRules(text)
	for _, r := range matched {
		b.WriteString("\n" + r.Advice)
	}
	if len(matched) == 0 {
		b.WriteString("\n" + GenericAdvice)
	}

	fmt.Fprintf(&b, "\n\n🎯 AFFECTED COMPONENTS:\n\nBased on your project components: %s\n\n",
		strings.Join(profile.Components, ", "))

	components := MatchComponents(text, profile.Components)
	if len(components) > 0 {
		for _, c := range components {
			fmt.Fprintf(&b, "   • %s component\n", c)
		}
	} else {
		b.WriteString(`   • Review all relevant components mentioned in the bug description
   • Check files related to the reported functionality
   • Examine recent code changes in the affected area
`)
	}

	b.WriteString(recommendedFixes)
	for _, advice := range technologySection(text, profile.Technologies) {
		b.WriteString("\n" + advice)
	}
	b.WriteString(staticSections)

	return b.String()
}

// MatchComponents returns the configured components whose lower-cased name
// occurs in text, in configuration order.
func MatchComponents(text string, components []string) []string {
	var matched []string
	for _, c := range components {
		if c != "" && strings.Contains(text, strings.ToLower(c)) {
			matched = append(matched, c)
		}
	}
	return matched
}

// technologySection returns one advisory per configured technology that is
// named in the text. Any of the bug words also enables every technology,
// which in practice makes the section unconditional for bug reports.
func technologySection(text string, technologies []string) []string {
	anyBugWord := containsAny(text, bugWords...)

	var out []string
	for _, tech := range technologies {
		if !anyBugWord && !strings.Contains(text, strings.ToLower(tech)) {
			continue
		}
		if advice := TechnologyAdvice(tech); advice != "" {
			out = append(out, advice)
		}
	}
	return out
}

// AnalyzeWithContext extends the report with the scanned workspace: the
// first ten files and up to five files whose names suggest request
// handling or orchestration code.
func AnalyzeWithContext(in Input, profile config.ProjectProfile, snapshot *model.WorkspaceSnapshot) string {
	base := Analyze(in, profile)

	var section strings.Builder
	fmt.Fprintf(&section, "\n\n📁 WORKSPACE ANALYSIS:\n   • Total code files scanned: %d\n   • Technologies detected: %s\n   \n🔍 RELEVANT FILES IN WORKSPACE:\n",
		snapshot.TotalFiles(), strings.Join(profile.Technologies, ", "))

	if snapshot.TotalFiles() == 0 {
		section.WriteString("   ⚠️  No code files found in workspace scan\n")
	} else {
		for i, f := range snapshot.Files {
			if i == 10 {
				break
			}
			fmt.Fprintf(&section, "   %d. %s (%d lines)\n", i+1, f.Path, f.Lines)
		}

		section.WriteString("\n\n💡 RECOMMENDED FILES TO CHECK:\n   Based on the bug description and workspace scan, start by reviewing:\n")
		candidates := CandidateFiles(snapshot, 5)
		if len(candidates) == 0 {
			section.WriteString("   • Review the files listed above that match the bug's component/area\n")
		}
		for _, path := range candidates {
			fmt.Fprintf(&section, "   • %s\n", path)
		}
	}

	marker := "PROJECT: " + profile.Name
	return strings.Replace(base, marker, marker+section.String(), 1)
}

var candidateMarkers = []string{"handler", "manager", "service", "controller", "processor", "worker"}

// CandidateFiles returns up to limit sampled paths that look like handler,
// service, or worker code.
func CandidateFiles(snapshot *model.WorkspaceSnapshot, limit int) []string {
	if snapshot == nil {
		return nil
	}
	var out []string
	for _, f := range snapshot.Files {
		if len(out) == limit {
			break
		}
		if containsAny(strings.ToLower(f.Path), candidateMarkers...) {
			out = append(out, f.Path)
		}
	}
	return out
}

const recommendedFixes = `

🔧 RECOMMENDED FIXES:

1. Code Review Priority:
   • Review error handling in affected components
   • Check for proper resource cleanup (memory, connections, locks)
   • Validate input parameters and boundary conditions
   • Ensure thread-safety in concurrent operations
   • Review recent changes in the affected area

2. Implementation Steps:
   a) Add comprehensive logging at critical points
   b) Implement defensive programming checks
   c) Add unit tests for edge cases and bug scenario
   d) Review and optimize relevant queries/algorithms
   e) Update error handling with proper exception management
   f) Add validation for inputs and outputs

3. Technology-Specific Considerations:
`

const staticSections = `

4. Generic Code Pattern Example:
   ` + "```" + `
   // Add proper error handling and validation
   function processRequest(input) {
       // Validate input
       if (!isValid(input)) {
           logger.error("Invalid input detected");
           throw new ValidationError("Invalid input");
       }

       try {
           // Main business logic
           const result = performOperation(input);

           // Validate output
           if (!isValidResult(result)) {
               throw new ProcessingError("Invalid result");
           }

           return result;
       } catch (error) {
           logger.error("Error processing request", error);
           // Proper error handling
           throw error;
       } finally {
           // Cleanup resources
           cleanup();
       }
   }
   ` + "```" + `

🧪 TESTING APPROACH:

1. Unit Testing:
   • Create test cases for the specific bug scenario
   • Test boundary conditions and edge cases
   • Validate error handling paths
   • Mock external dependencies
   • Aim for high code coverage

2. Integration Testing:
   • Test with real data similar to the bug scenario
   • Verify end-to-end workflow
   • Check database state consistency
   • Monitor logs for errors or warnings
   • Test with different environments

3. Regression Testing:
   • Run existing test suite
   • Verify no side effects on other components
   • Check backward compatibility
   • Test related features

⚠️  POTENTIAL SIDE EFFECTS:

   • Performance impact on related operations
   • Changes may affect dependent components
   • Database schema changes require migration
   • API changes need version management
   • Configuration changes may require restart
   • Caching behavior might change

📋 DEPLOYMENT CHECKLIST:

   ✓ Code review completed
   ✓ Unit tests added and passing
   ✓ Integration tests executed
   ✓ Performance impact assessed
   ✓ Documentation updated
   ✓ Configuration changes documented
   ✓ Rollback plan prepared
   ✓ Monitoring and alerts configured
   ✓ Stakeholders notified

🔗 RECOMMENDED NEXT STEPS:

   1. Review the workspace files related to the issue
   2. Add comprehensive logging to understand the flow
   3. Write failing tests that reproduce the bug
   4. Implement the fix incrementally
   5. Validate with the test cases
   6. Get code review from team members
   7. Test in staging environment
   8. Deploy with monitoring

` + divider + `

💡 RECOMMENDATION:
   Start with thorough code review and add comprehensive logging
   before implementing fixes. Ensure all changes are backed by
   unit tests and validated in a staging environment.

` + divider + `
`
