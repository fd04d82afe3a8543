package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/model"
)

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, r := range Rules {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no rule named %q", name)
	return Rule{}
}

func testProfile() config.ProjectProfile {
	return config.ProjectProfile{
		Name:         "Payments",
		Technologies: []string{"Java", "C++"},
		Components:   []string{"Frontend", "Backend"},
	}
}

func TestAnalyze_DatabaseTimeout(t *testing.T) {
	report := Analyze(Input{TicketID: "PAY-1", Summary: "Database connection timeout"}, testProfile())

	assert.Contains(t, report, ruleByName(t, "performance").Advice)
	assert.Contains(t, report, ruleByName(t, "database").Advice)
	assert.NotContains(t, report, ruleByName(t, "frontend").Advice)
	assert.NotContains(t, report, GenericAdvice)
}

func TestAnalyze_GenericWhenNothingMatches(t *testing.T) {
	report := Analyze(Input{TicketID: "PAY-2", Summary: "Typo on invoice"}, testProfile())

	assert.Contains(t, report, GenericAdvice)
	for _, r := range Rules {
		assert.NotContains(t, report, r.Advice, r.Name)
	}
}

func TestAnalyze_ComponentMatching(t *testing.T) {
	report := Analyze(Input{TicketID: "PAY-3", Summary: "Backend service crashes"}, testProfile())

	assert.Contains(t, report, "   • Backend component\n")
	assert.NotContains(t, report, "   • Frontend component")
	assert.NotContains(t, report, "Review all relevant components")
	assert.Equal(t, []string{"Backend"}, MatchComponents("backend service crashes", testProfile().Components))
}

func TestAnalyze_NoComponentMatch(t *testing.T) {
	report := Analyze(Input{TicketID: "PAY-4", Summary: "Slow"}, testProfile())
	assert.Contains(t, report, "Review all relevant components mentioned in the bug description")
}

func TestAnalyze_StaticSectionsAlwaysPresent(t *testing.T) {
	report := Analyze(Input{}, config.ProjectProfile{})

	for _, heading := range []string{
		"🔧 RECOMMENDED FIXES:",
		"4. Generic Code Pattern Example:",
		"🧪 TESTING APPROACH:",
		"⚠️  POTENTIAL SIDE EFFECTS:",
		"📋 DEPLOYMENT CHECKLIST:",
		"🔗 RECOMMENDED NEXT STEPS:",
	} {
		assert.Contains(t, report, heading)
	}
}

func TestAnalyze_Header(t *testing.T) {
	report := Analyze(Input{TicketID: "PAY-5", WorkspacePath: "/src/pay"}, testProfile())
	assert.Contains(t, report, "AI-POWERED BUG FIX ANALYSIS FOR PAY-5")
	assert.Contains(t, report, "PROJECT: Payments\nWORKSPACE: /src/pay\n")
}

func TestTechnologySection(t *testing.T) {
	techs := []string{"Java", "C++", "Go"}

	// Named technology only.
	assert.Equal(t, []string{TechnologyAdvice("Java")}, technologySection("java heap exhausted", techs))

	// A bug word enables every technology that has advice.
	got := technologySection("login issue", techs)
	assert.Equal(t, []string{TechnologyAdvice("Java"), TechnologyAdvice("C++")}, got)

	assert.Empty(t, technologySection("slow page", techs))
}

func TestTechnologyAdvice(t *testing.T) {
	assert.Contains(t, TechnologyAdvice("Node.js"), "JavaScript/Node.js")
	assert.Contains(t, TechnologyAdvice("Spring Boot Java"), "Java:")
	assert.Contains(t, TechnologyAdvice("Kubernetes"), "Container/Orchestration")
	assert.Equal(t, "", TechnologyAdvice("Go"))
}

func TestAnalyzeWithContext(t *testing.T) {
	snapshot := &model.WorkspaceSnapshot{Files: []model.FileSample{
		{Path: "src/OrderService.java", Lines: 120},
		{Path: "src/util/Strings.java", Lines: 30},
		{Path: "src/http/PaymentHandler.java", Lines: 80},
	}}

	report := AnalyzeWithContext(Input{TicketID: "PAY-6", Summary: "refund error"}, testProfile(), snapshot)

	require.Contains(t, report, "📁 WORKSPACE ANALYSIS:")
	assert.Contains(t, report, "Total code files scanned: 3")
	assert.Contains(t, report, "   1. src/OrderService.java (120 lines)")
	assert.Contains(t, report, "   • src/OrderService.java\n   • src/http/PaymentHandler.java\n")
	assert.Less(t, strings.Index(report, "📁 WORKSPACE ANALYSIS:"), strings.Index(report, "📊 ROOT CAUSE ANALYSIS:"))
}

func TestAnalyzeWithContext_EmptyWorkspace(t *testing.T) {
	report := AnalyzeWithContext(Input{TicketID: "PAY-7"}, testProfile(), &model.WorkspaceSnapshot{})
	assert.Contains(t, report, "No code files found in workspace scan")
}

func TestCandidateFiles_Limit(t *testing.T) {
	snapshot := &model.WorkspaceSnapshot{}
	for _, p := range []string{"a_worker.py", "b_service.py", "c_manager.py", "d_handler.py", "e_processor.py", "f_controller.py"} {
		snapshot.Files = append(snapshot.Files, model.FileSample{Path: p})
	}
	assert.Len(t, CandidateFiles(snapshot, 5), 5)
	assert.Nil(t, CandidateFiles(nil, 5))
}
