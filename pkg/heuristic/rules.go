package heuristic

import "strings"

// Rule maps a keyword set to a fixed advisory paragraph.
type Rule struct {
	Name     string
	Keywords []string
	Advice   string
}

// Rules are checked independently; every matching rule contributes.
var Rules = []Rule{
	{
		Name:     "memory",
		Keywords: []string{"memory", "leak", "crash", "segfault", "null pointer", "nullptr"},
		Advice: `   • Potential memory management issue detected
   • May involve improper pointer handling or resource cleanup
   • Check for null pointer dereferences and memory leaks
`,
	},
	{
		Name:     "performance",
		Keywords: []string{"performance", "slow", "timeout", "latency", "hang", "freeze"},
		Advice: `   • Performance bottleneck identified
   • May involve database queries, network calls, or inefficient algorithms
   • Review transaction processing, caching, and optimization
`,
	},
	{
		Name:     "database",
		Keywords: []string{"database", "sql", "query", "connection", "deadlock"},
		Advice: `   • Database connectivity or query issue
   • May involve connection pool exhaustion or query optimization
   • Review database transaction handling and indexing
`,
	},
	{
		Name:     "auth",
		Keywords: []string{"authentication", "login", "auth", "permission", "access denied"},
		Advice: `   • Authentication/Authorization issue detected
   • May involve incorrect credentials, tokens, or permissions
   • Review security configuration and access control logic
`,
	},
	{
		Name:     "api",
		Keywords: []string{"api", "rest", "endpoint", "http", "404", "500", "response"},
		Advice: `   • API/REST endpoint issue detected
   • May involve incorrect routing, request/response handling
   • Review API controllers, middleware, and error handling
`,
	},
	{
		Name:     "frontend",
		Keywords: []string{"frontend", "ui", "display", "render", "css", "javascript"},
		Advice: `   • Frontend/UI issue detected
   • May involve rendering problems, styling, or client-side logic
   • Review component logic, state management, and CSS
`,
	},
	{
		Name:     "exception",
		Keywords: []string{"error", "exception", "stack trace", "failed"},
		Advice: `   • Exception/Error handling issue detected
   • May involve unhandled exceptions or improper error propagation
   • Review try-catch blocks and error handling middleware
`,
	},
}

// GenericAdvice is used when no rule matches.
const GenericAdvice = `   • General bug analysis required
   • Review the bug description and affected functionality
   • Identify the specific area of code related to the issue
`

// Match reports whether any keyword occurs in the lower-cased text.
func (r Rule) Match(text string) bool {
	return containsAny(text, r.Keywords...)
}

// MatchRules returns the rules whose keywords occur in text, in table order.
func MatchRules(text string) []Rule {
	var matched []Rule
	for _, r := range Rules {
		if r.Match(text) {
			matched = append(matched, r)
		}
	}
	return matched
}

// techAdvice is checked in order; the first entry whose needle occurs in
// the lower-cased technology name wins.
var techAdvice = []struct {
	needles []string
	advice  string
}{
	{[]string{"python"}, "   • Python: Check for proper exception handling, use type hints\n"},
	{[]string{"java"}, "   • Java: Review try-catch blocks, check for resource leaks\n"},
	{[]string{"c++", "cpp"}, "   • C++: Verify memory management, use smart pointers\n"},
	{[]string{"javascript", "js", "node"}, "   • JavaScript/Node.js: Check async/await usage, handle promises\n"},
	{[]string{"react"}, "   • React: Review component lifecycle, state management\n"},
	{[]string{"database", "sql"}, "   • Database: Optimize queries, check indexes, review transactions\n"},
	{[]string{"docker", "kubernetes"}, "   • Container/Orchestration: Review configurations, resource limits\n"},
}

// TechnologyAdvice returns the advisory line for a technology, or "" when
// the technology has none.
func TechnologyAdvice(tech string) string {
	lower := strings.ToLower(tech)
	for _, entry := range techAdvice {
		if containsAny(lower, entry.needles...) {
			return entry.advice
		}
	}
	return ""
}

// bugWords gate the technology section in addition to the technology
// name itself.
var bugWords = []string{"bug", "error", "issue"}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
