package parser

import (
	"regexp"
	"strings"
)

var outerFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\n(.*?)\n?```$")

// CleanCompletion trims a completion and removes a code fence wrapping the
// whole response, such as ```markdown ... ```. Fences inside the text are
// kept so code samples still render as code.
func CleanCompletion(raw string) string {
	text := strings.TrimSpace(raw)
	if m := outerFence.FindStringSubmatch(text); m != nil && !strings.Contains(m[1], "```") {
		text = strings.TrimSpace(m[1])
	}
	return text
}
