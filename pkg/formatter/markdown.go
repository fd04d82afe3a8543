package formatter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	markdown   = goldmark.New(goldmark.WithExtensions(extension.GFM))
	ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// RenderMarkdown styles completion text for a terminal: ATX headings are
// printed bold without their markers and fenced code blocks are syntax
// highlighted. Every other line is kept as written.
func RenderMarkdown(input string) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := markdown.Parser().Parse(text.NewReader(source))

	lines := strings.Split(input, "\n")
	starts := lineStarts(source)
	replaced := make(map[int]string)
	dropped := make(map[int]bool)

	heading := color.New(color.FgCyan, color.Bold)

	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			segments := n.Lines()
			if segments.Len() == 0 {
				return ast.WalkSkipChildren, nil
			}
			first := segments.At(0)
			idx := lineOf(starts, first.Start)
			if !strings.HasPrefix(strings.TrimSpace(lines[idx]), "#") {
				return ast.WalkSkipChildren, nil
			}
			title := strings.TrimSpace(string(first.Value(source)))
			replaced[idx] = heading.Sprint(title)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			segments := n.Lines()
			if segments.Len() == 0 {
				return ast.WalkSkipChildren, nil
			}
			var code strings.Builder
			for i := 0; i < segments.Len(); i++ {
				segment := segments.At(i)
				code.Write(segment.Value(source))
			}
			first := lineOf(starts, segments.At(0).Start)
			last := lineOf(starts, segments.At(segments.Len()-1).Start)

			line := lines[first]
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			highlighted := strings.Split(highlightCode(code.String(), string(n.Language(source))), "\n")
			for i := range highlighted {
				highlighted[i] = indent + highlighted[i]
			}
			replaced[first] = strings.Join(highlighted, "\n")
			for i := first + 1; i <= last; i++ {
				dropped[i] = true
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if dropped[i] {
			continue
		}
		if r, ok := replaced[i]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// highlightCode returns ANSI-highlighted code, or the code unchanged when
// the language is unknown.
func highlightCode(code, language string) string {
	code = strings.TrimRight(code, "\n")
	if language == "" {
		return code
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, code, language, "terminal256", "monokai"); err != nil {
		return code
	}
	out := buf.String()
	// A trailing newline may be followed by a reset sequence.
	for {
		i := strings.LastIndex(out, "\n")
		if i < 0 || ansiEscape.ReplaceAllString(out[i+1:], "") != "" {
			break
		}
		out = out[:i] + out[i+1:]
	}
	return out
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the index of the line containing offset.
func lineOf(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}
