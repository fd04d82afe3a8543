package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/jira-ai/pkg/model"
)

// DisplayResults formats and writes a report
func DisplayResults(report *model.Report, format string, w io.Writer) error {
	switch format {
	case "json":
		return displayJSON(report, w)
	case "yaml":
		return displayYAML(report, w)
	case "human":
		fallthrough
	default:
		displayHuman(report, w)
	}
	return nil
}

func displayJSON(report *model.Report, w io.Writer) error {
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(report *model.Report, w io.Writer) error {
	output, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(report *model.Report, w io.Writer) {
	// Colors
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)

	cyan.Fprintln(w, "📋 BUG DETAILS:")
	fmt.Fprintln(w, indent(report.Details, "   "))
	fmt.Fprintln(w)

	analysis := report.Analysis
	if analysis == nil {
		return
	}

	if analysis.Source == model.SourceRemote {
		green.Fprintf(w, "🤖 %s:\n", strings.ToUpper(analysis.Label))
		fmt.Fprintln(w, RenderMarkdown(analysis.Text))
	} else {
		yellow.Fprintf(w, "🔧 %s:\n", strings.ToUpper(analysis.Label))
		fmt.Fprintln(w, analysis.Text)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	if analysis.RunID != "" {
		fmt.Fprintf(w, "🆔 %s\n", color.HiBlackString("run %s", analysis.RunID))
	}
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
