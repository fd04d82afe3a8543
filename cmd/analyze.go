package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/pkg/analyzer"
	"github.com/helmcode/jira-ai/pkg/formatter"
	"github.com/helmcode/jira-ai/pkg/model"
)

var (
	outputFormat string
	offline      bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze BUG-ID",
		Short: "Analyze a JIRA bug against the local workspace",
		Long: `Fetch a JIRA bug, scan the workspace for relevant source files and ask the
configured LLM for fix suggestions. When the LLM is unavailable a
pattern-based analysis is shown instead.

Examples:
  # Analyze a bug against the current directory
  jira-ai analyze PROJ-123

  # Analyze against another checkout with Claude
  jira-ai analyze PROJ-123 -w ~/src/app --llm-provider claude

  # Skip the LLM entirely
  jira-ai analyze PROJ-123 --offline

  # Machine-readable output
  jira-ai analyze PROJ-123 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use pattern-based analysis without calling the LLM")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	key := args[0]

	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.cfg.Validate(); err != nil {
		return err
	}

	pipeline, err := rt.newPipeline()
	if err != nil {
		return err
	}

	human := outputFormat == "human" || outputFormat == ""
	if human {
		printHeader(key, rt.cfg)
	}

	type outcome struct {
		report *model.Report
		err    error
	}
	progress := make(chan analyzer.Stage)
	done := make(chan outcome, 1)
	go func() {
		defer close(progress)
		report, err := pipeline.Run(cmd.Context(), key, analyzer.Options{Offline: offline}, progress)
		done <- outcome{report: report, err: err}
	}()

	// Create spinner for visual feedback
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	var current analyzer.Stage
	for stage := range progress {
		if !human {
			continue
		}
		if s.Active() {
			s.Stop()
			printSuccess(completed(current, key))
		}
		current = stage
		switch stage.Kind {
		case analyzer.StageFormatting:
			printSuccess(stage.Message)
		case analyzer.StageDone:
		default:
			s.Suffix = " " + stage.Message
			s.Start()
		}
	}
	s.Stop()

	result := <-done
	if result.err != nil {
		printError(fmt.Sprintf("Failed to analyze %s", key))
		return result.err
	}

	if human && result.report.Analysis.Warning != "" {
		printWarning("LLM unavailable, showing pattern-based analysis")
	}

	return formatter.DisplayResults(result.report, outputFormat, os.Stdout)
}

// completed is the success line for a finished stage.
func completed(stage analyzer.Stage, key string) string {
	switch stage.Kind {
	case analyzer.StageFetching:
		return fmt.Sprintf("Fetched JIRA bug %s", key)
	case analyzer.StageScanning:
		return "Workspace scanned"
	case analyzer.StageAnalyzing:
		return "Analysis complete"
	default:
		return stage.Message
	}
}
