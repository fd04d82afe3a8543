package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/pkg/analyzer"
	"github.com/helmcode/jira-ai/pkg/jira"
	"github.com/helmcode/jira-ai/pkg/tui"
)

var tuiOffline bool

func NewTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive bug analyzer",
		Long: `Start the interactive analyzer. Type a bug ID and press enter to fetch and
analyze it; tab switches between the input and the two panes, ctrl+o opens
the bug in the browser and esc quits.

Logs are written only when logging.file is configured.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().BoolVar(&tuiOffline, "offline", false, "Use pattern-based analysis without calling the LLM")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Anything written to the terminal would corrupt the alt screen.
	rt, err := setup(io.Discard)
	if err != nil {
		return err
	}
	defer rt.Close()

	pipeline, err := rt.newPipeline()
	if err != nil {
		return err
	}

	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	baseURL := rt.cfg.Jira.BaseURL
	model := tui.NewModel(tui.Options{
		Runner:    pipeline,
		Analysis:  analyzer.Options{Offline: tuiOffline},
		BrowseURL: func(key string) string { return jira.BrowseURL(baseURL, key) },
		OpenURL:   browser.OpenURL,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}
