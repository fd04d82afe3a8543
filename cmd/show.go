package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/pkg/formatter"
	"github.com/helmcode/jira-ai/pkg/jira"
	"github.com/helmcode/jira-ai/pkg/model"
)

var showOutputFormat string

func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show BUG-ID",
		Short: "Show the details of a JIRA bug",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().StringVarP(&showOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	key := args[0]

	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.cfg.ValidateTracker(); err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Fetching JIRA bug %s...", key)
	s.Start()

	raw, err := jira.NewClient(rt.cfg.Jira, rt.log).FetchIssue(cmd.Context(), key)
	s.Stop()
	if err != nil {
		printError(fmt.Sprintf("Failed to fetch %s", key))
		return err
	}

	report := &model.Report{TicketKey: key, Details: formatter.FormatRaw(raw)}
	return formatter.DisplayResults(report, showOutputFormat, os.Stdout)
}
