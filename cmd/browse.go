package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/pkg/jira"
)

var printOnly bool

func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse BUG-ID",
		Short: "Open a JIRA bug in the web browser",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowse,
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL instead of opening it")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if key == "" {
		return fmt.Errorf("please enter a JIRA Bug ID")
	}

	rt, err := setup(io.Discard)
	if err != nil {
		return err
	}
	defer rt.Close()

	url := jira.BrowseURL(rt.cfg.Jira.BaseURL, key)
	if printOnly {
		fmt.Println(url)
		return nil
	}

	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	printSuccess(fmt.Sprintf("Opened %s", url))
	return nil
}
