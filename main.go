package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jira-ai",
		Short: "AI-powered JIRA bug analysis",
		Long: `jira-ai fetches a JIRA bug, scans your local workspace for relevant source
files and asks an LLM for root cause analysis and fix suggestions. When the
LLM is unavailable it falls back to pattern-based analysis.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddPersistentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewShowCmd(),
		cmd.NewBrowseCmd(),
		cmd.NewTUICmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jira-ai version %s\n", version)
		},
	}
}
