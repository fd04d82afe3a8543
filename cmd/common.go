package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helmcode/jira-ai/pkg/analyzer"
	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/jira"
	"github.com/helmcode/jira-ai/pkg/llm"
	"github.com/helmcode/jira-ai/pkg/logger"
	"github.com/helmcode/jira-ai/pkg/workspace"
)

var (
	configPath    string
	verbose       bool
	workspacePath string
	llmProvider   string
	llmModel      string
)

// AddPersistentFlags registers the flags shared by every command.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./jira-ai.yaml or ~/.jira-ai/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "Workspace to scan (default: config or current directory)")
	root.PersistentFlags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, claude)")
	root.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model to use (defaults to provider's default)")
}

// runtime holds what a command needs once configuration is loaded.
type runtime struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

func (r *runtime) Close() {
	if r.closer != nil {
		r.closer.Close()
	}
}

// setup loads the configuration, applies command line overrides and builds
// the logger. Console logs go to logOut unless a log file is configured.
// Validation is left to each command since they need different settings.
func setup(logOut io.Writer) (*runtime, error) {
	cfg, err := config.LoadWithOverrides(configPath, config.Overrides{
		WorkspacePath: workspacePath,
		Provider:      llmProvider,
		Model:         llmModel,
	})
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	} else if cfg.Logging.File == "" && cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}

	log, closer, err := logger.New(cfg.Logging, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Debug().Str("workspace", cfg.Workspace.Path).Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("configuration loaded")

	return &runtime{cfg: cfg, log: log, closer: closer}, nil
}

// newPipeline wires the tracker client, workspace scanner and analyzer.
func (r *runtime) newPipeline() (*analyzer.Pipeline, error) {
	provider, err := llm.NewFromConfig(r.cfg.LLM)
	if err != nil {
		return nil, err
	}
	client := jira.NewClient(r.cfg.Jira, r.log)
	scanner := workspace.NewScanner(r.cfg.Workspace, r.log)
	a := analyzer.New(provider, r.cfg, r.log)
	return analyzer.NewPipeline(r.cfg, client, scanner, a, r.log), nil
}

func printHeader(key string, cfg *config.Config) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🔍 JIRA AI Bug Analyzer")
	fmt.Printf("📝 Bug ID: %s\n", key)
	fmt.Printf("📁 Workspace: %s\n", cfg.Workspace.Path)
	fmt.Printf("🤖 Model: %s\n", cfg.LLM.Model)
	fmt.Println()
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printWarning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("⚠ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, "✗ %s\n", msg)
}
