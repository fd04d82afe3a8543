package config

import (
	"os"
	"time"
)

const (
	DefaultJiraBaseURL   = "https://abc.atlassian.net/"
	DefaultOpenAIModel   = "gpt-4o-2024-11-20"
	DefaultClaudeModel   = "claude-sonnet-4-20250514"
	DefaultMaxFiles      = 100
	DefaultMaxLines      = 1000
	DefaultStructureSize = 30
)

// DefaultConfig returns the default configuration. The workspace defaults
// to the current working directory.
func DefaultConfig() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Config{
		Jira: JiraConfig{
			BaseURL: DefaultJiraBaseURL,
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Temperature: 0.7,
			MaxTokens:   3000,
			Timeout:     90 * time.Second,
		},
		Project: ProjectProfile{
			Name:         "project name",
			Technologies: []string{"Java", "C++"},
			Components:   []string{"Frontend", "Backend", "Database", "API", "Cache"},
		},
		Workspace: WorkspaceConfig{
			Path:                cwd,
			Extensions:          []string{".java", ".cpp", ".h", ".py", ".js", ".ts", ".jsx", ".tsx", ".c", ".cc"},
			ExcludeDirs:         []string{"node_modules", ".git", "build", "dist", "target", "__pycache__"},
			MaxFiles:            DefaultMaxFiles,
			MaxLinesPerFile:     DefaultMaxLines,
			MaxStructureEntries: DefaultStructureSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
