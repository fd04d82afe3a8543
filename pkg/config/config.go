package config

import "time"

// Config is the root configuration. It is built once at startup and
// passed by pointer to every component that needs it; nothing mutates it
// afterwards.
type Config struct {
	Jira      JiraConfig      `yaml:"jira"`
	LLM       LLMConfig       `yaml:"llm"`
	Project   ProjectProfile  `yaml:"project"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// JiraConfig contains issue tracker connection settings
type JiraConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Email    string        `yaml:"email"`
	APIToken string        `yaml:"api_token"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LLMConfig contains completion service settings
type LLMConfig struct {
	Provider    string        `yaml:"provider"` // openai, claude
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Endpoint    string        `yaml:"endpoint"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ProjectProfile describes the project the tickets belong to.
type ProjectProfile struct {
	Name         string   `yaml:"name"`
	Technologies []string `yaml:"technologies"`
	Components   []string `yaml:"components"`
}

// WorkspaceConfig bounds the local source scan
type WorkspaceConfig struct {
	Path                string   `yaml:"path"`
	Extensions          []string `yaml:"extensions"`
	ExcludeDirs         []string `yaml:"exclude_dirs"`
	MaxFiles            int      `yaml:"max_files"`
	MaxLinesPerFile     int      `yaml:"max_lines_per_file"`
	MaxStructureEntries int      `yaml:"max_structure_entries"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`
}
