package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"
)

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Loader handles configuration loading from YAML or JSONC files
type Loader struct {
	// lookupEnv is os.LookupEnv outside tests.
	lookupEnv func(string) (string, bool)
	// searchPaths are tried in order when no explicit path is given.
	searchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	paths := []string{"jira-ai.yaml", "jira-ai.yml", "jira-ai.jsonc"}
	if home := homedir.HomeDir(); home != "" {
		paths = append(paths,
			filepath.Join(home, ".jira-ai", "config.yaml"),
			filepath.Join(home, ".jira-ai", "config.jsonc"),
		)
	}
	return &Loader{
		lookupEnv:   os.LookupEnv,
		searchPaths: paths,
	}
}

// Load builds the configuration: defaults, then the config file (if any),
// then credentials from the environment for fields the file left empty.
//
// Environment variables can be referenced inside the file using:
//   - ${VAR_NAME} - substitutes the value of VAR_NAME, empty string if not set
//   - ${VAR_NAME:-default} - substitutes VAR_NAME or "default" if not set
func (l *Loader) Load(configPath string) (*Config, error) {
	return l.LoadWithOverrides(configPath, Overrides{})
}

// Overrides are command line settings that take precedence over the file.
type Overrides struct {
	WorkspacePath string
	Provider      string
	Model         string
}

// LoadWithOverrides is Load with command line overrides applied after the
// file and before provider defaults and environment credentials.
func (l *Loader) LoadWithOverrides(configPath string, o Overrides) (*Config, error) {
	cfg := DefaultConfig()
	// The base URL default applies only when neither the file nor
	// JIRA_BASE_URL sets one.
	cfg.Jira.BaseURL = ""

	filePath, err := l.resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		if err := l.loadFile(filePath, cfg); err != nil {
			return nil, err
		}
	}

	if o.WorkspacePath != "" {
		cfg.Workspace.Path = o.WorkspacePath
	}
	if o.Provider != "" && !strings.EqualFold(o.Provider, cfg.LLM.Provider) {
		cfg.LLM.Provider = o.Provider
		cfg.LLM.Model = ""
		cfg.LLM.APIKey = ""
	}
	if o.Model != "" {
		cfg.LLM.Model = o.Model
	}

	cfg.normalize()
	l.applyEnv(cfg)
	if cfg.Jira.BaseURL == "" {
		cfg.Jira.BaseURL = DefaultJiraBaseURL
	}
	return cfg, nil
}

// Load is a convenience wrapper around NewLoader().Load.
func Load(configPath string) (*Config, error) {
	return NewLoader().Load(configPath)
}

// LoadWithOverrides is a convenience wrapper around
// NewLoader().LoadWithOverrides.
func LoadWithOverrides(configPath string, o Overrides) (*Config, error) {
	return NewLoader().LoadWithOverrides(configPath, o)
}

func (l *Loader) resolveConfigPath(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", configPath, err)
		}
		return configPath, nil
	}

	for _, path := range l.searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

func (l *Loader) loadFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := []byte(l.expandEnvVars(string(data)))

	// JSON is a subset of YAML, so JSONC only needs comments and trailing
	// commas stripped before going through the same decoder.
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json", ".jsonc":
		expanded = jsonc.ToJSON(expanded)
	}

	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	return nil
}

// expandEnvVars expands environment variable references in the input string.
func (l *Loader) expandEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatches := envPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultVal := ""
		if len(submatches) >= 3 {
			defaultVal = submatches[2]
		}

		if val, exists := l.lookupEnv(varName); exists {
			return val
		}
		return defaultVal
	})
}

// applyEnv fills empty credentials from the environment.
func (l *Loader) applyEnv(cfg *Config) {
	fill := func(dst *string, key string) {
		if *dst != "" {
			return
		}
		if v, ok := l.lookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	fill(&cfg.Jira.BaseURL, "JIRA_BASE_URL")
	fill(&cfg.Jira.Email, "JIRA_EMAIL")
	fill(&cfg.Jira.APIToken, "JIRA_API_TOKEN")

	switch cfg.LLM.Provider {
	case "claude":
		fill(&cfg.LLM.APIKey, "ANTHROPIC_API_KEY")
	default:
		fill(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	}
}

// normalize fills zero limits left by a partial config file.
func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		if c.LLM.Provider == "claude" {
			c.LLM.Model = DefaultClaudeModel
		} else {
			c.LLM.Model = DefaultOpenAIModel
		}
	}
	if c.Workspace.MaxFiles <= 0 {
		c.Workspace.MaxFiles = DefaultMaxFiles
	}
	if c.Workspace.MaxLinesPerFile <= 0 {
		c.Workspace.MaxLinesPerFile = DefaultMaxLines
	}
	if c.Workspace.MaxStructureEntries <= 0 {
		c.Workspace.MaxStructureEntries = DefaultStructureSize
	}
}
