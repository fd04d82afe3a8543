package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/helmcode/jira-ai/pkg/errors"
)

func testLoader(env map[string]string, searchPaths ...string) *Loader {
	return &Loader{
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		searchPaths: searchPaths,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := testLoader(nil, filepath.Join(tmpDir, "missing.yaml")).Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxFiles, cfg.Workspace.MaxFiles)
	assert.Equal(t, DefaultMaxLines, cfg.Workspace.MaxLinesPerFile)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.LLM.Model)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Contains(t, cfg.Workspace.ExcludeDirs, "node_modules")
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "jira-ai.yaml", `
jira:
  base_url: https://acme.atlassian.net
  email: ${JIRA_USER}
  api_token: ${TOKEN:-fallback-token}
  timeout: 5s
project:
  name: Payments
  technologies: [Go, React]
  components: [Frontend, Backend]
workspace:
  path: /src/payments
  max_files: 10
`)

	cfg, err := testLoader(map[string]string{"JIRA_USER": "dev@acme.io"}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev@acme.io", cfg.Jira.Email)
	assert.Equal(t, "fallback-token", cfg.Jira.APIToken)
	assert.Equal(t, 5*time.Second, cfg.Jira.Timeout)
	assert.Equal(t, "Payments", cfg.Project.Name)
	assert.Equal(t, []string{"Go", "React"}, cfg.Project.Technologies)
	assert.Equal(t, "/src/payments", cfg.Workspace.Path)
	assert.Equal(t, 10, cfg.Workspace.MaxFiles)
	// Untouched limits keep their defaults.
	assert.Equal(t, DefaultMaxLines, cfg.Workspace.MaxLinesPerFile)
}

func TestLoad_JSONC(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "config.jsonc", `{
  // tracker
  "jira": {"base_url": "https://acme.atlassian.net", "email": "a@b.c", "api_token": "t"},
  "llm": {"provider": "Claude", "max_tokens": 500,},
}`)

	cfg, err := testLoader(map[string]string{"ANTHROPIC_API_KEY": "sk-ant"}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, DefaultClaudeModel, cfg.LLM.Model)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, "sk-ant", cfg.LLM.APIKey)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "bad.yaml", "jira: [unterminated")

	_, err := testLoader(nil).Load(path)
	require.Error(t, err)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := testLoader(nil).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvCredentials(t *testing.T) {
	env := map[string]string{
		"JIRA_EMAIL":     "me@acme.io",
		"JIRA_API_TOKEN": " secret ",
		"OPENAI_API_KEY": "sk-test",
	}

	cfg, err := testLoader(env).Load("")
	require.NoError(t, err)

	assert.Equal(t, "me@acme.io", cfg.Jira.Email)
	assert.Equal(t, "secret", cfg.Jira.APIToken)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestValidateTracker(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateTracker()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	assert.Contains(t, err.Error(), "jira.email")
	assert.Contains(t, err.Error(), "jira.api_token")

	cfg.Jira.Email = "me@acme.io"
	cfg.Jira.APIToken = "token"
	assert.NoError(t, cfg.ValidateTracker())

	cfg.Jira.BaseURL = "not a url"
	assert.Error(t, cfg.ValidateTracker())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jira.Email = "me@acme.io"
	cfg.Jira.APIToken = "token"
	require.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "gemini"
	cfg.Workspace.Extensions = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "workspace.extensions")
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jira-ai.yaml", `
llm:
  provider: openai
  api_key: sk-file
  model: gpt-4o-mini
workspace:
  path: /srv/app
`)
	env := map[string]string{"ANTHROPIC_API_KEY": "ant-env"}

	cfg, err := testLoader(env).LoadWithOverrides(path, Overrides{WorkspacePath: "/tmp/other", Provider: "Claude"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other", cfg.Workspace.Path)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, DefaultClaudeModel, cfg.LLM.Model)
	assert.Equal(t, "ant-env", cfg.LLM.APIKey)

	cfg, err = testLoader(env).LoadWithOverrides(path, Overrides{Provider: "openai", Model: "gpt-4.1"})
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4.1", cfg.LLM.Model)
}

func TestLoad_BaseURLFromEnv(t *testing.T) {
	env := map[string]string{"JIRA_BASE_URL": "https://acme.atlassian.net"}

	cfg, err := testLoader(env).Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.atlassian.net", cfg.Jira.BaseURL)

	path := writeFile(t, t.TempDir(), "jira-ai.yaml", "jira:\n  base_url: https://file.atlassian.net\n")
	cfg, err = testLoader(env).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.atlassian.net", cfg.Jira.BaseURL)

	cfg, err = testLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultJiraBaseURL, cfg.Jira.BaseURL)
}
