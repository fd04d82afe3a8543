package config

import (
	"fmt"
	"net/url"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	apperrors "github.com/helmcode/jira-ai/pkg/errors"
)

// ValidateTracker checks the issue tracker settings. It runs before any
// network call; a failure here aborts the run.
func (c *Config) ValidateTracker() error {
	var errs []error

	if strings.TrimSpace(c.Jira.BaseURL) == "" {
		errs = append(errs, fmt.Errorf("jira.base_url is required"))
	} else if u, err := url.Parse(c.Jira.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("jira.base_url %q is not an absolute URL", c.Jira.BaseURL))
	}
	if strings.TrimSpace(c.Jira.Email) == "" {
		errs = append(errs, fmt.Errorf("jira.email is required (or set JIRA_EMAIL)"))
	}
	if strings.TrimSpace(c.Jira.APIToken) == "" {
		errs = append(errs, fmt.Errorf("jira.api_token is required (or set JIRA_API_TOKEN)"))
	}

	if agg := utilerrors.NewAggregate(errs); agg != nil {
		return apperrors.NewConfig("please configure JIRA credentials", agg)
	}
	return nil
}

// Validate checks the whole configuration. A missing completion API key is
// not an error: the analysis falls back to the local heuristic.
func (c *Config) Validate() error {
	var errs []error

	if err := c.ValidateTracker(); err != nil {
		errs = append(errs, err)
	}
	switch c.LLM.Provider {
	case "openai", "claude":
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q is not supported (supported: openai, claude)", c.LLM.Provider))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be positive"))
	}
	if strings.TrimSpace(c.Workspace.Path) == "" {
		errs = append(errs, fmt.Errorf("workspace.path is required"))
	}
	if len(c.Workspace.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("workspace.extensions must not be empty"))
	}

	if agg := utilerrors.NewAggregate(errs); agg != nil {
		return apperrors.NewConfig("invalid configuration", agg)
	}
	return nil
}
