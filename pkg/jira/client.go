package jira

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helmcode/jira-ai/pkg/config"
	apperrors "github.com/helmcode/jira-ai/pkg/errors"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 200

type Client struct {
	baseURL  string
	email    string
	apiToken string
	client   *http.Client
	log      zerolog.Logger
}

// NewClient creates a tracker client from the tracker config.
func NewClient(cfg config.JiraConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		email:    cfg.Email,
		apiToken: cfg.APIToken,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// FetchIssue performs one authenticated GET for the issue and returns the
// raw JSON document. Every failure is a FETCH error; nothing is retried.
func (c *Client) FetchIssue(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.NewFetch("empty issue key", nil)
	}

	u := c.baseURL + "/rest/api/3/issue/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.NewFetch("building request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.email, c.apiToken)

	c.log.Debug().Str("ticket", key).Str("url", u).Msg("fetching ticket")
	started := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewFetch("failed to fetch JIRA bug", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFetch("reading response", err)
	}

	c.log.Debug().
		Str("ticket", key).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("ticket response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewFetchStatus(resp.StatusCode, excerpt(body))
	}
	return body, nil
}

// BrowseURL returns the web page for an issue.
func (c *Client) BrowseURL(key string) string {
	return BrowseURL(c.baseURL, key)
}

// BrowseURL returns the web page for an issue under baseURL.
func BrowseURL(baseURL, key string) string {
	return fmt.Sprintf("%s/browse/%s", strings.TrimRight(baseURL, "/"), url.PathEscape(strings.TrimSpace(key)))
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
