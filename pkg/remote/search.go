// Package remote talks to the outside world on behalf of the skills
// commands: the skills.sh search API and sparse git clones of skill
// repositories.
package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jingkaihe/agents-md/pkg/logger"
	"github.com/pkg/errors"
)

const (
	// DefaultSearchURL is the base URL of the public skills directory
	DefaultSearchURL = "https://skills.sh"
	// DefaultSearchLimit caps the number of results requested per search
	DefaultSearchLimit = 10

	maxErrorBodyLen = 512
)

// SearchResult is a single skill returned by the search API
type SearchResult struct {
	ID       string `json:"id" yaml:"id"`
	SkillID  string `json:"skillId" yaml:"skill_id"`
	Name     string `json:"name" yaml:"name"`
	Installs int    `json:"installs" yaml:"installs"`
	Source   string `json:"source" yaml:"source"`
}

type searchResponse struct {
	Skills []SearchResult `json:"skills"`
}

// Client queries a skills.sh compatible search API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the search API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a search client. Requests carry no timeout of their
// own; they are bounded by the context passed to Search.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultSearchURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up skills matching query. A non-positive limit falls back
// to DefaultSearchLimit. The request is attempted exactly once.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/api/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create search request")
	}
	req.Header.Set("Accept", "application/json")

	logger.G(ctx).WithField("url", endpoint).Debug("searching skills")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search skills")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, errors.Errorf("skills search failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	if len(result.Skills) > limit {
		result.Skills = result.Skills[:limit]
	}
	return result.Skills, nil
}
