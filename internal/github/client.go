// internal/github/client.go
package github

import (
	"context"
	"fmt"
	"log/slog"

	"github-contrib-finder/internal/model"
)

// DefaultBaseURL is the public code-hosting API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client fetches repository data from the code-hosting API and translates it
// to our internal model.
type Client struct {
	transport Transport
	baseURL   string
	logger    *slog.Logger
}

// NewClient creates a Client over the given transport. baseURL has no
// trailing slash, e.g. "https://api.github.com".
func NewClient(transport Transport, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		transport: transport,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// FetchRepositories runs a repository search and returns the decoded
// collection. Items are in the API's order, stars descending.
func (c *Client) FetchRepositories(ctx context.Context, criteria model.SearchCriteria) (model.RepositoryCollection, error) {
	url := fmt.Sprintf("%s/search/repositories?%s", c.baseURL, encodeSearchQuery(criteria))
	c.logger.Debug("Searching repositories", "url", url)

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return model.RepositoryCollection{}, err
	}
	if !statusOK(resp.Status) {
		return model.RepositoryCollection{}, fmt.Errorf("searching repositories: unexpected status %d", resp.Status)
	}

	collection, err := decodeSearchResponse(resp.Body)
	if err != nil {
		return model.RepositoryCollection{}, err
	}

	c.logger.Debug("Search finished", "total_count", collection.TotalCount, "items", len(collection.Items))
	return collection, nil
}

// FetchTopReadme fetches and decodes a repository's README. A missing README
// is reported as Found=false, not as an error.
func (c *Client) FetchTopReadme(ctx context.Context, owner, repo string) (model.ReadmeResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, repo)
	c.logger.Debug("Fetching readme", "owner", owner, "repo", repo)

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return model.ReadmeResult{}, err
	}

	return decodeReadme(resp)
}

// FetchIssues lists a repository's issues under the given criteria.
func (c *Client) FetchIssues(ctx context.Context, owner, repo string, criteria model.IssueSearchCriteria) ([]model.Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.baseURL, owner, repo, encodeIssueQuery(criteria))
	c.logger.Debug("Fetching issues", "owner", owner, "repo", repo)

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !statusOK(resp.Status) {
		return nil, fmt.Errorf("fetching issues: unexpected status %d", resp.Status)
	}

	return decodeIssues(resp.Body)
}

// statusOK reports whether a response status is 2xx. The README path handles
// its own 404 before this check applies.
func statusOK(status int) bool {
	return status >= 200 && status <= 299
}
