// Package gateway provides a gateway to the GitHub issue search API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"

	"github.com/naka-gawa/gitissues/internal/domain"
)

// Only total_count is consumed, so a single result per page is enough.
const (
	searchPage    = 1
	searchPerPage = 1
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Searcher defines the behavior of a gateway for counting issues on GitHub.
type Searcher interface {
	SearchOpenIssues(ctx context.Context, window domain.QueryWindow) (*domain.SearchResult, error)
}

// Options configures the REST client used by GitHubGateway.
type Options struct {
	// BaseURL of the REST API. Defaults to DefaultBaseURL.
	BaseURL string
	// UserAgent overrides go-github's default user agent when set.
	UserAgent string
	// HTTPClient is the client requests are sent through. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// GitHubGateway is the concrete implementation of the Searcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *slog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *slog.Logger) (*GitHubGateway, error) {
	restClient := github.NewClient(opts.HTTPClient)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitHub base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("GitHub base url %q must be absolute", baseURL)
	}
	restClient.BaseURL = u

	if opts.UserAgent != "" {
		restClient.UserAgent = opts.UserAgent
	}

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// SearchOpenIssues runs a single-result issue search for the window and returns its total count.
func (g *GitHubGateway) SearchOpenIssues(ctx context.Context, window domain.QueryWindow) (*domain.SearchResult, error) {
	// The q value is assembled by hand: go-github's Search.Issues would
	// re-encode the '+' term separators that QueryWindow already produces.
	u := fmt.Sprintf("search/issues?page=%d&per_page=%d&q=%s", searchPage, searchPerPage, window.Query())
	req, err := g.restClient.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build issue search request: %w", err)
	}

	var result github.IssuesSearchResult
	if _, err := g.restClient.Do(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("failed to search issues with REST API: %w", err)
	}
	if result.Total == nil {
		return nil, fmt.Errorf("issue search response for %s has no total_count", window.Repo())
	}

	g.logger.DebugContext(ctx, "issue search completed",
		"repo", window.Repo(),
		"from", window.From,
		"till", window.Till,
		"total_count", result.GetTotal(),
	)
	return &domain.SearchResult{
		TotalCount: result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
	}, nil
}
