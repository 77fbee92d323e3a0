// Package github fetches a user's public repositories for profile display.
// Lookups are advisory: failures surface as lookup errors, never as server faults.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/middleware"
	"devconnect/internal/models"
)

const requestTimeout = 10 * time.Second

// Repository is the subset of the GitHub repository payload the client renders.
type Repository struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub REST API with a bounded timeout.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a GitHub client. baseURL is overridable for tests.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ListRepositories fetches the five most recently created public repositories
// for the given username. Any transport failure or non-200 response is
// reported as an external lookup error.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewExternalLookupError("No Github profile found", err)
	}
	req.Header.Set("User-Agent", "devconnect")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.ExternalLookupFailures.Inc()
		return nil, models.NewExternalLookupError("No Github profile found", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		middleware.ExternalLookupFailures.Inc()
		return nil, models.NewExternalLookupError("No Github profile found",
			fmt.Errorf("github responded %d", resp.StatusCode))
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		middleware.ExternalLookupFailures.Inc()
		return nil, models.NewExternalLookupError("No Github profile found", err)
	}

	return repos, nil
}
