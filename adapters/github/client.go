package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/config"
)

var ErrUserNotFound = errors.New("github user not found")

// Repo is the subset of the GitHub repository payload the API exposes.
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      "https://api.github.com",
		clientID:     cfg.Github.ClientID,
		clientSecret: cfg.Github.ClientSecret,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// ListRecentRepos fetches the user's most recently created public
// repositories. A non-200 upstream answer maps to ErrUserNotFound.
func (c *Client) ListRecentRepos(ctx context.Context, username string, limit int) ([]Repo, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprintf("%d", limit))
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("User-Agent", "devconnect-api")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUserNotFound
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	return repos, nil
}
