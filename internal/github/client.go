// Package github proxies public repository listings for profile pages.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.github.com"

var ErrUserNotFound = errors.New("github user not found")

type Repo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

type Client struct {
	http    *http.Client
	baseURL string
	cache   *Cache
}

// NewClient returns a client; cache may be nil to disable caching.
func NewClient(cache *Cache) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		cache:   cache,
	}
}

// Repos lists the user's five most recent public repositories. Results are
// served from cache when present; cache failures fall through to the API.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	if c.cache != nil {
		if repos, err := c.cache.Get(ctx, username); err == nil && repos != nil {
			return repos, nil
		}
	}

	u := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devhub")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github responded %d", resp.StatusCode)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, username, repos)
	}
	return repos, nil
}
