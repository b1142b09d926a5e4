package github

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyRepos = "github:repos:"

// Cache keeps recent repo listings in Redis so repeated profile views do
// not hammer the GitHub API.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached listing for username, or nil on miss.
func (c *Cache) Get(ctx context.Context, username string) ([]Repo, error) {
	b, err := c.rdb.Get(ctx, keyRepos+normalize(username)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var repos []Repo
	if err := json.Unmarshal(b, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Set stores the listing for username.
func (c *Cache) Set(ctx context.Context, username string, repos []Repo) error {
	b, err := json.Marshal(repos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyRepos+normalize(username), b, c.ttl).Err()
}

func normalize(username string) string {
	return strings.TrimSpace(strings.ToLower(username))
}
