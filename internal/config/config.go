package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v2"

	"github.com/gnomegl/dronebar/internal/models"
)

// Config is the static configuration for one run. It is built once at
// process start and passed by reference; there is no ambient state.
type Config struct {
	ServerURL  string
	Token      string `masq:"secret"`
	Authors    []string
	Repos      []string
	BaseBranch string

	// RecentInterval is the window in which a build is shown
	// prominently; DisplayInterval is the outer window beyond which
	// builds are neither fetched nor shown. Display must be strictly
	// longer than recent.
	RecentInterval  time.Duration
	DisplayInterval time.Duration
}

// ParseConfig builds a Config from CLI flags and their environment
// sources. Author logins and repo slugs are normalized to lower case
// here so later comparisons never re-normalize.
func ParseConfig(c *cli.Context) *Config {
	return &Config{
		ServerURL:       c.String("server"),
		Token:           c.String("token"),
		Authors:         splitList(c.String("authors")),
		Repos:           splitList(c.String("repos")),
		BaseBranch:      c.String("base-branch"),
		RecentInterval:  time.Duration(c.Int64("recent-interval")) * time.Second,
		DisplayInterval: time.Duration(c.Int64("display-interval")) * time.Second,
	}
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate checks the configuration before any network call is made.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return goerr.Wrap(models.ErrInvalidConfig, "Drone server URL is not set")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return goerr.Wrap(models.ErrInvalidConfig, "Drone server URL is not an absolute URL", goerr.V("url", c.ServerURL))
	}
	if c.Token == "" {
		return goerr.Wrap(models.ErrInvalidConfig, "Drone token is not set")
	}
	if c.DisplayInterval <= c.RecentInterval {
		return goerr.Wrap(models.ErrInvalidConfig, "display interval must be longer than recent interval",
			goerr.V("display", c.DisplayInterval),
			goerr.V("recent", c.RecentInterval),
		)
	}
	return nil
}

// AuthorAllowed reports whether the login passes the author filter.
// An empty filter admits everyone. Logins are matched lower-cased.
func (c *Config) AuthorAllowed(login string) bool {
	return matchList(c.Authors, strings.ToLower(login))
}

// RepoAllowed reports whether the slug passes the repository filter.
func (c *Config) RepoAllowed(slug string) bool {
	return matchList(c.Repos, strings.ToLower(slug))
}

func matchList(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
