package drone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/gnomegl/dronebar/internal/models"
)

// Client talks to a Drone server over its REST API. The base URL and
// token are fixed at construction; every call is a single blocking
// round trip with no retries.
type Client struct {
	base *url.URL
	http *http.Client
}

// New validates the server URL and wraps the token into an
// authenticated HTTP client. The oauth2 transport attaches the
// "Authorization: Bearer <token>" header on every request.
func New(serverURL, token string) (*Client, error) {
	base, err := url.Parse(serverURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, goerr.Wrap(models.ErrInvalidConfig, "Drone server URL is not an absolute URL", goerr.V("url", serverURL))
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		base: base,
		http: oauth2.NewClient(context.Background(), ts),
	}, nil
}

// get issues one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.base
	u.Path = path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build Drone API request", goerr.V("path", path))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(err, "Failed to connect to Drone")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.ErrAuth
	case resp.StatusCode != http.StatusOK:
		return goerr.New(fmt.Sprintf("Drone API returned status %d", resp.StatusCode), goerr.V("path", path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode Drone API response", goerr.V("path", path))
	}
	return nil
}
