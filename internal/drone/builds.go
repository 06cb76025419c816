package drone

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gnomegl/dronebar/internal/models"
)

const perPage = 100

type repoRecord struct {
	Slug string `json:"slug"`
}

// buildRecord mirrors one element of the builds listing. Pointer
// fields distinguish an absent key from a zero value: author_login,
// title, started and created may be omitted by the server, the rest
// are required.
type buildRecord struct {
	AuthorLogin *string `json:"author_login"`
	Event       *string `json:"event"`
	Target      *string `json:"target"`
	Source      *string `json:"source"`
	Status      *string `json:"status"`
	Number      *int64  `json:"number"`
	Title       *string `json:"title"`
	Message     *string `json:"message"`
	Link        *string `json:"link"`
	Started     *int64  `json:"started"`
	Created     *int64  `json:"created"`
}

func (r *buildRecord) toBuild(repo models.Repository) (models.Build, error) {
	var missing string
	switch {
	case r.Event == nil:
		missing = "event"
	case r.Target == nil:
		missing = "target"
	case r.Source == nil:
		missing = "source"
	case r.Status == nil:
		missing = "status"
	case r.Number == nil:
		missing = "number"
	case r.Message == nil:
		missing = "message"
	case r.Link == nil:
		missing = "link"
	}
	if missing != "" {
		return models.Build{}, goerr.New(fmt.Sprintf("build record is missing required field %q", missing), goerr.V("repo", repo.Slug))
	}

	return models.Build{
		Repo:        repo,
		AuthorLogin: strings.ToLower(strOr(r.AuthorLogin)),
		Event:       models.ParseEvent(*r.Event),
		Source:      *r.Source,
		Target:      *r.Target,
		Status:      models.ParseStatus(*r.Status),
		Number:      *r.Number,
		Title:       strOr(r.Title),
		Message:     *r.Message,
		Link:        *r.Link,
		StartedAt:   time.Unix(unixOr(r.Started), 0),
		CreatedAt:   time.Unix(unixOr(r.Created), 0),
	}, nil
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func unixOr(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// ListRepositories fetches the repositories the token is authorized
// for. A single page is enough; the endpoint is not paginated here.
func (c *Client) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	query := url.Values{
		"per_page": {strconv.Itoa(perPage)},
		"page":     {"1"},
	}

	var records []repoRecord
	if err := c.get(ctx, "/api/user/repos", query, &records); err != nil {
		return nil, err
	}

	repos := make([]models.Repository, 0, len(records))
	for _, r := range records {
		repos = append(repos, models.Repository{Slug: r.Slug})
	}
	return repos, nil
}

// ListBuilds pages through a repository's builds, newest first, 100
// per page. It stops after a short page, or once the last build of a
// page is already older than oldest so further pages cannot fall
// inside the display window. Builds from the triggering page are kept.
func (c *Client) ListBuilds(ctx context.Context, repo models.Repository, oldest time.Time) ([]models.Build, error) {
	path := fmt.Sprintf("/api/repos/%s/builds", repo.Slug)

	var all []models.Build
	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}

		var records []buildRecord
		if err := c.get(ctx, path, query, &records); err != nil {
			return nil, err
		}

		for i := range records {
			b, err := records[i].toBuild(repo)
			if err != nil {
				return nil, err
			}
			all = append(all, b)
		}

		if len(records) < perPage {
			break
		}
		if all[len(all)-1].CreatedAt.Before(oldest) {
			break
		}
	}
	return all, nil
}
