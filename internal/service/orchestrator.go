package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/gnomegl/dronebar/internal/classify"
	"github.com/gnomegl/dronebar/internal/config"
	"github.com/gnomegl/dronebar/internal/drone"
	"github.com/gnomegl/dronebar/internal/logging"
	"github.com/gnomegl/dronebar/internal/menu"
	"github.com/gnomegl/dronebar/internal/models"
)

// Orchestrator drives one run: list repositories, fetch builds,
// classify, render. Everything is sequential; the first error aborts
// the whole run and the caller renders it as the menu title.
type Orchestrator struct {
	cfg    *config.Config
	client *drone.Client
	menu   *menu.Menu
}

func New(cfg *config.Config, client *drone.Client, m *menu.Menu) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		client: client,
		menu:   m,
	}
}

func (o *Orchestrator) Run(ctx context.Context) error {
	log := logging.From(ctx)
	now := time.Now()

	repos, err := o.client.ListRepositories(ctx)
	if err != nil {
		return err
	}

	var selected []models.Repository
	for _, repo := range repos {
		if o.cfg.RepoAllowed(repo.Slug) {
			selected = append(selected, repo)
		}
	}
	log.Debug("listed repositories", slog.Int("total", len(repos)), slog.Int("selected", len(selected)))

	bar := newProgress(len(selected))

	oldest := now.Add(-o.cfg.DisplayInterval)
	byRepo := models.BuildsByRepo{}
	var order []string

	for _, repo := range selected {
		builds, err := o.client.ListBuilds(ctx, repo, oldest)
		if err != nil {
			return err
		}

		for _, b := range builds {
			if !o.cfg.AuthorAllowed(b.AuthorLogin) {
				continue
			}
			if _, ok := menu.DisplayTitle(b, o.cfg.BaseBranch); !ok {
				continue
			}
			byRepo[repo.Slug] = append(byRepo[repo.Slug], b)
		}
		order = append(order, repo.Slug)

		log.Debug("fetched builds",
			slog.String("repo", repo.Slug),
			slog.Int("fetched", len(builds)),
			slog.Int("kept", len(byRepo[repo.Slug])),
		)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	o.menu.Title("Drone", classify.TitleColor(byRepo, now, o.cfg.RecentInterval))

	for _, slug := range order {
		builds := byRepo[slug]
		recent := classify.Recent(builds, now, o.cfg.RecentInterval)
		older := classify.Older(builds, now, o.cfg.RecentInterval, o.cfg.DisplayInterval)
		if len(recent) == 0 && len(older) == 0 {
			continue
		}

		o.menu.Add(menu.Line{Text: slug})

		authors, grouped := classify.ByAuthor(recent)
		for _, author := range authors {
			o.menu.Add(menu.Line{Text: author})
			for _, b := range grouped[author] {
				o.menu.Build(b, o.cfg.BaseBranch)
			}
		}

		if len(older) > 0 {
			o.menu.Add(menu.Line{Text: "Older builds"})
			for _, b := range older {
				o.menu.Build(b, o.cfg.BaseBranch)
			}
		}
	}

	o.menu.Print()
	return nil
}

// newProgress shows fetch progress on stderr, and only when a human
// is watching. The status-bar host must never see it on stdout.
func newProgress(n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(term.IsTerminal(int(os.Stderr.Fd()))),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Fetching builds"),
	)
}
