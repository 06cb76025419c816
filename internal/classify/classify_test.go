package classify_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gnomegl/dronebar/internal/classify"
	"github.com/gnomegl/dronebar/internal/menu"
	"github.com/gnomegl/dronebar/internal/models"
)

const (
	recentWindow  = time.Hour
	displayWindow = 8 * time.Hour
)

func build(number int64, createdAgo time.Duration, status models.Status, now time.Time) models.Build {
	return models.Build{
		Repo:        models.Repository{Slug: "octocat/hello-world"},
		AuthorLogin: "octocat",
		Event:       models.EventPush,
		Target:      "master",
		Status:      status,
		Number:      number,
		CreatedAt:   now.Add(-createdAgo),
	}
}

func TestRecent(t *testing.T) {
	now := time.Now()

	t.Run("keeps builds inside the window", func(t *testing.T) {
		builds := []models.Build{
			build(1, 10*time.Second, models.StatusSuccess, now),
			build(2, 3601*time.Second, models.StatusSuccess, now),
		}
		recent := classify.Recent(builds, now, recentWindow)
		gt.V(t, len(recent)).Equal(1)
		gt.V(t, recent[0].Number).Equal(int64(1))
	})

	t.Run("boundary build belongs to recent", func(t *testing.T) {
		builds := []models.Build{build(1, recentWindow, models.StatusSuccess, now)}
		gt.V(t, len(classify.Recent(builds, now, recentWindow))).Equal(1)
	})

	t.Run("fetch order is preserved", func(t *testing.T) {
		builds := []models.Build{
			build(3, 5*time.Minute, models.StatusSuccess, now),
			build(1, 30*time.Minute, models.StatusSuccess, now),
			build(2, 10*time.Minute, models.StatusSuccess, now),
		}
		recent := classify.Recent(builds, now, recentWindow)
		gt.V(t, recent[0].Number).Equal(int64(3))
		gt.V(t, recent[1].Number).Equal(int64(1))
		gt.V(t, recent[2].Number).Equal(int64(2))
	})
}

func TestOlder(t *testing.T) {
	now := time.Now()

	t.Run("boundary at the recent edge is excluded", func(t *testing.T) {
		builds := []models.Build{build(1, recentWindow, models.StatusSuccess, now)}
		gt.V(t, len(classify.Older(builds, now, recentWindow, displayWindow))).Equal(0)
	})

	t.Run("boundary at the display edge is included", func(t *testing.T) {
		builds := []models.Build{build(1, displayWindow, models.StatusSuccess, now)}
		gt.V(t, len(classify.Older(builds, now, recentWindow, displayWindow))).Equal(1)
	})

	t.Run("build beyond the display window is excluded", func(t *testing.T) {
		builds := []models.Build{build(1, displayWindow+time.Second, models.StatusSuccess, now)}
		gt.V(t, len(classify.Older(builds, now, recentWindow, displayWindow))).Equal(0)
	})

	t.Run("sorted newest first", func(t *testing.T) {
		builds := []models.Build{
			build(1, 3*time.Hour, models.StatusSuccess, now),
			build(2, 2*time.Hour, models.StatusSuccess, now),
			build(3, 4*time.Hour, models.StatusSuccess, now),
		}
		older := classify.Older(builds, now, recentWindow, displayWindow)
		gt.V(t, len(older)).Equal(3)
		gt.V(t, older[0].Number).Equal(int64(2))
		gt.V(t, older[1].Number).Equal(int64(1))
		gt.V(t, older[2].Number).Equal(int64(3))
	})
}

func TestTitleColor(t *testing.T) {
	now := time.Now()

	t.Run("failure wins over pending across repositories", func(t *testing.T) {
		byRepo := models.BuildsByRepo{
			"octocat/a": {build(1, time.Minute, models.StatusFailure, now)},
			"octocat/b": {build(2, time.Minute, models.StatusPending, now)},
		}
		gt.V(t, classify.TitleColor(byRepo, now, recentWindow)).Equal(menu.Red)
	})

	t.Run("pending anywhere turns the title orange", func(t *testing.T) {
		byRepo := models.BuildsByRepo{
			"octocat/a": {
				build(2, time.Minute, models.StatusSuccess, now),
				build(1, 30*time.Minute, models.StatusRunning, now),
			},
		}
		gt.V(t, classify.TitleColor(byRepo, now, recentWindow)).Equal(menu.Orange)
	})

	t.Run("all green otherwise", func(t *testing.T) {
		byRepo := models.BuildsByRepo{
			"octocat/a": {build(1, time.Minute, models.StatusSuccess, now)},
		}
		gt.V(t, classify.TitleColor(byRepo, now, recentWindow)).Equal(menu.Green)
	})

	t.Run("old failures do not affect the color", func(t *testing.T) {
		byRepo := models.BuildsByRepo{
			"octocat/a": {
				build(2, time.Minute, models.StatusSuccess, now),
				build(1, 2*time.Hour, models.StatusFailure, now),
			},
		}
		gt.V(t, classify.TitleColor(byRepo, now, recentWindow)).Equal(menu.Green)
	})

	t.Run("no builds at all is green", func(t *testing.T) {
		gt.V(t, classify.TitleColor(models.BuildsByRepo{}, now, recentWindow)).Equal(menu.Green)
	})
}

func TestByAuthor(t *testing.T) {
	now := time.Now()

	a := build(1, time.Minute, models.StatusSuccess, now)
	a.AuthorLogin = "alice"
	b := build(2, time.Minute, models.StatusSuccess, now)
	b.AuthorLogin = "bob"
	a2 := build(3, time.Minute, models.StatusSuccess, now)
	a2.AuthorLogin = "alice"

	order, grouped := classify.ByAuthor([]models.Build{a, b, a2})
	gt.V(t, order).Equal([]string{"alice", "bob"})
	gt.V(t, len(grouped["alice"])).Equal(2)
	gt.V(t, len(grouped["bob"])).Equal(1)
}
