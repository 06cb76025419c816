package classify

import (
	"sort"
	"time"

	"github.com/gnomegl/dronebar/internal/menu"
	"github.com/gnomegl/dronebar/internal/models"
)

// Recent returns the builds created within the recent window. The
// fetch order is preserved on purpose: Drone lists builds newest
// first, so the first element is already the most recent one.
func Recent(builds []models.Build, now time.Time, recent time.Duration) []models.Build {
	cutoff := now.Add(-recent)

	var out []models.Build
	for _, b := range builds {
		if !b.CreatedAt.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// Older returns the builds in the half-open window
// [now-display, now-recent), newest first. A build created exactly at
// now-recent belongs to the recent window, not here.
func Older(builds []models.Build, now time.Time, recent, display time.Duration) []models.Build {
	lower := now.Add(-display)
	upper := now.Add(-recent)

	var out []models.Build
	for _, b := range builds {
		if !b.CreatedAt.Before(lower) && b.CreatedAt.Before(upper) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TitleColor derives the overall menu color from the recent builds of
// every repository. A failed most-recent build anywhere wins over any
// pending or running build, whatever order the repositories come in.
func TitleColor(byRepo models.BuildsByRepo, now time.Time, recent time.Duration) menu.Color {
	var pending bool
	for _, builds := range byRepo {
		rb := Recent(builds, now, recent)
		if len(rb) == 0 {
			continue
		}
		if rb[0].Status == models.StatusFailure {
			return menu.Red
		}
		for _, b := range rb {
			if b.Status.InProgress() {
				pending = true
			}
		}
	}
	if pending {
		return menu.Orange
	}
	return menu.Green
}

// ByAuthor groups builds by author login in first-seen order. Logins
// are already lower-cased on ingestion. Authors without builds never
// appear, so no group is empty.
func ByAuthor(builds []models.Build) ([]string, map[string][]models.Build) {
	grouped := make(map[string][]models.Build)
	var order []string
	for _, b := range builds {
		if _, ok := grouped[b.AuthorLogin]; !ok {
			order = append(order, b.AuthorLogin)
		}
		grouped[b.AuthorLogin] = append(grouped[b.AuthorLogin], b)
	}
	return order, grouped
}
