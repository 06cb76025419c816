package models

import (
	"strings"
	"time"
)

// Status is a build outcome reported by Drone. The server may grow new
// values, so anything unrecognized maps to StatusOther.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusOther   Status = "other"
)

func ParseStatus(s string) Status {
	switch Status(strings.ToLower(s)) {
	case StatusSuccess:
		return StatusSuccess
	case StatusFailure:
		return StatusFailure
	case StatusPending:
		return StatusPending
	case StatusRunning:
		return StatusRunning
	default:
		return StatusOther
	}
}

// InProgress reports whether the build has not finished yet.
func (s Status) InProgress() bool {
	return s == StatusPending || s == StatusRunning
}

// Event is the trigger kind of a build.
type Event string

const (
	EventPush        Event = "push"
	EventPullRequest Event = "pull_request"
	EventOther       Event = "other"
)

func ParseEvent(s string) Event {
	switch Event(strings.ToLower(s)) {
	case EventPush:
		return EventPush
	case EventPullRequest:
		return EventPullRequest
	default:
		return EventOther
	}
}

// Repository identifies a Drone repository by its owner/name slug.
type Repository struct {
	Slug string
}

// Build is one CI run. AuthorLogin and Status are normalized to lower
// case on ingestion; CreatedAt is the sole ordering and windowing key
// and defaults to the unix epoch when the server omits it.
type Build struct {
	Repo        Repository
	AuthorLogin string
	Event       Event
	Source      string
	Target      string
	Status      Status
	Number      int64
	Title       string
	Message     string
	Link        string
	StartedAt   time.Time
	CreatedAt   time.Time
}

// BuildsByRepo maps a repository slug to its builds in fetch order.
type BuildsByRepo map[string][]Build
