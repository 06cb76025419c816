package models

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidConfig covers bad static configuration: a malformed
	// server URL, missing credentials, or window ordering violations.
	// It is always raised before any network activity.
	ErrInvalidConfig = goerr.New("invalid configuration")

	// ErrAuth is returned verbatim on a 401 from the Drone API. The
	// message is user-facing and rendered as the menu title.
	ErrAuth = goerr.New("Verify your Drone token")
)
