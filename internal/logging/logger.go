package logging

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// Logs go to stderr: stdout carries the menu payload and must stay
// clean for the status-bar host.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	_ = Configure("warn")
}

// Default returns the default logger
func Default() *slog.Logger {
	return defaultLogger
}

// Configure sets up the default logger with the given level. Values
// tagged `masq:"secret"` (the Drone token) are redacted.
func Configure(logLevel string) error {
	filter := masq.New(
		masq.WithTag("secret"),
	)

	levelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	level, ok := levelMap[logLevel]
	if !ok {
		return goerr.New("invalid log level", goerr.V("value", logLevel))
	}

	handler := clog.New(
		clog.WithWriter(os.Stderr),
		clog.WithLevel(level),
		clog.WithColorMap(&clog.ColorMap{
			Level: map[slog.Level]*color.Color{
				slog.LevelDebug: color.New(color.FgGreen, color.Bold),
				slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
				slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
				slog.LevelError: color.New(color.FgRed, color.Bold),
			},
			LevelDefault: color.New(color.FgBlue, color.Bold),
			Time:         color.New(color.FgWhite),
			Message:      color.New(color.FgHiWhite),
			AttrKey:      color.New(color.FgHiCyan),
			AttrValue:    color.New(color.FgHiWhite),
		}),
		clog.WithReplaceAttr(filter),
	)

	defaultLogger = slog.New(handler)

	return nil
}
