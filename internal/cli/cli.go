package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/gnomegl/dronebar/internal/config"
	"github.com/gnomegl/dronebar/internal/drone"
	"github.com/gnomegl/dronebar/internal/logging"
	"github.com/gnomegl/dronebar/internal/menu"
	"github.com/gnomegl/dronebar/internal/service"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options]

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func NewApp() *cli.App {
	cli.AppHelpTemplate = helpTemplate

	return &cli.App{
		Name:  "dronebar",
		Usage: "Render Drone CI build status as a status-bar menu",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Drone server base URL",
				EnvVars: []string{"DRONE_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Drone API token",
				EnvVars: []string{"DRONE_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "authors",
				Aliases: []string{"a"},
				Usage:   "Comma-separated author logins to include (empty = all)",
				EnvVars: []string{"DRONEBAR_AUTHORS"},
			},
			&cli.StringFlag{
				Name:    "repos",
				Aliases: []string{"r"},
				Usage:   "Comma-separated repository slugs to include (empty = all)",
				EnvVars: []string{"DRONEBAR_REPOS"},
			},
			&cli.StringFlag{
				Name:    "base-branch",
				Aliases: []string{"b"},
				Usage:   "Base branch for push builds",
				EnvVars: []string{"DRONEBAR_BASE_BRANCH"},
				Value:   "master",
			},
			&cli.Int64Flag{
				Name:    "recent-interval",
				Usage:   "Builds newer than this many seconds are shown prominently",
				EnvVars: []string{"DRONEBAR_RECENT_INTERVAL"},
				Value:   3600,
			},
			&cli.Int64Flag{
				Name:    "display-interval",
				Usage:   "Builds older than this many seconds are not shown at all",
				EnvVars: []string{"DRONEBAR_DISPLAY_INTERVAL"},
				Value:   28800,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level [debug|info|warn|error]",
				EnvVars: []string{"DRONEBAR_LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Before: func(c *cli.Context) error {
			// .env in the working directory is optional
			_ = godotenv.Load()
			return logging.Configure(c.String("log-level"))
		},
		Action: runApp,
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}

func runApp(c *cli.Context) error {
	cfg := config.ParseConfig(c)
	m := menu.New(os.Stdout)

	// the token is redacted by the masq filter
	logging.From(c.Context).Debug("configuration loaded", slog.Any("config", cfg))

	if err := cfg.Validate(); err != nil {
		m.Error(err.Error())
		return cli.Exit("", 1)
	}

	client, err := drone.New(cfg.ServerURL, cfg.Token)
	if err != nil {
		m.Error(err.Error())
		return cli.Exit("", 1)
	}

	if err := service.New(cfg, client, m).Run(c.Context); err != nil {
		logging.From(c.Context).Error("run failed", "error", err)
		m.Error(err.Error())
		return cli.Exit("", 1)
	}
	return nil
}
