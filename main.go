package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/infra/api"
	"github.com/CrestNiraj12/feedthread/infra/auth"
	"github.com/CrestNiraj12/feedthread/infra/bus"
	"github.com/CrestNiraj12/feedthread/infra/config"
	"github.com/CrestNiraj12/feedthread/infra/editor"
	"github.com/CrestNiraj12/feedthread/infra/logging"
	"github.com/CrestNiraj12/feedthread/tui"
	"github.com/CrestNiraj12/feedthread/tui/common"
	"github.com/CrestNiraj12/feedthread/tui/thread"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func newCLIApp() *cli.App {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	cli.VersionPrinter = func(ctx *cli.Context) {
		fmt.Fprintf(ctx.App.Writer, "feedthread %s\ncommit: %s\nbuilt: %s\n", v, c, d)
	}
	return &cli.App{
		Name:    "feedthread",
		Usage:   "Browse a group or page feed and its comment threads in the terminal",
		Version: v,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML config file (default ~/.config/feedthread/config.toml)",
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Feed to show: group:<id> or page:<id>",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override log.level (debug, info, warn, error)",
			},
		},
		Action: run,
	}
}

// resolveSource picks the feed: the flag wins, then config, then the source
// remembered from the last run.
func resolveSource(flag, configured, remembered string) (app.FeedSource, error) {
	for _, s := range []string{flag, configured, remembered} {
		if strings.TrimSpace(s) != "" {
			return config.ParseFeedSource(s)
		}
	}
	return app.FeedSource{}, errors.New("no feed source: pass --source group:<id> or set feed.source")
}

func run(c *cli.Context) error {
	// 1. Load config from file and environment.
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level := cfg.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	closeLog, err := logging.Setup(cfg.Log.Path, level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closeLog()

	uiState, err := config.LoadUIState(cfg.UI.StatePath)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring ui state")
	}
	source, err := resolveSource(c.String("source"), cfg.Feed.Source, uiState.FeedSource)
	if err != nil {
		return err
	}

	// 2. Build infrastructure.
	tokens := auth.ChainTokenProvider{
		auth.NewEnvTokenProvider(config.EnvPrefix + "TOKEN"),
		auth.NewFileTokenProvider(cfg.API.TokenPath),
	}
	client := api.NewClient(cfg.API.BaseURL, tokens, api.WithRateLimit(cfg.API.RatePerSecond, cfg.API.Burst))

	// 3. Build services (concrete types satisfy app.* interfaces).
	// The current user only decorates the UI, so a failure is not fatal.
	var me domain.User
	ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	me, err = api.NewAccountService(client).CurrentUser(ctx)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("could not resolve current user")
	}

	events := bus.New()
	root := tui.NewApp(tui.Deps{
		Feed:         api.NewFeedService(client, me.ID),
		Source:       source,
		FeedPageSize: cfg.Feed.PageSize,
		Thread: thread.Deps{
			Comments:  api.NewCommentService(client),
			Reactions: api.NewReactionService(client),
			Uploader:  api.NewImageUploader(client),
			Editor:    editor.NewEnvEditor(),
			Bus:       events,
		},
		ThreadConfig: thread.Config{
			PageSize:       cfg.Thread.PageSize,
			ReplyPageSize:  cfg.Thread.ReplyPageSize,
			HoverHideDelay: cfg.Thread.HoverHideDelay,
			CurrentUserID:  me.ID,
		},
		StatePath: cfg.UI.StatePath,
	})

	// 4. Bridge bus events into the program.
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseAllMotion())
	for _, unsubscribe := range subscribe(events, p.Send) {
		defer unsubscribe()
	}

	// 5. Run.
	log.Info().Str("source", source.Kind+":"+source.ID).Str("user", me.ID).Msg("starting")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("feedthread: %w", err)
	}
	return nil
}

// subscribe forwards notices and post updates to send and mirrors notices
// into the log.
func subscribe(events app.EventBus, send func(tea.Msg)) []func() {
	return []func(){
		events.Subscribe(app.TopicNotice, func(e app.Event) {
			if n, ok := e.Payload.(app.Notice); ok {
				send(common.NoticeMsg{Notice: n})
			}
		}),
		events.Subscribe(app.TopicPostChanged, func(e app.Event) {
			if p, ok := e.Payload.(domain.Post); ok {
				send(common.PostChangedMsg{Post: p})
			}
		}),
		events.Subscribe(app.TopicNotice, func(e app.Event) {
			n, ok := e.Payload.(app.Notice)
			if !ok {
				return
			}
			ev := log.Info()
			if n.Level == app.NoticeError {
				ev = log.Error().Err(n.Err)
			}
			ev.Str("topic", string(e.Topic)).Msg(n.Text)
		}),
	}
}

func main() {
	if err := newCLIApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
