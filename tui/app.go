package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/infra/config"
	"github.com/CrestNiraj12/feedthread/tui/common"
	"github.com/CrestNiraj12/feedthread/tui/feed"
	"github.com/CrestNiraj12/feedthread/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed         app.FeedService
	Source       app.FeedSource
	FeedPageSize int
	Thread       thread.Deps
	ThreadConfig thread.Config
	StatePath    string // Empty disables UI state persistence
}

// App is the root Bubble Tea model. It shows the feed and, on top of it, the
// comment dialog of one post.
type App struct {
	deps   Deps
	feed   feed.Model
	thread thread.Model
	keys   common.KeyMap
	status string // Transient notice, e.g. "Comment posted"
	level  app.NoticeLevel
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		feed:   feed.New(deps.Feed, deps.Source, deps.FeedPageSize),
		thread: thread.New(deps.Thread, deps.ThreadConfig),
		keys:   common.DefaultKeyMap(),
	}
}

// Init starts loading the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// ThreadOpen reports whether the comment dialog is showing.
func (a App) ThreadOpen() bool { return a.thread.IsOpen() }

// Status returns the current notice line.
func (a App) Status() string { return a.status }

// Update routes messages between the feed and the dialog.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		var fcmd, tcmd tea.Cmd
		a.feed, fcmd = a.feed.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 1})
		a.thread, tcmd = a.thread.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 1})
		return a, tea.Batch(fcmd, tcmd)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if !a.thread.IsOpen() && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		a.status = ""

	case spinner.TickMsg:
		var fcmd, tcmd tea.Cmd
		a.feed, fcmd = a.feed.Update(msg)
		a.thread, tcmd = a.thread.Update(msg)
		return a, tea.Batch(fcmd, tcmd)

	case common.NoticeMsg:
		a.status = msg.Notice.Text
		a.level = msg.Notice.Level
		return a, nil

	case common.PostChangedMsg:
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case feed.PostsLoadedMsg, feed.PostsErrorMsg:
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case feed.OpenThreadMsg:
		a.status = ""
		a.thread, cmd = a.thread.Open(msg.Post)
		return a, tea.Batch(cmd, a.saveState(msg.Post.ID))

	case thread.ClosedMsg:
		a.feed, cmd = a.feed.Update(common.PostChangedMsg{Post: msg.Post})
		return a, cmd
	}

	if a.thread.IsOpen() {
		a.thread, cmd = a.thread.Update(msg)
		return a, cmd
	}
	a.feed, cmd = a.feed.Update(msg)
	return a, cmd
}

// saveState remembers the feed source and the last opened post.
func (a App) saveState(postID string) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	st := config.UIState{FeedSource: a.deps.Source.Kind + ":" + a.deps.Source.ID, LastPostID: postID}
	return func() tea.Msg {
		if err := config.SaveUIState(path, st); err != nil {
			log.Warn().Err(err).Msg("saving ui state")
		}
		return nil
	}
}

// View renders the active view with the notice line below it.
func (a App) View() string {
	s := a.feed.View()
	if a.thread.IsOpen() {
		s = a.thread.View()
	}

	line := ""
	switch {
	case a.status == "":
	case a.level == app.NoticeError:
		line = common.ErrorStyle.Render(" " + a.status)
	default:
		line = common.SuccessStyle.Render(" " + a.status)
	}
	return s + "\n" + line
}
