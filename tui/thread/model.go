package thread

import (
	"context"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

// DraftEditor hands a draft to an external editor. Implemented by
// editor.EnvEditor.
type DraftEditor interface {
	Cmd(draft, target string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

// Deps holds the collaborators of the dialog. Plain struct, not a DI container.
type Deps struct {
	Comments  app.CommentService
	Reactions app.ReactionService
	Uploader  app.ImageUploader // Optional; attachments fail without it
	Editor    DraftEditor       // Optional
	Bus       app.EventBus      // Optional; notices are dropped without it
}

// Config tunes paging and hover timing.
type Config struct {
	PageSize       int
	ReplyPageSize  int
	HoverHideDelay time.Duration
	CurrentUserID  string
}

// ClosedMsg is emitted when the dialog closes.
type ClosedMsg struct {
	Post domain.Post
}

// Model is the post-detail dialog: the post, its paged comment tree, the
// reply composer and reaction state. All of it lives for one session only.
type Model struct {
	deps Deps
	cfg  Config
	keys common.KeyMap

	spinner spinner.Model
	width   int
	height  int
	now     func() time.Time

	open    bool
	session string
	ctx     context.Context
	cancel  context.CancelFunc
	post    domain.Post

	cursors    Cursors
	tree       Tree
	expansions Expansions
	composer   Composer
	reactions  Reactions
	picker     Picker

	selected   int // Row index
	scrollLine int
	showHints  bool
}

// New creates a closed dialog.
func New(deps Deps, cfg Config) Model {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.ReplyPageSize <= 0 {
		cfg.ReplyPageSize = 5
	}
	if cfg.HoverHideDelay <= 0 {
		cfg.HoverHideDelay = DefaultHoverHideDelay
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		deps:       deps,
		cfg:        cfg,
		keys:       common.DefaultKeyMap(),
		spinner:    s,
		width:      80,
		height:     24,
		now:        time.Now,
		cursors:    newCursors(),
		tree:       newTree(),
		expansions: newExpansions(),
		composer:   newComposer(),
		reactions:  newReactions(),
		picker:     newPicker(cfg.HoverHideDelay),
	}
}

// IsOpen reports whether the dialog is showing a post.
func (m Model) IsOpen() bool { return m.open }

// Post returns the post with any local patches applied.
func (m Model) Post() domain.Post { return m.post }

// Session returns the active session token; empty while closed.
func (m Model) Session() string { return m.session }

// Comments returns the cached list of s.
func (m Model) Comments(s domain.Scope) []domain.Comment { return m.tree.Get(s) }

// HasMore reports whether s has unfetched pages.
func (m Model) HasMore(s domain.Scope) bool { return m.cursors.HasMore(s) }

// Loading reports whether a page of s is in flight.
func (m Model) Loading(s domain.Scope) bool { return m.cursors.Loading(s) }

// Expansion returns the reply visibility of a comment.
func (m Model) Expansion(commentID string) ExpansionState { return m.expansions.State(commentID) }

// Composer returns the reply slot.
func (m Model) Composer() Composer { return m.composer }

// Picker returns the reaction picker.
func (m Model) Picker() Picker { return m.picker }

// ReactionPhase returns the display phase of t.
func (m Model) ReactionPhase(t domain.Target) ReactionPhase {
	return m.reactions.Phase(t, m.currentReaction(t))
}

func (m Model) rootScope() domain.Scope { return domain.RootScope(m.post.ID) }

// currentReaction returns the reaction applied locally to t.
func (m Model) currentReaction(t domain.Target) domain.ReactionKind {
	if t.Kind == domain.TargetPost {
		if t.ID == m.post.ID {
			return m.post.MyReaction
		}
		return ""
	}
	c, _, ok := m.tree.Find(t.ID)
	if !ok {
		return ""
	}
	if c.MyReaction == "" && c.Reacted {
		return domain.DefaultReaction
	}
	return c.MyReaction
}
