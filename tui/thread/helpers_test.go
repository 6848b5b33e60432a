package thread

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

var errNetwork = errors.New("network unreachable")

type stubComments struct {
	pages     map[domain.Scope][]app.CommentPage
	fetchErr  error
	calls     []app.CommentQuery
	created   []app.NewComment
	createErr error
}

func newStubComments() *stubComments {
	return &stubComments{pages: make(map[domain.Scope][]app.CommentPage)}
}

func (s *stubComments) FetchComments(_ context.Context, q app.CommentQuery) (app.CommentPage, error) {
	s.calls = append(s.calls, q)
	if s.fetchErr != nil {
		return app.CommentPage{}, s.fetchErr
	}
	pages := s.pages[q.Scope]
	if q.Page >= len(pages) {
		return app.CommentPage{TotalPages: len(pages)}, nil
	}
	return pages[q.Page], nil
}

func (s *stubComments) CreateComment(_ context.Context, c app.NewComment) (domain.Comment, error) {
	s.created = append(s.created, c)
	if s.createErr != nil {
		return domain.Comment{}, s.createErr
	}
	return domain.Comment{ID: fmt.Sprintf("new-%d", len(s.created)), PostID: c.PostID, ParentID: c.ParentID, Content: c.Content}, nil
}

func (s *stubComments) callsFor(scope domain.Scope) int {
	n := 0
	for _, q := range s.calls {
		if q.Scope == scope {
			n++
		}
	}
	return n
}

type reactionCall struct {
	op     string
	target string
	kind   domain.ReactionKind
}

type stubReactions struct {
	err       error
	statusErr error
	status    []domain.Reaction
	calls     []reactionCall
}

func (s *stubReactions) PostReactions(context.Context, string) ([]domain.Reaction, error) {
	return s.status, s.statusErr
}

func (s *stubReactions) React(_ context.Context, postID string, kind domain.ReactionKind) error {
	s.calls = append(s.calls, reactionCall{op: "react", target: postID, kind: kind})
	return s.err
}

func (s *stubReactions) Unreact(_ context.Context, postID string) error {
	s.calls = append(s.calls, reactionCall{op: "unreact", target: postID})
	return s.err
}

func (s *stubReactions) ToggleCommentReaction(_ context.Context, commentID string, kind domain.ReactionKind) error {
	s.calls = append(s.calls, reactionCall{op: "toggle", target: commentID, kind: kind})
	return s.err
}

type stubUploader struct {
	url   string
	err   error
	paths []string
}

func (s *stubUploader) Upload(_ context.Context, path string) (string, error) {
	s.paths = append(s.paths, path)
	return s.url, s.err
}

type recordingBus struct {
	events []app.Event
}

func (b *recordingBus) Subscribe(app.Topic, app.Handler) func() { return func() {} }
func (b *recordingBus) Publish(e app.Event)                     { b.events = append(b.events, e) }

func (b *recordingBus) notices(level app.NoticeLevel) []app.Notice {
	var out []app.Notice
	for _, e := range b.events {
		if n, ok := e.Payload.(app.Notice); ok && e.Topic == app.TopicNotice && n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

type fixture struct {
	comments  *stubComments
	reactions *stubReactions
	uploader  *stubUploader
	bus       *recordingBus
}

func newFixture() *fixture {
	return &fixture{
		comments:  newStubComments(),
		reactions: &stubReactions{},
		uploader:  &stubUploader{url: "https://cdn.example/img.png"},
		bus:       &recordingBus{},
	}
}

func (f *fixture) model() Model {
	m := New(Deps{
		Comments:  f.comments,
		Reactions: f.reactions,
		Uploader:  f.uploader,
		Bus:       f.bus,
	}, Config{PageSize: 10, ReplyPageSize: 5, HoverHideDelay: 300 * time.Millisecond, CurrentUserID: "me"})
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// run executes cmd and everything it spawns, feeding each result back into m.
// Timer messages are left for tests to deliver explicitly.
func run(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, cursor.BlinkMsg, pickerHideMsg:
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

// collect executes cmd without feeding results back.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func openPost(m Model, p domain.Post) Model {
	m, cmd := m.Open(p)
	return run(m, cmd)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(k))
		m = run(m, cmd)
	}
	return m
}

func comment(id string, replies int) domain.Comment {
	return domain.Comment{
		ID:         id,
		PostID:     "p1",
		Content:    "comment " + id,
		Author:     domain.Author{ID: "u-" + id, Name: "Author " + id},
		ReplyCount: replies,
	}
}

func reply(id, parent string) domain.Comment {
	c := comment(id, 0)
	c.ParentID = parent
	return c
}

func testPost() domain.Post {
	return domain.Post{ID: "p1", Content: "hello group", Author: domain.Author{ID: "u0", Name: "Poster"}, ReactionCount: 2, CommentCount: 3}
}

// selectComment moves the selection onto the row holding comment id.
func selectComment(m Model, id string) Model {
	for i, r := range m.rows() {
		if (r.kind == rowComment || r.kind == rowReply) && r.comment.ID == id {
			m.selected = i
			return m
		}
	}
	panic("comment not in rows: " + id)
}

// regionOf finds the first hit region of kind whose target/comment matches id.
func regionOf(f frame, kind hitKind, id string) (hitRegion, bool) {
	for _, r := range f.regions {
		if r.kind != kind {
			continue
		}
		if r.target.ID == id || r.commentID == id || r.scope.ID == id {
			return r, true
		}
	}
	return hitRegion{}, false
}
