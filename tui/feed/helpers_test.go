package feed

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

type stubFeed struct {
	pages []app.PostPage
	err   error
	calls []app.FeedQuery
}

func (s *stubFeed) FetchPosts(_ context.Context, q app.FeedQuery) (app.PostPage, error) {
	s.calls = append(s.calls, q)
	if s.err != nil {
		return app.PostPage{}, s.err
	}
	if q.Page >= len(s.pages) {
		return app.PostPage{TotalPages: len(s.pages)}, nil
	}
	return s.pages[q.Page], nil
}

var testSource = app.FeedSource{Kind: "group", ID: "g1"}

func makePosts(prefix string, n int) []domain.Post {
	out := make([]domain.Post, n)
	for i := range out {
		out[i] = domain.Post{
			ID:      fmt.Sprintf("%s%d", prefix, i),
			Author:  domain.Author{ID: "u", Name: "Author"},
			Content: "post body",
		}
	}
	return out
}

// drive runs cmd and feeds every resulting message back, ignoring spinner ticks.
func drive(m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	var emitted []tea.Msg
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
		case PostsLoadedMsg, PostsErrorMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		default:
			emitted = append(emitted, msg)
		}
	}
	return m, emitted
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
