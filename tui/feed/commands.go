package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
)

func (m Model) fetchPosts(reqSeq, page int) tea.Cmd {
	service := m.service
	q := app.FeedQuery{Source: m.source, Page: page, Size: m.pageSize}
	log.Debug().Str("source", q.Source.Kind+":"+q.Source.ID).Int("page", page).Int("seq", reqSeq).Msg("fetching posts")
	return func() tea.Msg {
		res, err := service.FetchPosts(context.Background(), q)
		if err != nil {
			return PostsErrorMsg{ReqSeq: reqSeq, Page: page, Err: err}
		}
		return PostsLoadedMsg{ReqSeq: reqSeq, Page: page, Posts: res.Posts, TotalPages: res.TotalPages}
	}
}

// maybeStartPrefetch requests the next page once the cursor nears the end of
// the loaded posts.
func (m *Model) maybeStartPrefetch() tea.Cmd {
	if m.loading || m.loadingMore || len(m.posts) == 0 || !m.HasMore() {
		return nil
	}
	if m.cursor < len(m.posts)-prefetchTrigger {
		return nil
	}
	m.loadingMore = true
	m.reqSeq++
	return m.fetchPosts(m.reqSeq, m.page+1)
}
