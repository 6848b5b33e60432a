package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

func TestInit_LoadsFirstPage(t *testing.T) {
	svc := &stubFeed{pages: []app.PostPage{{Posts: makePosts("a", 3), TotalPages: 1}}}
	m := New(svc, testSource, 10)
	require.True(t, m.Loading())

	m, emitted := drive(m, m.Init())
	require.False(t, m.Loading())
	require.Len(t, m.Posts(), 3)
	require.False(t, m.HasMore())
	require.Equal(t, []app.FeedQuery{{Source: testSource, Page: 0, Size: 10}}, svc.calls)
	for _, msg := range emitted {
		_, ok := msg.(spinner.TickMsg)
		require.True(t, ok, "unexpected %T", msg)
	}
}

func TestUpdate_StalePageIgnoredByReqSeq(t *testing.T) {
	m := New(&stubFeed{}, testSource, 10)
	m.posts = makePosts("old", 1)
	m.reqSeq = 5

	updated, cmd := m.Update(PostsLoadedMsg{ReqSeq: 4, Posts: makePosts("new", 2), TotalPages: 1})
	require.Nil(t, cmd)
	require.Equal(t, "old0", updated.Posts()[0].ID)
	require.True(t, updated.Loading(), "stale response should not clear loading")

	updated, _ = updated.Update(PostsErrorMsg{ReqSeq: 4, Err: errors.New("boom")})
	require.NoError(t, updated.Err())
}

func TestPrefetch_NearEndRequestsNextPage(t *testing.T) {
	svc := &stubFeed{pages: []app.PostPage{
		{Posts: makePosts("a", 5), TotalPages: 2},
		{Posts: makePosts("b", 2), TotalPages: 2},
	}}
	m := New(svc, testSource, 5)
	m, _ = drive(m, m.Init())

	m, cmd := m.Update(keyMsg("down"))
	require.Nil(t, cmd, "far from the end")

	m, cmd = m.Update(keyMsg("down"))
	require.NotNil(t, cmd)
	m, _ = drive(m, cmd)

	require.Len(t, m.Posts(), 7)
	require.Equal(t, 1, svc.calls[1].Page)
	require.False(t, m.HasMore())

	m, cmd = m.Update(keyMsg("G"))
	require.Nil(t, cmd, "no page past the last")
	require.Len(t, svc.calls, 2)
}

func TestPrefetch_DropsDuplicates(t *testing.T) {
	first := makePosts("a", 3)
	svc := &stubFeed{pages: []app.PostPage{
		{Posts: first, TotalPages: 2},
		{Posts: append([]domain.Post{first[2]}, makePosts("b", 1)...), TotalPages: 2},
	}}
	m := New(svc, testSource, 3)
	m, _ = drive(m, m.Init())
	m, cmd := m.Update(keyMsg("down"))
	m, _ = drive(m, cmd)

	var ids []string
	for _, p := range m.Posts() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"a0", "a1", "a2", "b0"}, ids)
}

func TestRefresh_ReplacesList(t *testing.T) {
	svc := &stubFeed{pages: []app.PostPage{{Posts: makePosts("a", 2), TotalPages: 1}}}
	m := New(svc, testSource, 10)
	m, _ = drive(m, m.Init())

	svc.pages[0] = app.PostPage{Posts: makePosts("z", 1), TotalPages: 1}
	m, cmd := m.Update(keyMsg("R"))
	m, _ = drive(m, cmd)
	require.Len(t, m.Posts(), 1)
	require.Equal(t, "z0", m.Posts()[0].ID)
	require.Zero(t, m.Cursor())
}

func TestFetchError_ShownUntilRetry(t *testing.T) {
	svc := &stubFeed{err: errors.New("unreachable")}
	m := New(svc, testSource, 10)
	m, _ = drive(m, m.Init())
	require.Error(t, m.Err())
	require.Contains(t, m.View(), "unreachable")

	svc.err = nil
	svc.pages = []app.PostPage{{Posts: makePosts("a", 1), TotalPages: 1}}
	m, cmd := m.Update(keyMsg("R"))
	m, _ = drive(m, cmd)
	require.NoError(t, m.Err())
	require.Len(t, m.Posts(), 1)
}

func TestEnter_OpensThread(t *testing.T) {
	svc := &stubFeed{pages: []app.PostPage{{Posts: makePosts("a", 2), TotalPages: 1}}}
	m := New(svc, testSource, 10)
	m, _ = drive(m, m.Init())
	m, _ = m.Update(keyMsg("down"))

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(OpenThreadMsg)
	require.True(t, ok)
	require.Equal(t, "a1", msg.Post.ID)
}

func TestPostChanged_PatchesListedPost(t *testing.T) {
	svc := &stubFeed{pages: []app.PostPage{{Posts: makePosts("a", 2), TotalPages: 1}}}
	m := New(svc, testSource, 10)
	m, _ = drive(m, m.Init())

	changed := m.Posts()[1]
	changed.ReactionCount = 7
	changed.MyReaction = domain.ReactionLove
	m, _ = m.Update(common.PostChangedMsg{Post: changed})
	require.Equal(t, 7, m.Posts()[1].ReactionCount)
	require.Equal(t, domain.ReactionLove, m.Posts()[1].MyReaction)

	m, _ = m.Update(common.PostChangedMsg{Post: domain.Post{ID: "elsewhere"}})
	require.Len(t, m.Posts(), 2)
}

func TestView_RendersCardsAndStatus(t *testing.T) {
	posts := makePosts("a", 1)
	posts[0].Content = strings.Repeat("word ", 60)
	posts[0].CommentCount = 12
	svc := &stubFeed{pages: []app.PostPage{{Posts: posts, TotalPages: 1}}}
	m := New(svc, testSource, 10)
	m, _ = drive(m, m.Init())

	out := m.View()
	require.Contains(t, out, "group g1")
	require.Contains(t, out, "Author")
	require.Contains(t, out, "💬 12")
	require.Contains(t, out, "…", "long content is cut to two lines")
}
