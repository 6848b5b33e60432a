package thread

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

type stubEditor struct {
	content string
	readErr error
}

func (e stubEditor) Cmd(string, string) (*exec.Cmd, string, error) {
	return exec.Command("true"), "/tmp/draft.md", nil
}

func (e stubEditor) ReadContent(string) (string, error) { return e.content, e.readErr }

func threadWith(f *fixture, top ...domain.Comment) {
	f.comments.pages[domain.RootScope("p1")] = []app.CommentPage{{Comments: top, TotalPages: 1}}
}

func TestComposer_SwitchingTargetDiscardsDraft(t *testing.T) {
	f := newFixture()
	threadWith(f, comment("a", 0), comment("b", 0))
	m := openPost(f.model(), testPost())

	m = selectComment(m, "a")
	m = press(m, "r", "draft for a")
	require.True(t, m.Composer().IsOpenFor(domain.RepliesScope("a")))
	require.Equal(t, "draft for a", m.Composer().Draft())

	// Keys belong to the composer now; switch with the pointer.
	r, ok := regionOf(m.layout(), hitReply, "b")
	require.True(t, ok)
	m, _ = m.Update(click(r.x0, r.line-m.scrollLine))

	require.True(t, m.Composer().IsOpenFor(domain.RepliesScope("b")))
	require.False(t, m.Composer().IsOpenFor(domain.RepliesScope("a")))
	require.Empty(t, m.Composer().Draft())

	r, _ = regionOf(m.layout(), hitReply, "a")
	m, _ = m.Update(click(r.x0, r.line-m.scrollLine))
	require.True(t, m.Composer().IsOpenFor(domain.RepliesScope("a")))
	require.Empty(t, m.Composer().Draft(), "a's old draft is gone")
}

func TestComposer_SameTargetToggles(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())
	m = press(m, "c")
	require.True(t, m.Composer().IsOpenFor(domain.RootScope("p1")))

	r, ok := regionOf(m.layout(), hitReply, "p1")
	require.True(t, ok)
	m, _ = m.Update(click(r.x0, r.line-m.scrollLine))
	require.False(t, m.Composer().Active())
}

func TestComposer_ReplyToReplyTargetsParentScope(t *testing.T) {
	f := newFixture()
	threadWith(f, comment("a", 1))
	f.comments.pages[domain.RepliesScope("a")] = []app.CommentPage{{Comments: []domain.Comment{reply("a1", "a")}, TotalPages: 1}}
	m := openPost(f.model(), testPost())

	m = selectComment(m, "a")
	m = press(m, "enter")
	m = selectComment(m, "a1")
	m = press(m, "r")
	require.True(t, m.Composer().IsOpenFor(domain.RepliesScope("a")))
	require.Contains(t, m.View(), "Replying to Author a")
}

func TestSubmitReply_RefetchesAndExpandsParent(t *testing.T) {
	f := newFixture()
	threadWith(f, comment("a", 1))
	f.comments.pages[domain.RepliesScope("a")] = []app.CommentPage{
		{Comments: []domain.Comment{reply("a1", "a"), reply("new-1", "a")}, TotalPages: 1},
	}
	m := openPost(f.model(), testPost())
	m = selectComment(m, "a")

	m = press(m, "r", "nice point", "ctrl+s")

	require.Equal(t, []app.NewComment{{PostID: "p1", ParentID: "a", Content: "nice point"}}, f.comments.created)
	require.False(t, m.Composer().Active(), "slot closes on success")
	require.Equal(t, Expanded, m.Expansion("a"))
	require.Equal(t, []string{"a1", "new-1"}, ids(m.Comments(domain.RepliesScope("a"))))
	require.Equal(t, 2, m.Comments(domain.RootScope("p1"))[0].ReplyCount)
	require.Equal(t, 4, m.Post().CommentCount)

	last := f.comments.calls[len(f.comments.calls)-1]
	require.Equal(t, app.CommentQuery{Scope: domain.RepliesScope("a"), Page: 0, Size: 5}, last)
	info := f.bus.notices(app.NoticeInfo)
	require.Len(t, info, 1)
	require.Equal(t, "Reply posted", info[0].Text)
}

func TestSubmitComment_RefetchesRootPageZero(t *testing.T) {
	f := newFixture()
	threadWith(f, comment("a", 0))
	m := openPost(f.model(), testPost())

	m = press(m, "c", "first!", "ctrl+s")
	require.Equal(t, []app.NewComment{{PostID: "p1", Content: "first!"}}, f.comments.created)
	require.Equal(t, 2, f.comments.callsFor(domain.RootScope("p1")))
	require.Equal(t, app.CommentQuery{Scope: domain.RootScope("p1"), Page: 0, Size: 10, TopLevelOnly: true}, f.comments.calls[1])
	require.False(t, m.Composer().Active())
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	f := newFixture()
	f.comments.createErr = errNetwork
	m := openPost(f.model(), testPost())

	m = press(m, "c", "keep me", "ctrl+s")
	require.True(t, m.Composer().Active())
	require.False(t, m.Composer().Submitting())
	require.Equal(t, "keep me", m.Composer().Draft())
	require.Equal(t, 3, m.Post().CommentCount)
	require.Len(t, f.bus.notices(app.NoticeError), 1)

	f.comments.createErr = nil
	m = press(m, "ctrl+s")
	require.False(t, m.Composer().Active())
	require.Len(t, f.comments.created, 2)
}

func TestSubmit_EmptyDraftIsNoop(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())
	m = press(m, "c", "   ", "ctrl+s")
	require.Empty(t, f.comments.created)
	require.True(t, m.Composer().Active())
}

func TestSubmit_UploadsImageFirst(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())

	m = press(m, "c", "look")
	m, _ = m.Update(keyMsg("ctrl+o"))
	m = press(m, "/tmp/cat.png", "enter")
	require.Equal(t, "/tmp/cat.png", m.Composer().Image())
	require.Equal(t, "look", m.Composer().Draft(), "path input does not leak into the draft")

	m = press(m, "ctrl+s")
	require.Equal(t, []string{"/tmp/cat.png"}, f.uploader.paths)
	require.Len(t, f.comments.created, 1)
	require.Equal(t, "https://cdn.example/img.png", f.comments.created[0].ImageURL)
	require.False(t, m.Composer().Active())
}

func TestSubmit_UploadFailureSkipsCreate(t *testing.T) {
	f := newFixture()
	f.uploader.err = errors.New("too large")
	m := openPost(f.model(), testPost())

	m = press(m, "c", "look")
	m, _ = m.Update(keyMsg("ctrl+o"))
	m = press(m, "/tmp/cat.png", "enter", "ctrl+s")
	require.Empty(t, f.comments.created)
	require.True(t, m.Composer().Active())
	require.Equal(t, "/tmp/cat.png", m.Composer().Image())
	require.Len(t, f.bus.notices(app.NoticeError), 1)
}

func TestSubmit_ResultAfterSwitchLeavesNewSlotAlone(t *testing.T) {
	f := newFixture()
	threadWith(f, comment("a", 0))
	m := openPost(f.model(), testPost())

	m = press(m, "c", "hello")
	m, cmd := m.Update(keyMsg("ctrl+s"))
	require.True(t, m.Composer().Submitting())

	r, _ := regionOf(m.layout(), hitReply, "a")
	m, _ = m.Update(click(r.x0, r.line-m.scrollLine))
	m = press(m, "draft")
	m = run(m, cmd)

	require.True(t, m.Composer().IsOpenFor(domain.RepliesScope("a")))
	require.Equal(t, "draft", m.Composer().Draft())
	require.Equal(t, 4, m.Post().CommentCount, "the comment was still created")
}

func TestComposer_EscClosesWhileSubmitting(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())

	m = press(m, "c", "hello")
	m, cmd := m.Update(keyMsg("ctrl+s"))
	require.True(t, m.Composer().Submitting())

	m, _ = m.Update(keyMsg("esc"))
	require.False(t, m.Composer().Active())
	require.True(t, m.IsOpen())

	m = run(m, cmd)
	require.False(t, m.Composer().Active(), "late result does not reopen the slot")
	require.Len(t, f.comments.created, 1)
	require.Equal(t, 4, m.Post().CommentCount)
}

func TestEditor_ReturnedDraftReplacesText(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())
	m.deps.Editor = stubEditor{content: "from vim"}

	m = press(m, "c", "short")
	m, _ = m.Update(editorFinishedMsg{sessioned: sessioned{m.Session()}, slotGen: m.composer.gen, tmpPath: "/tmp/draft.md"})
	require.Equal(t, "from vim", m.Composer().Draft())
}

func TestEditor_StaleSlotIgnored(t *testing.T) {
	f := newFixture()
	m := openPost(f.model(), testPost())
	m.deps.Editor = stubEditor{content: "from vim"}

	m = press(m, "c", "short")
	gen := m.composer.gen
	m = press(m, "esc", "c")
	m, _ = m.Update(editorFinishedMsg{sessioned: sessioned{m.Session()}, slotGen: gen, tmpPath: "/tmp/draft.md"})
	require.Empty(t, m.Composer().Draft())
}
