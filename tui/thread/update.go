package thread

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

// Update handles messages for the dialog. Continuations from a previous
// session are dropped before they can touch state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.composer.setWidth(msg.Width)
		if !m.open {
			return m, nil
		}
		m.clampScroll()
		return m, m.maybeAdvanceRoot()

	case spinner.TickMsg:
		if !m.open {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.open {
		return m, nil
	}
	if sm, ok := msg.(sessionMsg); ok && sm.sessionID() != m.session {
		log.Debug().Str("session", sm.sessionID()).Msgf("dropping stale %T", msg)
		return m, nil
	}

	switch msg := msg.(type) {
	case pageResultMsg:
		return m.handlePageResult(msg)
	case reactionStatusMsg:
		return m.handleReactionStatus(msg)
	case reactionResultMsg:
		return m.handleReactionResult(msg)
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case pickerHideMsg:
		m.picker.Expire(msg.gen)
		return m, nil
	case editorFinishedMsg:
		return m.handleEditorFinished(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.composer.Active() {
		var cmd tea.Cmd
		m.composer.input, cmd = m.composer.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePageResult(msg pageResultMsg) (Model, tea.Cmd) {
	s := msg.scope
	if msg.err != nil {
		if !m.cursors.Fail(s, msg.gen) {
			return m, nil
		}
		if !s.IsRoot() {
			m.expansions.Failed(s.ID)
		}
		return m, m.notify(app.NoticeError, "Could not load comments", msg.err)
	}

	if !m.cursors.Complete(s, msg.page, msg.gen, msg.totalPages) {
		log.Debug().Str("scope", s.Key()).Int("page", msg.page).Int("gen", msg.gen).Msg("dropping superseded page")
		return m, nil
	}
	m.tree.MergePage(s, msg.comments, msg.page)
	log.Debug().
		Str("scope", s.Key()).
		Int("page", msg.page).
		Int("count", len(msg.comments)).
		Int("total_pages", msg.totalPages).
		Msg("comments merged")

	if !s.IsRoot() {
		m.expansions.Loaded(s.ID)
	}
	m.clampSelection()
	m.clampScroll()
	return m, m.maybeAdvanceRoot()
}

func (m Model) handleReactionStatus(msg reactionStatusMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Str("post", msg.postID).Msg("reaction status unavailable")
		return m, nil
	}
	t := domain.PostTarget(msg.postID)
	if msg.postID != m.post.ID || m.reactions.Touched(t) {
		return m, nil
	}
	m.post.MyReaction = msg.kind
	return m, nil
}

func (m Model) handleReactionResult(msg reactionResultMsg) (Model, tea.Cmd) {
	mut, ok := m.reactions.Resolve(msg.target, msg.seq)
	if !ok {
		return m, nil
	}
	if msg.err != nil {
		m.rollback(mut)
		return m, m.notify(app.NoticeError, "Reaction failed", msg.err)
	}
	if mut.Target.Kind == domain.TargetPost {
		return m, m.publishPost()
	}
	return m, nil
}

func (m Model) handleSubmitResult(msg submitResultMsg) (Model, tea.Cmd) {
	m.composer.SubmitDone(msg.slotGen, msg.err)
	if msg.err != nil {
		return m, m.notify(app.NoticeError, "Could not post comment", msg.err)
	}

	m.post.CommentCount++
	var cmds []tea.Cmd
	if msg.target.IsRoot() {
		cmds = append(cmds, m.fetchPage(msg.target, 0))
	} else {
		parentID := msg.target.ID
		if _, s, ok := m.tree.Find(parentID); ok {
			m.tree.Patch(s, parentID, func(c *domain.Comment) { c.ReplyCount++ })
		}
		cmds = append(cmds, m.fetchPage(msg.target, 0))
		m.expansions.Expand(parentID, m.tree.Fetched(msg.target), true)
	}
	text := "Comment posted"
	if !msg.target.IsRoot() {
		text = "Reply posted"
	}
	cmds = append(cmds, m.notify(app.NoticeInfo, text, nil), m.publishPost())
	return m, tea.Batch(cmds...)
}

func (m Model) handleEditorFinished(msg editorFinishedMsg) (Model, tea.Cmd) {
	if m.deps.Editor == nil {
		return m, nil
	}
	content, err := m.deps.Editor.ReadContent(msg.tmpPath)
	if msg.err != nil {
		return m, m.notify(app.NoticeError, "Editor exited with an error", msg.err)
	}
	if err != nil {
		return m, m.notify(app.NoticeError, "Could not read draft", err)
	}
	if msg.slotGen != m.composer.gen {
		return m, nil
	}
	m.composer.SetDraft(content)
	return m, nil
}

// --- Actions shared by keyboard and mouse ---

// toggleReplies expands or collapses a comment's replies.
func (m *Model) toggleReplies(commentID string) tea.Cmd {
	c, _, ok := m.tree.Find(commentID)
	if !ok || c.IsReply() {
		return nil
	}
	s := domain.RepliesScope(commentID)
	if m.expansions.Toggle(c, m.tree.Fetched(s), m.cursors.Loading(s)) {
		return m.fetchPage(s, 0)
	}
	return nil
}

// loadMoreReplies fetches the next reply page of an expanded comment.
func (m *Model) loadMoreReplies(commentID string) tea.Cmd {
	s := domain.RepliesScope(commentID)
	if m.expansions.State(commentID) != Expanded || !m.cursors.HasMore(s) {
		return nil
	}
	return m.fetchPage(s, m.cursors.NextPage(s))
}

// maybeAdvanceRoot requests the next root page once fewer than one and a half
// viewports of content remain below the visible area.
func (m *Model) maybeAdvanceRoot() tea.Cmd {
	root := m.rootScope()
	if m.cursors.Loading(root) || !m.cursors.HasMore(root) {
		return nil
	}
	vh := m.viewportHeight()
	remaining := m.layout().totalLines() - (m.scrollLine + vh)
	if float64(remaining) >= 1.5*float64(vh) {
		return nil
	}
	return m.fetchPage(root, m.cursors.NextPage(root))
}

// react selects kind on t, applying the optimistic change immediately.
func (m *Model) react(t domain.Target, kind domain.ReactionKind) tea.Cmd {
	mut, ok := m.reactions.Select(t, m.currentReaction(t), kind)
	if !ok {
		log.Debug().Str("target", t.String()).Msg("reaction in flight; click ignored")
		return nil
	}
	if t.Kind == domain.TargetComment {
		if _, s, found := m.tree.Find(t.ID); found {
			m.reactions.stampListGen(t, m.tree.Gen(s))
		}
	}
	m.apply(mut)
	return m.sendReaction(mut)
}

// clickTrigger is a direct click on t's reaction button.
func (m *Model) clickTrigger(t domain.Target) tea.Cmd {
	if m.picker.Click(t) == ClickDefaultReaction {
		return m.react(t, domain.DefaultReaction)
	}
	return nil
}

// pick applies a reaction chosen from the open picker.
func (m *Model) pick(kind domain.ReactionKind) tea.Cmd {
	t, kind, ok := m.picker.Pick(kind)
	if !ok {
		return nil
	}
	return m.react(t, kind)
}

func (m *Model) apply(mut reactionMutation) {
	if mut.Target.Kind == domain.TargetPost {
		if mut.Target.ID == m.post.ID {
			mut.applyToPost(&m.post)
		}
		return
	}
	if _, s, ok := m.tree.Find(mut.Target.ID); ok {
		m.tree.Patch(s, mut.Target.ID, mut.applyToComment)
	}
}

func (m *Model) rollback(mut reactionMutation) {
	if mut.Target.Kind == domain.TargetPost {
		if mut.Target.ID == m.post.ID {
			mut.rollbackPost(&m.post)
		}
		return
	}
	if _, s, ok := m.tree.Find(mut.Target.ID); ok {
		if m.tree.Gen(s) != mut.ListGen {
			log.Debug().Str("target", mut.Target.String()).Msg("list refreshed during reaction; rollback skipped")
			return
		}
		m.tree.Patch(s, mut.Target.ID, mut.rollbackComment)
	}
}

// openComposer toggles the composer on target.
func (m *Model) openComposer(target domain.Scope) tea.Cmd {
	m.picker.Dismiss()
	m.composer.Open(target)
	return nil
}

// submit sends the draft of the open composer.
func (m *Model) submit() tea.Cmd {
	target := m.composer.Target()
	image := m.composer.Image()
	nc, gen, ok := m.composer.BeginSubmit(m.post.ID)
	if !ok {
		return nil
	}
	return m.submitComment(nc, gen, target, image)
}
