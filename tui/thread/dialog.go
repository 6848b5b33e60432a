package thread

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/domain"
)

// reset discards every piece of per-session state, cancels requests of the
// previous session and returns a fresh session token. Continuations carrying
// an older token are ignored by Update.
func (m *Model) reset() string {
	if m.cancel != nil {
		m.cancel()
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.session = uuid.NewString()

	m.cursors = newCursors()
	m.tree = newTree()
	m.expansions = newExpansions()
	m.composer = newComposer()
	m.composer.setWidth(m.width)
	m.reactions = newReactions()
	m.picker = newPicker(m.cfg.HoverHideDelay)
	m.selected = 0
	m.scrollLine = 0
	return m.session
}

// Open shows p and starts loading its first comment page together with the
// user's current reaction. Opening while another post is shown resets first.
func (m Model) Open(p domain.Post) (Model, tea.Cmd) {
	session := m.reset()
	m.open = true
	m.post = p
	log.Debug().Str("post", p.ID).Str("session", session).Msg("dialog opened")

	return m, tea.Batch(
		m.fetchPage(m.rootScope(), 0),
		m.fetchReactionStatus(),
		m.spinner.Tick,
	)
}

// Close discards the session. In-flight requests are canceled; any that
// still complete are dropped by the session guard.
func (m Model) Close() (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	post := m.post
	log.Debug().Str("post", post.ID).Str("session", m.session).Msg("dialog closed")

	m.reset()
	m.cancel()
	m.session = ""
	m.open = false
	m.post = domain.Post{}
	return m, func() tea.Msg { return ClosedMsg{Post: post} }
}
