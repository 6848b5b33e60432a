package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/tui/common"
)

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		return m.handleLoaded(msg)

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		log.Warn().Err(msg.Err).Int("page", msg.Page).Msg("feed fetch failed")
		m.loading = false
		m.loadingMore = false
		m.err = msg.Err
		return m, nil

	case common.PostChangedMsg:
		for i := range m.posts {
			if m.posts[i].ID == msg.Post.ID {
				m.posts[i] = msg.Post
				break
			}
		}
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.moveCursor(1)
			return m, m.maybeStartPrefetch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleLoaded(msg PostsLoadedMsg) (Model, tea.Cmd) {
	if msg.ReqSeq != m.reqSeq {
		return m, nil
	}
	m.err = nil
	m.totalPages = msg.TotalPages

	if msg.Page == 0 {
		m.posts = msg.Posts
		m.page = 0
		m.loading = false
		m.loadingMore = false
		m.notice = ""
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}
		m.ensureCursorVisible()
		return m, nil
	}

	m.loadingMore = false
	m.page = msg.Page
	existing := make(map[string]struct{}, len(m.posts))
	for _, p := range m.posts {
		existing[p.ID] = struct{}{}
	}
	for _, p := range msg.Posts {
		if _, ok := existing[p.ID]; ok {
			continue
		}
		m.posts = append(m.posts, p)
	}
	if !m.HasMore() {
		m.notice = "End of the feed."
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.cursor = 0
		m.startIndex = 0
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, m.maybeStartPrefetch()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.posts)-1, 0)
		m.ensureCursorVisible()
		return m, m.maybeStartPrefetch()

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.SelectedPost(); ok {
			return m, func() tea.Msg { return OpenThreadMsg{Post: p} }
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.posts) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.posts)-1)
	m.ensureCursorVisible()
}
