package thread

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/feedthread/domain"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.composer.Active() {
		return m.handleComposerKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.picker.Shown() {
			m.picker.Dismiss()
			return m, nil
		}
		return m.Close()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.ensureSelectedVisible()

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows())-1 {
			m.selected++
		}
		m.ensureSelectedVisible()

	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.viewportHeight())

	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.viewportHeight())

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.scrollLine = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(m.rows()) - 1
		m.ensureSelectedVisible()

	case key.Matches(msg, m.keys.Open):
		r, ok := m.selectedRow()
		if !ok {
			break
		}
		switch r.kind {
		case rowComment:
			cmd = m.toggleReplies(r.comment.ID)
		case rowMoreReplies:
			cmd = m.loadMoreReplies(r.parent)
		}

	case key.Matches(msg, m.keys.React):
		if t, ok := m.selectedTarget(); ok {
			cmd = m.clickTrigger(t)
		}

	case key.Matches(msg, m.keys.Picker):
		if t, ok := m.selectedTarget(); ok && !m.picker.ShownFor(t) {
			m.picker.Click(t)
		}

	case key.Matches(msg, m.keys.PickKind):
		i, err := strconv.Atoi(msg.String())
		if err == nil && i >= 1 && i <= len(domain.ReactionKinds) {
			cmd = m.pick(domain.ReactionKinds[i-1])
		}

	case key.Matches(msg, m.keys.Reply):
		if s, ok := m.selectedReplyScope(); ok {
			cmd = m.openComposer(s)
		}

	case key.Matches(msg, m.keys.Comment):
		cmd = m.openComposer(m.rootScope())

	case key.Matches(msg, m.keys.Refresh):
		cmd = m.fetchPage(m.rootScope(), 0)

	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints
	}

	return m, tea.Batch(cmd, m.maybeAdvanceRoot())
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	c := &m.composer
	if c.attaching {
		switch msg.Type {
		case tea.KeyEsc:
			c.attaching = false
			c.imagePath.Blur()
			c.input.Focus()
			return m, nil
		case tea.KeyEnter:
			c.Attach(c.imagePath.Value())
			c.attaching = false
			c.imagePath.Blur()
			c.input.Focus()
			return m, nil
		}
		var cmd tea.Cmd
		c.imagePath, cmd = c.imagePath.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		c.Close()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Attach):
		c.attaching = true
		c.imagePath.SetValue(c.image)
		c.input.Blur()
		return m, c.imagePath.Focus()

	case key.Matches(msg, m.keys.Editor):
		return m, m.launchEditor()
	}

	if c.submitting {
		return m, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return m, cmd
}

func (m Model) selectedRow() (row, bool) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return row{}, false
	}
	return rows[m.selected], true
}

// selectedTarget is the reaction target of the selected row.
func (m Model) selectedTarget() (domain.Target, bool) {
	r, ok := m.selectedRow()
	if !ok {
		return domain.Target{}, false
	}
	switch r.kind {
	case rowPost:
		return domain.PostTarget(m.post.ID), true
	case rowComment, rowReply:
		return domain.CommentTarget(r.comment.ID), true
	}
	return domain.Target{}, false
}

// selectedReplyScope is where a reply to the selected row lands.
func (m Model) selectedReplyScope() (domain.Scope, bool) {
	r, ok := m.selectedRow()
	if !ok {
		return domain.Scope{}, false
	}
	switch r.kind {
	case rowPost:
		return m.rootScope(), true
	case rowComment:
		return domain.RepliesScope(r.comment.ID), true
	case rowReply, rowMoreReplies:
		return domain.RepliesScope(r.parent), true
	}
	return domain.Scope{}, false
}
