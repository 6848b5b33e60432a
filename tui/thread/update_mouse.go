package thread

import (
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

// handleMouse maps pointer events onto the rendered frame. Motion drives the
// picker's hover machine; a left press acts on the region under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return m, m.maybeAdvanceRoot()
	}

	f := m.layout()
	hit, line := hitRegion{}, -1
	if msg.Y >= 0 && msg.Y < m.viewportHeight() {
		line = msg.Y + m.scrollLine
		hit = f.hit(line, msg.X)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return m, m.hover(hit)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if row := f.rowAt(line); row >= 0 {
			m.selected = row
		}
		var cmd tea.Cmd
		switch hit.kind {
		case hitTrigger:
			cmd = m.clickTrigger(hit.target)
		case hitPanel:
			if hit.reaction != "" {
				cmd = m.pick(hit.reaction)
			}
		case hitReply:
			cmd = m.openComposer(hit.scope)
		case hitToggle:
			cmd = m.toggleReplies(hit.commentID)
		case hitMore:
			cmd = m.loadMoreReplies(hit.commentID)
		default:
			m.picker.Dismiss()
		}
		return m, tea.Batch(cmd, m.maybeAdvanceRoot())
	}
	return m, nil
}

// hover feeds one pointer position into the picker.
func (m *Model) hover(hit hitRegion) tea.Cmd {
	switch {
	case hit.kind == hitTrigger:
		m.picker.EnterTrigger(hit.target)
	case hit.kind == hitPanel && m.picker.ShownFor(hit.target):
		m.picker.EnterPanel()
	default:
		if gen, ok := m.picker.Leave(); ok {
			return m.scheduleHide(gen)
		}
	}
	return nil
}
