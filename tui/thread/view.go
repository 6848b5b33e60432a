package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

// View renders the dialog: a scrolled window over the thread, then the
// composer (when open) and a hint line.
func (m Model) View() string {
	if !m.open {
		return ""
	}
	f := m.layout()
	vh := m.viewportHeight()
	start := min(max(m.scrollLine, 0), max(f.totalLines()-vh, 0))
	end := min(start+vh, f.totalLines())

	lines := make([]string, 0, vh)
	lines = append(lines, f.lines[start:end]...)
	for len(lines) < vh {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n" + m.footerView()
}

func (m Model) footerView() string {
	var b strings.Builder
	if m.composer.Active() {
		b.WriteString(m.composerView())
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render(m.hintLine()))
	return b.String()
}

func (m Model) composerView() string {
	c := m.composer
	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(m.composerTitle()))
	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")
	switch {
	case c.attaching:
		b.WriteString(c.imagePath.View())
	case c.image != "":
		b.WriteString(common.MetadataStyle.Render("🖼 " + c.image))
	default:
		b.WriteString(common.MetadataStyle.Render("no image"))
	}
	b.WriteString("\n")

	status := fmt.Sprintf("%d/%d", len([]rune(c.Draft())), domain.CommentCharLimit)
	if c.submitting {
		status = m.spinner.View() + " sending…"
	}
	hints := common.HelpLine(m.keys.Submit, m.keys.Attach, m.keys.Editor, m.keys.Back)
	b.WriteString(common.StatusBarStyle.Render(hints + "  " + status))

	return common.ComposerStyle.Width(max(m.width-4, 24)).Render(b.String())
}

func (m Model) hintLine() string {
	if m.composer.Active() {
		return ""
	}
	if !m.showHints {
		return common.HelpLine(m.keys.React, m.keys.Reply, m.keys.Comment, m.keys.Back, m.keys.ToggleHints)
	}
	k := m.keys
	return common.HelpLine(k.Up, k.Down, k.Open, k.React, k.Picker, k.PickKind, k.Reply, k.Comment, k.Refresh, k.Back, k.ToggleHints)
}

// composerTitle names the open target.
func (m Model) composerTitle() string {
	t := m.composer.Target()
	if t.IsRoot() {
		return "Commenting on the post"
	}
	if c, _, ok := m.tree.Find(t.ID); ok && c.Author.Name != "" {
		return "Replying to " + c.Author.Name
	}
	return "Replying"
}

// viewportHeight is the number of thread lines that fit above the footer.
func (m Model) viewportHeight() int {
	return max(m.height-lipgloss.Height(m.footerView()), 3)
}

func (m *Model) clampScroll() {
	maxScroll := max(m.layout().totalLines()-m.viewportHeight(), 0)
	m.scrollLine = min(max(m.scrollLine, 0), maxScroll)
}

func (m *Model) clampSelection() {
	n := len(m.rows())
	m.selected = min(max(m.selected, 0), n-1)
}

// ensureSelectedVisible scrolls so the selected row is inside the viewport.
func (m *Model) ensureSelectedVisible() {
	f := m.layout()
	if m.selected < 0 || m.selected >= len(f.rowStart) {
		return
	}
	vh := m.viewportHeight()
	top, bottom := f.rowStart[m.selected], f.rowEnd[m.selected]
	if m.selected == 0 {
		top = 0
	}
	if top < m.scrollLine {
		m.scrollLine = top
	} else if bottom > m.scrollLine+vh {
		m.scrollLine = min(bottom-vh, top)
	}
	m.clampScroll()
}

// scrollBy moves the viewport by delta lines.
func (m *Model) scrollBy(delta int) {
	m.scrollLine += delta
	m.clampScroll()
}
