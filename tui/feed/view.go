package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

const (
	headerLines = 3
	footerLines = 2
	// Each card is four content lines plus its border.
	cardLines = 6
)

// View renders the post list.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("feedthread")
	b.WriteString(title + common.SourceStyle.Render(m.source.Kind+" "+m.source.ID) + "\n\n")

	switch {
	case m.loading && len(m.posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil && len(m.posts) == 0:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press R to retry.\n")
	case len(m.posts) == 0:
		b.WriteString("  No posts yet.\n")
	default:
		now := time.Now()
		end := min(m.startIndex+m.visibleCount(), len(m.posts))
		for i := m.startIndex; i < end; i++ {
			card := m.renderCard(m.posts[i], now)
			if i == m.cursor {
				b.WriteString(common.SelectedStyle.Width(m.cardWidth()).Render(card))
			} else {
				b.WriteString(common.UnselectedStyle.Width(m.cardWidth()).Render(card))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) renderCard(p domain.Post, now time.Time) string {
	author := common.AuthorStyle.Render(p.Author.Name)
	if p.IsOwn {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	if ts := common.RelativeTime(p.CreatedAt, now); ts != "" {
		author += common.TimestampStyle.Render("  " + ts)
	}

	width := max(m.cardWidth()-4, 10)
	lines := strings.Split(ansi.Wrap(p.Content, width, ""), "\n")
	for len(lines) < 2 {
		lines = append(lines, "")
	}
	if len(lines) > 2 {
		lines = lines[:2]
		lines[1] = ansi.Truncate(lines[1], width-1, "") + "…"
	}

	reaction := "♡"
	style := common.MetadataStyle
	if p.Reacted() {
		reaction = p.MyReaction.Icon()
		style = common.ReactedStyle
	}
	meta := style.Render(reaction+" "+common.CompactCount(p.ReactionCount)) +
		common.MetadataStyle.Render("  💬 "+common.CompactCount(p.CommentCount))
	if p.ImageURL != "" {
		meta += common.MetadataStyle.Render("  🖼")
	}

	return author + "\n" +
		common.ContentStyle.Render(lines[0]) + "\n" +
		common.ContentStyle.Render(lines[1]) + "\n" +
		meta
}

func (m Model) statusLine() string {
	var parts []string
	switch {
	case m.loadingMore:
		parts = append(parts, m.spinner.View()+" loading more")
	case m.err != nil && len(m.posts) > 0:
		parts = append(parts, common.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.notice != "":
		parts = append(parts, m.notice)
	}
	parts = append(parts, common.HelpLine(m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Refresh, m.keys.Quit))
	return common.StatusBarStyle.Render("  " + strings.Join(parts, "  ·  "))
}

func (m Model) cardWidth() int {
	return min(max(m.width-4, 20), 100)
}

func (m Model) visibleCount() int {
	return max((m.height-headerLines-footerLines)/cardLines, 1)
}

// ensureCursorVisible slides the card window so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	n := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	} else if m.cursor >= m.startIndex+n {
		m.startIndex = m.cursor - n + 1
	}
	m.startIndex = min(max(m.startIndex, 0), max(len(m.posts)-1, 0))
}
