package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

type rowKind int

const (
	rowPost rowKind = iota
	rowComment
	rowReply
	rowMoreReplies
)

// row is one selectable item of the thread.
type row struct {
	kind    rowKind
	comment domain.Comment
	parent  string // Top-level comment id for replies and "more replies"
}

// rows flattens the visible tree: the post, each top-level comment and, for
// shown comments, their replies plus a "more replies" row while pages remain.
func (m Model) rows() []row {
	out := []row{{kind: rowPost}}
	for _, c := range m.tree.Get(m.rootScope()) {
		out = append(out, row{kind: rowComment, comment: c})
		state := m.expansions.State(c.ID)
		if state == Collapsed {
			continue
		}
		rs := domain.RepliesScope(c.ID)
		for _, r := range m.tree.Get(rs) {
			out = append(out, row{kind: rowReply, comment: r, parent: c.ID})
		}
		if state == Expanded && m.cursors.HasMore(rs) {
			out = append(out, row{kind: rowMoreReplies, parent: c.ID})
		}
	}
	return out
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTrigger
	hitPanel
	hitReply
	hitToggle
	hitMore
)

// hitRegion is a clickable span of one content line.
type hitRegion struct {
	kind      hitKind
	line      int
	x0, x1    int // [x0, x1)
	target    domain.Target
	reaction  domain.ReactionKind // Set on picker items
	scope     domain.Scope        // Composer target for hitReply
	commentID string
}

// frame is the rendered thread content with its hit regions. Both View and
// pointer handling are derived from the same frame.
type frame struct {
	lines    []string
	regions  []hitRegion
	rowStart []int
	rowEnd   []int // Exclusive
}

func (f frame) totalLines() int { return len(f.lines) }

// hit returns the innermost region under (line, x).
func (f frame) hit(line, x int) hitRegion {
	found := hitRegion{}
	for _, r := range f.regions {
		if r.line == line && x >= r.x0 && x < r.x1 {
			found = r
		}
	}
	return found
}

// rowAt returns the row index covering line, or -1.
func (f frame) rowAt(line int) int {
	for i := range f.rowStart {
		if line >= f.rowStart[i] && line < f.rowEnd[i] {
			return i
		}
	}
	return -1
}

const (
	gutterWidth = 2
	replyIndent = "   │ "
)

// frameBuilder accumulates lines with a per-row prefix.
type frameBuilder struct {
	f      frame
	prefix string
	indent int // Width of prefix
}

func (b *frameBuilder) beginRow(selected bool, reply bool) {
	gutter := "  "
	if selected {
		gutter = common.SelectionBarStyle.Render("▌") + " "
	}
	b.prefix = gutter
	b.indent = gutterWidth
	if reply {
		b.prefix += common.MetadataStyle.Render(replyIndent)
		b.indent += ansi.StringWidth(replyIndent)
	}
	b.f.rowStart = append(b.f.rowStart, len(b.f.lines))
}

func (b *frameBuilder) endRow() {
	b.f.rowEnd = append(b.f.rowEnd, len(b.f.lines))
}

func (b *frameBuilder) line(s string) {
	b.f.lines = append(b.f.lines, b.prefix+s)
}

func (b *frameBuilder) plain(s string) {
	b.f.lines = append(b.f.lines, s)
}

// segment is one piece of an action line, optionally clickable.
type segment struct {
	text   string
	region *hitRegion
}

// actions writes segments separated by two spaces and records their regions.
func (b *frameBuilder) actions(segs ...segment) {
	lineNo := len(b.f.lines)
	x := b.indent
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		w := ansi.StringWidth(s.text)
		if s.region != nil {
			r := *s.region
			r.line = lineNo
			r.x0, r.x1 = x, x+w
			b.f.regions = append(b.f.regions, r)
		}
		parts = append(parts, s.text)
		x += w + 2
	}
	b.line(strings.Join(parts, "  "))
}

// panel renders the reaction picker below a trigger. The whole strip is a
// panel region so gaps between items keep the pointer "inside".
func (b *frameBuilder) panel(t domain.Target) {
	lineNo := len(b.f.lines)
	x := b.indent
	var sb strings.Builder
	items := make([]hitRegion, 0, len(domain.ReactionKinds))
	for i, k := range domain.ReactionKinds {
		item := fmt.Sprintf(" %d %s ", i+1, k.Icon())
		w := ansi.StringWidth(item)
		items = append(items, hitRegion{kind: hitPanel, line: lineNo, x0: x, x1: x + w, target: t, reaction: k})
		sb.WriteString(item)
		x += w
	}
	b.f.regions = append(b.f.regions, hitRegion{kind: hitPanel, line: lineNo, x0: b.indent, x1: x, target: t})
	b.f.regions = append(b.f.regions, items...)
	b.line(common.PickerStyle.Render(sb.String()))
}

func (b *frameBuilder) wrapped(text string, width int, style func(...string) string) {
	for _, l := range strings.Split(ansi.Wrap(text, width, ""), "\n") {
		b.line(style(l))
	}
}

// layout renders the thread content for the current state.
func (m Model) layout() frame {
	var b frameBuilder
	width := max(m.width-gutterWidth-ansi.StringWidth(replyIndent)-1, 20)
	now := m.now()

	b.plain(common.AppTitleStyle.Padding(0, 0, 0, 1).Render("feedthread") +
		common.MetadataStyle.Render(" › post "+m.post.ID))
	b.plain("")

	rows := m.rows()
	for i, r := range rows {
		selected := i == m.selected
		switch r.kind {
		case rowPost:
			b.beginRow(selected, false)
			m.layoutPost(&b, width, now)
		case rowComment, rowReply:
			b.beginRow(selected, r.kind == rowReply)
			m.layoutComment(&b, r, width, now)
		case rowMoreReplies:
			b.beginRow(selected, true)
			rs := domain.RepliesScope(r.parent)
			label := "↓ more replies"
			if m.cursors.Loading(rs) {
				label = m.spinner.View() + " loading replies"
			}
			b.actions(segment{
				text:   common.ActionStyle.Render(label),
				region: &hitRegion{kind: hitMore, commentID: r.parent},
			})
		}
		b.endRow()
	}

	b.plain("")
	root := m.rootScope()
	switch {
	case m.cursors.Loading(root):
		b.plain("  " + m.spinner.View() + common.MetadataStyle.Render(" loading comments"))
	case !m.cursors.Loaded(root):
	case m.tree.Len(root) == 0:
		b.plain(common.MetadataStyle.Render("  No comments yet. Press c to write one."))
	case m.cursors.HasMore(root):
		b.plain(common.MetadataStyle.Render("  ↓ scroll for more comments"))
	default:
		b.plain(common.MetadataStyle.Render("  — end of comments —"))
	}
	return b.f
}

func (m Model) layoutPost(b *frameBuilder, width int, now time.Time) {
	p := m.post
	header := common.AuthorStyle.Render(nonEmpty(p.Author.Name, "unknown"))
	if ts := common.RelativeTime(p.CreatedAt, now); ts != "" {
		header += common.TimestampStyle.Render(" · " + ts)
	}
	if p.IsOwn {
		header += common.OwnBadgeStyle.Render("(you)")
	}
	b.line(header)
	b.wrapped(p.Content, width, common.ContentStyle.Render)
	if p.ImageURL != "" {
		b.line(common.MetadataStyle.Render("🖼 " + ansi.Truncate(p.ImageURL, width-2, "…")))
	}

	t := domain.PostTarget(p.ID)
	b.actions(
		segment{
			text:   m.triggerLabel(t, p.MyReaction, p.ReactionCount),
			region: &hitRegion{kind: hitTrigger, target: t},
		},
		segment{text: common.MetadataStyle.Render("💬 " + common.CompactCount(p.CommentCount))},
		segment{
			text:   m.replyLabel(m.rootScope(), "✎ Comment"),
			region: &hitRegion{kind: hitReply, scope: m.rootScope()},
		},
	)
	if m.picker.ShownFor(t) {
		b.panel(t)
	}
	b.line(common.MetadataStyle.Render(strings.Repeat("─", min(width, 60))))
}

func (m Model) layoutComment(b *frameBuilder, r row, width int, now time.Time) {
	c := r.comment
	header := common.AuthorStyle.Render(nonEmpty(c.Author.Name, "unknown"))
	if ts := common.RelativeTime(c.CreatedAt, now); ts != "" {
		header += common.TimestampStyle.Render(" · " + ts)
	}
	if c.Edited {
		header += common.MetadataStyle.Render(" (edited)")
	}
	b.line(header)
	if c.Content != "" {
		b.wrapped(c.Content, width, common.ContentStyle.Render)
	}
	if c.ImageURL != "" {
		b.line(common.MetadataStyle.Render("🖼 " + ansi.Truncate(c.ImageURL, width-2, "…")))
	}

	t := domain.CommentTarget(c.ID)
	// Replies of replies land in the top-level comment's scope.
	replyScope := domain.RepliesScope(c.ID)
	if r.kind == rowReply {
		replyScope = domain.RepliesScope(r.parent)
	}
	segs := []segment{
		{
			text:   m.triggerLabel(t, m.currentReaction(t), c.ReactionCount),
			region: &hitRegion{kind: hitTrigger, target: t},
		},
		{
			text:   m.replyLabel(replyScope, "↩ Reply"),
			region: &hitRegion{kind: hitReply, scope: replyScope},
		},
	}
	if r.kind == rowComment && c.ReplyCount > 0 {
		segs = append(segs, segment{
			text:   m.toggleLabel(c),
			region: &hitRegion{kind: hitToggle, commentID: c.ID},
		})
	}
	b.actions(segs...)
	if m.picker.ShownFor(t) {
		b.panel(t)
	}
}

func (m Model) triggerLabel(t domain.Target, kind domain.ReactionKind, count int) string {
	label := "♡ React"
	if kind != "" {
		label = kind.Icon() + " " + kind.Label()
	}
	if count > 0 {
		label += " · " + common.CompactCount(count)
	}
	switch m.reactions.Phase(t, kind) {
	case ReactionPendingSet, ReactionPendingClear:
		return common.PendingStyle.Render(label + "…")
	case ReactionSet:
		return common.ReactedStyle.Render(label)
	}
	return common.ActionStyle.Render(label)
}

func (m Model) replyLabel(s domain.Scope, label string) string {
	if m.composer.IsOpenFor(s) {
		return common.ReactedStyle.Render(label)
	}
	return common.ActionStyle.Render(label)
}

func (m Model) toggleLabel(c domain.Comment) string {
	noun := "replies"
	if c.ReplyCount == 1 {
		noun = "reply"
	}
	switch m.expansions.State(c.ID) {
	case Expanding:
		return common.PendingStyle.Render(m.spinner.View() + " loading " + noun)
	case Expanded:
		return common.ActionStyle.Render("▾ hide " + noun)
	}
	return common.ActionStyle.Render(fmt.Sprintf("▸ %d %s", c.ReplyCount, noun))
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
