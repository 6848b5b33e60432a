package thread

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

// errNoUploader is reported when a draft has an image but no uploader is wired.
var errNoUploader = errors.New("image attachments are not available")

// fetchPage starts a fetch of page for s. Out-of-order or duplicate requests
// are refused by the cursor store and produce no command.
func (m *Model) fetchPage(s domain.Scope, page int) tea.Cmd {
	gen, err := m.cursors.Begin(s, page)
	if err != nil {
		log.Debug().Err(err).Msg("page fetch refused")
		return nil
	}
	size := m.cfg.PageSize
	if !s.IsRoot() {
		size = m.cfg.ReplyPageSize
	}
	q := app.CommentQuery{Scope: s, Page: page, Size: size, TopLevelOnly: s.IsRoot()}

	comments := m.deps.Comments
	ctx := m.ctx
	tag := sessioned{session: m.session}
	log.Debug().Str("scope", s.Key()).Int("page", page).Int("gen", gen).Msg("fetching comments")
	return func() tea.Msg {
		res, err := comments.FetchComments(ctx, q)
		return pageResultMsg{
			sessioned:  tag,
			scope:      s,
			page:       page,
			gen:        gen,
			comments:   res.Comments,
			totalPages: res.TotalPages,
			err:        err,
		}
	}
}

// fetchReactionStatus looks up the user's reaction on the post. Failures are
// logged only. Without a known user the reaction the post arrived with stands.
func (m Model) fetchReactionStatus() tea.Cmd {
	reactions := m.deps.Reactions
	userID := m.cfg.CurrentUserID
	if reactions == nil || userID == "" {
		return nil
	}
	ctx := m.ctx
	postID := m.post.ID
	tag := sessioned{session: m.session}
	return func() tea.Msg {
		list, err := reactions.PostReactions(ctx, postID)
		msg := reactionStatusMsg{sessioned: tag, postID: postID, err: err}
		for _, r := range list {
			if r.UserID == userID {
				msg.kind = r.Kind
				break
			}
		}
		return msg
	}
}

// sendReaction issues the request matching an optimistic mutation.
func (m Model) sendReaction(mut reactionMutation) tea.Cmd {
	svc := m.deps.Reactions
	ctx := m.ctx
	tag := sessioned{session: m.session}
	return func() tea.Msg {
		var err error
		switch {
		case svc == nil:
			err = errors.New("reactions are not available")
		case mut.Target.Kind == domain.TargetComment:
			kind := mut.To
			if mut.Op == opClear {
				kind = mut.From
			}
			err = svc.ToggleCommentReaction(ctx, mut.Target.ID, kind)
		case mut.Op == opClear:
			err = svc.Unreact(ctx, mut.Target.ID)
		default:
			err = svc.React(ctx, mut.Target.ID, mut.To)
		}
		return reactionResultMsg{sessioned: tag, target: mut.Target, seq: mut.Seq, err: err}
	}
}

// submitComment uploads the attached image, if any, then creates the comment.
func (m Model) submitComment(nc app.NewComment, slotGen int, target domain.Scope, image string) tea.Cmd {
	comments := m.deps.Comments
	uploader := m.deps.Uploader
	ctx := m.ctx
	tag := sessioned{session: m.session}
	return func() tea.Msg {
		res := submitResultMsg{sessioned: tag, slotGen: slotGen, target: target}
		if image != "" {
			if uploader == nil {
				res.err = errNoUploader
				return res
			}
			url, err := uploader.Upload(ctx, image)
			if err != nil {
				res.err = fmt.Errorf("uploading image: %w", err)
				return res
			}
			nc.ImageURL = url
		}
		res.comment, res.err = comments.CreateComment(ctx, nc)
		return res
	}
}

// scheduleHide arms the picker's hide timer.
func (m Model) scheduleHide(gen int) tea.Cmd {
	tag := sessioned{session: m.session}
	return tea.Tick(m.picker.Delay(), func(time.Time) tea.Msg {
		return pickerHideMsg{sessioned: tag, gen: gen}
	})
}

// launchEditor suspends the program and opens the draft in $EDITOR.
func (m Model) launchEditor() tea.Cmd {
	if m.deps.Editor == nil || !m.composer.Active() {
		return nil
	}
	cmd, tmpPath, err := m.deps.Editor.Cmd(m.composer.Draft(), m.composerTitle())
	if err != nil {
		return m.notify(app.NoticeError, "Could not open editor", err)
	}
	tag := sessioned{session: m.session}
	gen := m.composer.gen
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{sessioned: tag, slotGen: gen, tmpPath: tmpPath, err: err}
	})
}

// notify publishes a notice on the bus. Publishing happens inside the command
// so subscribers may feed messages back into the program.
func (m Model) notify(level app.NoticeLevel, text string, err error) tea.Cmd {
	if err != nil {
		log.Warn().Err(err).Str("post", m.post.ID).Msg(text)
	}
	bus := m.deps.Bus
	if bus == nil {
		return nil
	}
	n := app.Notice{Text: text, Err: err, Level: level}
	return func() tea.Msg {
		bus.Publish(app.Event{Topic: app.TopicNotice, Payload: n})
		return nil
	}
}

// publishPost announces the locally patched post.
func (m Model) publishPost() tea.Cmd {
	bus := m.deps.Bus
	if bus == nil {
		return nil
	}
	p := m.post
	return func() tea.Msg {
		bus.Publish(app.Event{Topic: app.TopicPostChanged, Payload: p})
		return nil
	}
}
