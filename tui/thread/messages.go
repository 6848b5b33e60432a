package thread

import (
	"github.com/CrestNiraj12/feedthread/domain"
)

// sessioned tags a continuation with the dialog session that issued it.
type sessioned struct {
	session string
}

func (s sessioned) sessionID() string { return s.session }

type sessionMsg interface {
	sessionID() string
}

// pageResultMsg completes a page fetch of one scope.
type pageResultMsg struct {
	sessioned
	scope      domain.Scope
	page       int
	gen        int
	comments   []domain.Comment
	totalPages int
	err        error
}

// reactionStatusMsg carries the best-effort check of the user's post reaction.
type reactionStatusMsg struct {
	sessioned
	postID string
	kind   domain.ReactionKind
	err    error
}

// reactionResultMsg completes a reaction create/delete/toggle request.
type reactionResultMsg struct {
	sessioned
	target domain.Target
	seq    int
	err    error
}

// submitResultMsg completes a comment or reply submission.
type submitResultMsg struct {
	sessioned
	slotGen int
	target  domain.Scope
	comment domain.Comment
	err     error
}

// pickerHideMsg fires when the hover hide delay elapses.
type pickerHideMsg struct {
	sessioned
	gen int
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	sessioned
	slotGen int
	tmpPath string
	err     error
}
