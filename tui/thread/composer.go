package thread

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

// Composer is the single reply slot of the dialog. Its target is the scope the
// new comment lands in: the post root for a top-level comment, or a comment's
// replies scope for a reply. At most one target is open at a time.
type Composer struct {
	active     bool
	target     domain.Scope
	gen        int // Bumped on every open/close; submit results carry it
	submitting bool
	attaching  bool // Image path input has focus
	image      string
	input      textarea.Model
	imagePath  textinput.Model
}

func newComposer() Composer {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = domain.CommentCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(3)

	ti := textinput.New()
	ti.Placeholder = "/path/to/image.png"
	ti.Prompt = "image: "

	return Composer{input: ta, imagePath: ti}
}

// Open targets s. Opening the target that is already open closes the slot
// instead; opening another target discards the current draft. It reports
// whether the slot is open afterwards.
func (c *Composer) Open(s domain.Scope) bool {
	if c.active && c.target == s {
		c.Close()
		return false
	}
	c.clear()
	c.active = true
	c.target = s
	c.gen++
	c.input.Focus()
	return true
}

// Close empties the slot unconditionally.
func (c *Composer) Close() {
	c.clear()
	c.active = false
	c.target = domain.Scope{}
	c.gen++
}

func (c *Composer) clear() {
	c.input.Reset()
	c.input.Blur()
	c.imagePath.Reset()
	c.imagePath.Blur()
	c.image = ""
	c.attaching = false
	c.submitting = false
}

// Active reports whether any target is open.
func (c Composer) Active() bool { return c.active }

// Target returns the open target.
func (c Composer) Target() domain.Scope { return c.target }

// IsOpenFor reports whether s is the open target.
func (c Composer) IsOpenFor(s domain.Scope) bool { return c.active && c.target == s }

// Draft returns the current text.
func (c Composer) Draft() string { return c.input.Value() }

// Image returns the attached image path, if any.
func (c Composer) Image() string { return c.image }

// Submitting reports whether a submit is in flight.
func (c Composer) Submitting() bool { return c.submitting }

// SetDraft replaces the text, e.g. after an external editor returns.
func (c *Composer) SetDraft(s string) {
	if !c.active {
		return
	}
	c.input.SetValue(s)
	c.input.CursorEnd()
}

// Attach sets or clears the image path.
func (c *Composer) Attach(path string) {
	if !c.active {
		return
	}
	c.image = strings.TrimSpace(path)
}

// HasDraft reports whether there is text or an image to send.
func (c Composer) HasDraft() bool {
	return strings.TrimSpace(c.input.Value()) != "" || c.image != ""
}

// BeginSubmit validates the slot and marks a submit in flight. The returned
// payload has no image URL yet; the caller uploads the image first.
func (c *Composer) BeginSubmit(postID string) (app.NewComment, int, bool) {
	if !c.active || c.submitting || !c.HasDraft() {
		return app.NewComment{}, 0, false
	}
	c.submitting = true
	nc := app.NewComment{
		PostID:  postID,
		Content: strings.TrimSpace(c.input.Value()),
	}
	if !c.target.IsRoot() {
		nc.ParentID = c.target.ID
	}
	return nc, c.gen, true
}

// SubmitDone settles the submit started under gen. Success closes the slot;
// failure keeps the draft for a retry. Results for a slot that has since been
// switched or closed leave it alone.
func (c *Composer) SubmitDone(gen int, err error) {
	if gen != c.gen {
		return
	}
	if err != nil {
		c.submitting = false
		return
	}
	c.Close()
}

func (c *Composer) setWidth(w int) {
	c.input.SetWidth(min(max(w-6, 20), 100))
	c.imagePath.Width = min(max(w-14, 10), 80)
}
