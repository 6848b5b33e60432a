package thread

import (
	"time"

	"github.com/CrestNiraj12/feedthread/domain"
)

// DefaultHoverHideDelay is how long the picker stays up after the pointer
// leaves both the trigger and the panel.
const DefaultHoverHideDelay = 300 * time.Millisecond

// PickerState is the reaction picker's hover state.
type PickerState int

const (
	PickerHidden PickerState = iota
	PickerHoveringTrigger
	PickerVisible // Shown; pointer is outside trigger and panel
	PickerHoveringPanel
)

func (s PickerState) String() string {
	switch s {
	case PickerHoveringTrigger:
		return "hovering-trigger"
	case PickerVisible:
		return "visible"
	case PickerHoveringPanel:
		return "hovering-panel"
	}
	return "hidden"
}

// ClickAction is what a click on the trigger resolved to.
type ClickAction int

const (
	ClickOpened ClickAction = iota
	ClickDefaultReaction
)

// Picker is the hover state machine of the reaction popup. It is shared by
// the post and every comment; only one target shows a panel at a time.
// Hiding is debounced: leaving both regions arms a timer identified by a
// generation, and any re-entry bumps the generation so the timer is ignored.
type Picker struct {
	state  PickerState
	target domain.Target
	gen    int
	armed  bool // A hide timer for gen is pending
	delay  time.Duration
}

func newPicker(delay time.Duration) Picker {
	if delay <= 0 {
		delay = DefaultHoverHideDelay
	}
	return Picker{delay: delay}
}

// State returns the current state.
func (p Picker) State() PickerState { return p.state }

// Target returns the target the panel belongs to.
func (p Picker) Target() domain.Target { return p.target }

// Delay returns the hide delay.
func (p Picker) Delay() time.Duration { return p.delay }

// Shown reports whether the panel is visible.
func (p Picker) Shown() bool { return p.state != PickerHidden }

// ShownFor reports whether the panel is visible for t.
func (p Picker) ShownFor(t domain.Target) bool { return p.Shown() && p.target == t }

// EnterTrigger handles the pointer entering t's action button.
func (p *Picker) EnterTrigger(t domain.Target) {
	if p.state == PickerHoveringTrigger && p.target == t {
		return
	}
	p.target = t
	p.state = PickerHoveringTrigger
	p.gen++
	p.armed = false
}

// EnterPanel handles the pointer entering the panel. It cancels a pending hide.
func (p *Picker) EnterPanel() {
	if p.state == PickerHidden || p.state == PickerHoveringPanel {
		return
	}
	p.state = PickerHoveringPanel
	p.gen++
	p.armed = false
}

// Leave handles the pointer being outside both regions. It returns the
// generation of a newly armed hide timer, or false when nothing needs arming.
func (p *Picker) Leave() (int, bool) {
	switch p.state {
	case PickerHoveringTrigger, PickerHoveringPanel:
		p.state = PickerVisible
		p.gen++
	case PickerVisible:
		if p.armed {
			return 0, false
		}
	default:
		return 0, false
	}
	p.armed = true
	return p.gen, true
}

// Expire fires the hide timer armed under gen.
func (p *Picker) Expire(gen int) bool {
	if gen != p.gen || p.state != PickerVisible {
		return false
	}
	p.hide()
	return true
}

// Click handles a direct click on t's trigger: a hidden picker opens, a
// visible one means "apply the default reaction".
func (p *Picker) Click(t domain.Target) ClickAction {
	if p.ShownFor(t) {
		p.hide()
		return ClickDefaultReaction
	}
	p.target = t
	p.state = PickerVisible
	p.gen++
	p.armed = false
	return ClickOpened
}

// Pick selects kind from the panel and hides it.
func (p *Picker) Pick(kind domain.ReactionKind) (domain.Target, domain.ReactionKind, bool) {
	if !p.Shown() {
		return domain.Target{}, "", false
	}
	t := p.target
	p.hide()
	return t, kind, true
}

// Dismiss hides the panel immediately.
func (p *Picker) Dismiss() {
	if p.Shown() {
		p.hide()
	}
}

func (p *Picker) hide() {
	p.state = PickerHidden
	p.target = domain.Target{}
	p.gen++
	p.armed = false
}
