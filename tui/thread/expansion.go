package thread

import "github.com/CrestNiraj12/feedthread/domain"

// ExpansionState is the visibility of one comment's replies.
type ExpansionState int

const (
	Collapsed ExpansionState = iota
	Expanding                // First reply fetch in flight
	Expanded
)

func (s ExpansionState) String() string {
	switch s {
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	}
	return "collapsed"
}

// Expansions tracks which comments show their replies.
type Expansions struct {
	states map[string]ExpansionState
}

func newExpansions() Expansions {
	return Expansions{states: make(map[string]ExpansionState)}
}

// State returns the comment's state; unknown comments are collapsed.
func (e Expansions) State(commentID string) ExpansionState {
	return e.states[commentID]
}

// Toggle flips a comment between shown and hidden. cached reports whether its
// replies scope already holds data and inFlight whether a fetch is running.
// It returns true when the caller must fetch page 0 of the replies scope.
// Comments without replies never change state.
func (e *Expansions) Toggle(c domain.Comment, cached, inFlight bool) bool {
	if c.ReplyCount <= 0 {
		return false
	}
	switch e.states[c.ID] {
	case Expanded, Expanding:
		// A running fetch still lands in the cache; the comment stays hidden.
		e.set(c.ID, Collapsed)
		return false
	}
	return e.open(c.ID, cached, inFlight)
}

// Expand shows a comment's replies regardless of its current state.
func (e *Expansions) Expand(commentID string, cached, inFlight bool) bool {
	switch e.states[commentID] {
	case Expanded, Expanding:
		return false
	}
	return e.open(commentID, cached, inFlight)
}

func (e *Expansions) open(id string, cached, inFlight bool) bool {
	switch {
	case cached:
		e.set(id, Expanded)
		return false
	case inFlight:
		e.set(id, Expanding)
		return false
	}
	e.set(id, Expanding)
	return true
}

// Loaded finishes an expansion once the replies scope has data. Comments the
// user collapsed meanwhile stay collapsed.
func (e *Expansions) Loaded(commentID string) {
	if e.states[commentID] == Expanding {
		e.set(commentID, Expanded)
	}
}

// Failed returns an expanding comment to collapsed so the user can retry.
func (e *Expansions) Failed(commentID string) {
	if e.states[commentID] == Expanding {
		e.set(commentID, Collapsed)
	}
}

func (e *Expansions) set(id string, s ExpansionState) {
	if e.states == nil {
		e.states = make(map[string]ExpansionState)
	}
	if s == Collapsed {
		delete(e.states, id)
		return
	}
	e.states[id] = s
}
