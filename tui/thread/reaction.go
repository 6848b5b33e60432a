package thread

import "github.com/CrestNiraj12/feedthread/domain"

// ReactionPhase is the visible reaction state of one target.
type ReactionPhase int

const (
	ReactionNone ReactionPhase = iota
	ReactionPendingSet
	ReactionSet
	ReactionPendingClear
)

func (p ReactionPhase) String() string {
	switch p {
	case ReactionPendingSet:
		return "pending-set"
	case ReactionSet:
		return "set"
	case ReactionPendingClear:
		return "pending-clear"
	}
	return "none"
}

type reactionOp int

const (
	opSet reactionOp = iota
	opClear
	opReplace
)

// reactionMutation is an optimistic change awaiting server confirmation.
// Rollback restores From and undoes Delta.
type reactionMutation struct {
	Target domain.Target
	Op     reactionOp
	From   domain.ReactionKind // Empty when nothing was set
	To     domain.ReactionKind // Empty when clearing
	Delta  int
	Seq    int
	// ListGen is the generation of the comment's list when the change was
	// applied. A replaced list already holds server state.
	ListGen int
}

// Reactions serializes reaction requests per target. While a request is in
// flight further selections on that target are ignored.
type Reactions struct {
	inflight map[domain.Target]reactionMutation
	touched  map[domain.Target]bool
	seq      int
}

func newReactions() Reactions {
	return Reactions{
		inflight: make(map[domain.Target]reactionMutation),
		touched:  make(map[domain.Target]bool),
	}
}

// Select plans the transition for choosing kind on target whose current
// reaction is current (empty for none). Comments only support toggling, so any
// choice while a comment reaction is set clears it. It reports false when a
// request for target is already in flight.
func (r *Reactions) Select(target domain.Target, current, kind domain.ReactionKind) (reactionMutation, bool) {
	if _, busy := r.inflight[target]; busy {
		return reactionMutation{}, false
	}
	if kind == "" {
		kind = domain.DefaultReaction
	}
	m := reactionMutation{Target: target, From: current}
	switch {
	case current == "":
		m.Op, m.To, m.Delta = opSet, kind, 1
	case current == kind || target.Kind == domain.TargetComment:
		m.Op, m.To, m.Delta = opClear, "", -1
	default:
		m.Op, m.To, m.Delta = opReplace, kind, 0
	}
	if r.inflight == nil {
		r.inflight = make(map[domain.Target]reactionMutation)
	}
	if r.touched == nil {
		r.touched = make(map[domain.Target]bool)
	}
	r.seq++
	m.Seq = r.seq
	r.inflight[target] = m
	r.touched[target] = true
	return m, true
}

// stampListGen records the list generation the in-flight change on target
// was applied against.
func (r *Reactions) stampListGen(target domain.Target, gen int) {
	if m, ok := r.inflight[target]; ok {
		m.ListGen = gen
		r.inflight[target] = m
	}
}

// Resolve ends the in-flight request for target. It reports false when seq
// does not match, which only happens after a reset.
func (r *Reactions) Resolve(target domain.Target, seq int) (reactionMutation, bool) {
	m, ok := r.inflight[target]
	if !ok || m.Seq != seq {
		return reactionMutation{}, false
	}
	delete(r.inflight, target)
	return m, true
}

// Touched reports whether target has been changed locally since the last
// reset. A reaction lookup issued before then is stale for it.
func (r Reactions) Touched(target domain.Target) bool {
	return r.touched[target]
}

// InFlight reports whether a request for target is running.
func (r Reactions) InFlight(target domain.Target) bool {
	_, ok := r.inflight[target]
	return ok
}

// Phase derives the display phase of target from its applied reaction.
func (r Reactions) Phase(target domain.Target, applied domain.ReactionKind) ReactionPhase {
	if m, ok := r.inflight[target]; ok {
		if m.Op == opClear {
			return ReactionPendingClear
		}
		return ReactionPendingSet
	}
	if applied != "" {
		return ReactionSet
	}
	return ReactionNone
}

// applyToComment applies the optimistic side of m.
func (m reactionMutation) applyToComment(c *domain.Comment) {
	c.MyReaction = m.To
	c.Reacted = m.To != ""
	c.ReactionCount = max(c.ReactionCount+m.Delta, 0)
}

// rollbackComment undoes m.
func (m reactionMutation) rollbackComment(c *domain.Comment) {
	c.MyReaction = m.From
	c.Reacted = m.From != ""
	c.ReactionCount = max(c.ReactionCount-m.Delta, 0)
}

func (m reactionMutation) applyToPost(p *domain.Post) {
	p.MyReaction = m.To
	p.ReactionCount = max(p.ReactionCount+m.Delta, 0)
}

func (m reactionMutation) rollbackPost(p *domain.Post) {
	p.MyReaction = m.From
	p.ReactionCount = max(p.ReactionCount-m.Delta, 0)
}
