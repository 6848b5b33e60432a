package domain

import "strings"

// ReactionKind is one of a closed set of reaction types.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "LIKE"
	ReactionLove  ReactionKind = "LOVE"
	ReactionHaha  ReactionKind = "HAHA"
	ReactionWow   ReactionKind = "WOW"
	ReactionSad   ReactionKind = "SAD"
	ReactionAngry ReactionKind = "ANGRY"
)

// DefaultReaction is applied when the action button is clicked directly.
const DefaultReaction = ReactionLike

// ReactionKinds lists every kind in picker order.
var ReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

// ParseReactionKind maps a wire value to a known kind.
func ParseReactionKind(s string) (ReactionKind, bool) {
	k := ReactionKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ReactionKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Icon returns the glyph used to display the kind.
func (k ReactionKind) Icon() string {
	switch k {
	case ReactionLike:
		return "👍"
	case ReactionLove:
		return "❤"
	case ReactionHaha:
		return "😆"
	case ReactionWow:
		return "😮"
	case ReactionSad:
		return "😢"
	case ReactionAngry:
		return "😠"
	}
	return "♡"
}

// Label returns a short human label.
func (k ReactionKind) Label() string {
	if k == "" {
		return "React"
	}
	s := strings.ToLower(string(k))
	return strings.ToUpper(s[:1]) + s[1:]
}

// Reaction is one user's typed endorsement of a post or comment.
type Reaction struct {
	UserID string
	Target Target
	Kind   ReactionKind
}

// TargetKind distinguishes posts from comments.
type TargetKind int

const (
	TargetPost TargetKind = iota
	TargetComment
)

// Target is something that can carry reactions.
type Target struct {
	Kind TargetKind
	ID   string
}

// PostTarget builds a Target for a post.
func PostTarget(id string) Target { return Target{Kind: TargetPost, ID: id} }

// CommentTarget builds a Target for a comment.
func CommentTarget(id string) Target { return Target{Kind: TargetComment, ID: id} }

func (t Target) String() string {
	if t.Kind == TargetComment {
		return "comment:" + t.ID
	}
	return "post:" + t.ID
}
