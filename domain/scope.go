package domain

// ScopeKind says whether a scope holds a post's top-level comments or one comment's replies.
type ScopeKind int

const (
	ScopeRoot ScopeKind = iota
	ScopeReplies
)

// Scope is a pagination domain: root(postID) or replies(commentID).
type Scope struct {
	Kind ScopeKind
	ID   string
}

// RootScope is the top-level comment list of a post.
func RootScope(postID string) Scope { return Scope{Kind: ScopeRoot, ID: postID} }

// RepliesScope is the direct-reply list of a comment.
func RepliesScope(commentID string) Scope { return Scope{Kind: ScopeReplies, ID: commentID} }

// IsRoot reports whether s is a post root scope.
func (s Scope) IsRoot() bool { return s.Kind == ScopeRoot }

// Key returns a stable string form, used in logs and wire queries.
func (s Scope) Key() string {
	if s.Kind == ScopeReplies {
		return "replies:" + s.ID
	}
	return "root:" + s.ID
}

func (s Scope) String() string { return s.Key() }
