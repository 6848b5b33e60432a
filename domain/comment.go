package domain

import "time"

// CommentCharLimit is the maximum accepted length of a comment body.
const CommentCharLimit = 2000

// Author identifies who wrote a post or comment.
type Author struct {
	ID        string
	Name      string
	AvatarURL string
}

// Comment is a top-level comment on a post or a direct reply to one.
// ParentID is empty for top-level comments; threads are two levels deep.
type Comment struct {
	ID            string
	PostID        string
	ParentID      string
	Content       string
	ImageURL      string
	Author        Author
	CreatedAt     time.Time
	Edited        bool
	ReplyCount    int
	ReactionCount int
	Reacted       bool
	MyReaction    ReactionKind // Empty unless Reacted
}

// IsReply reports whether the comment answers another comment.
func (c Comment) IsReply() bool {
	return c.ParentID != ""
}

// Scope returns the pagination scope the comment belongs to.
func (c Comment) Scope() Scope {
	if c.IsReply() {
		return RepliesScope(c.ParentID)
	}
	return RootScope(c.PostID)
}
