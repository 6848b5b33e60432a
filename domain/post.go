package domain

import "time"

// Post is a single entry in a group or page feed.
type Post struct {
	ID            string
	GroupID       string
	PageID        string
	Author        Author
	Content       string
	ImageURL      string
	CreatedAt     time.Time
	CommentCount  int
	ReactionCount int
	MyReaction    ReactionKind // Empty when the current user has not reacted
	IsOwn         bool
}

// Reacted reports whether the current user holds a reaction on the post.
func (p Post) Reacted() bool {
	return p.MyReaction != ""
}

// User is the authenticated account.
type User struct {
	ID   string
	Name string
}
