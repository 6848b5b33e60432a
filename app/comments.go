package app

import (
	"context"

	"github.com/CrestNiraj12/feedthread/domain"
)

// CommentQuery selects one page of a scope.
type CommentQuery struct {
	Scope        domain.Scope
	Page         int
	Size         int
	TopLevelOnly bool
}

// CommentPage is one page of comments plus the server-reported page count.
type CommentPage struct {
	Comments   []domain.Comment
	TotalPages int
}

// NewComment is the payload for a top-level comment or a reply.
type NewComment struct {
	PostID   string
	ParentID string // Empty for a top-level comment
	Content  string
	ImageURL string
}

// CommentService reads and writes comments on a social backend.
type CommentService interface {
	// FetchComments returns one page of a scope. Records without an id are dropped.
	FetchComments(ctx context.Context, q CommentQuery) (CommentPage, error)

	// CreateComment publishes a comment or reply.
	CreateComment(ctx context.Context, c NewComment) (domain.Comment, error)
}
