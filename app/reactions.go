package app

import (
	"context"

	"github.com/CrestNiraj12/feedthread/domain"
)

// ReactionService creates and removes reactions.
type ReactionService interface {
	// PostReactions lists reactions on a post; used to derive the current user's reaction.
	PostReactions(ctx context.Context, postID string) ([]domain.Reaction, error)

	// React sets the current user's reaction on a post, replacing any previous kind.
	React(ctx context.Context, postID string, kind domain.ReactionKind) error

	// Unreact removes the current user's reaction from a post.
	Unreact(ctx context.Context, postID string) error

	// ToggleCommentReaction flips the current user's reaction on a comment.
	ToggleCommentReaction(ctx context.Context, commentID string, kind domain.ReactionKind) error
}
