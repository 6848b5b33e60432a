package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/feedthread/domain"
)

// reactionService implements app.ReactionService over the REST API.
type reactionService struct {
	client *Client
}

// NewReactionService creates a ReactionService backed by the REST API.
func NewReactionService(client *Client) *reactionService {
	return &reactionService{client: client}
}

type wireReaction struct {
	UserID flexID `json:"userId"`
	Target flexID `json:"target"`
	PostID flexID `json:"postId"`
	Type   string `json:"type"`
}

func (s *reactionService) PostReactions(ctx context.Context, postID string) ([]domain.Reaction, error) {
	data, err := s.client.Get(ctx, "/api/reactions?target="+url.QueryEscape(postID))
	if err != nil {
		return nil, fmt.Errorf("fetching reactions: %w", err)
	}
	var resp struct {
		Content []wireReaction `json:"content"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing reactions: %w", err)
	}
	out := make([]domain.Reaction, 0, len(resp.Content))
	for _, w := range resp.Content {
		kind, ok := domain.ParseReactionKind(w.Type)
		if !ok {
			continue
		}
		out = append(out, domain.Reaction{
			UserID: string(w.UserID),
			Target: domain.PostTarget(postID),
			Kind:   kind,
		})
	}
	return out, nil
}

func (s *reactionService) React(ctx context.Context, postID string, kind domain.ReactionKind) error {
	_, err := s.client.PostJSON(ctx, "/api/reactions", map[string]string{
		"target": postID,
		"type":   string(kind),
	})
	if err != nil {
		return fmt.Errorf("reacting to post: %w", err)
	}
	return nil
}

func (s *reactionService) Unreact(ctx context.Context, postID string) error {
	_, err := s.client.Delete(ctx, "/api/reactions/"+url.PathEscape(postID))
	if err != nil {
		return fmt.Errorf("removing post reaction: %w", err)
	}
	return nil
}

func (s *reactionService) ToggleCommentReaction(ctx context.Context, commentID string, kind domain.ReactionKind) error {
	_, err := s.client.PutJSON(ctx, "/api/comment-reactions", map[string]string{
		"commentId": commentID,
		"type":      string(kind),
	})
	if err != nil {
		return fmt.Errorf("toggling comment reaction: %w", err)
	}
	return nil
}
