package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

// commentService implements app.CommentService over the REST API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the REST API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type commentPageResponse struct {
	Content    []wireComment `json:"content"`
	TotalPages int           `json:"totalPages"`
}

func (s *commentService) FetchComments(ctx context.Context, q app.CommentQuery) (app.CommentPage, error) {
	if strings.TrimSpace(q.Scope.ID) == "" {
		return app.CommentPage{}, fmt.Errorf("fetching comments: %w", domain.ErrMissingID)
	}
	v := url.Values{}
	switch q.Scope.Kind {
	case domain.ScopeReplies:
		v.Set("parentId", q.Scope.ID)
	default:
		v.Set("postId", q.Scope.ID)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("topLevelOnly", strconv.FormatBool(q.TopLevelOnly))

	data, err := s.client.Get(ctx, "/api/comments?"+v.Encode())
	if err != nil {
		return app.CommentPage{}, fmt.Errorf("fetching comments for %s page %d: %w", q.Scope, q.Page, err)
	}

	var resp commentPageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return app.CommentPage{}, fmt.Errorf("parsing comments: %w", err)
	}

	comments := mapComments(resp.Content)
	for i := range comments {
		// Replies often omit their parent; the scope implies it.
		if q.Scope.Kind == domain.ScopeReplies && comments[i].ParentID == "" {
			comments[i].ParentID = q.Scope.ID
		}
		if q.Scope.Kind == domain.ScopeRoot && comments[i].PostID == "" {
			comments[i].PostID = q.Scope.ID
		}
	}
	return app.CommentPage{Comments: comments, TotalPages: max(resp.TotalPages, 0)}, nil
}

type createCommentRequest struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

func (s *commentService) CreateComment(ctx context.Context, c app.NewComment) (domain.Comment, error) {
	content := strings.TrimSpace(c.Content)
	if content == "" && strings.TrimSpace(c.ImageURL) == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if len([]rune(content)) > domain.CommentCharLimit {
		return domain.Comment{}, domain.ErrCommentTooLong
	}

	data, err := s.client.PostJSON(ctx, "/api/comments", createCommentRequest{
		PostID:   c.PostID,
		Content:  content,
		ImageURL: c.ImageURL,
		ParentID: c.ParentID,
	})
	if err != nil {
		if c.ParentID != "" {
			return domain.Comment{}, fmt.Errorf("replying to comment: %w", err)
		}
		return domain.Comment{}, fmt.Errorf("posting comment: %w", err)
	}

	var w wireComment
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	created, err := w.toDomain()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	if created.ParentID == "" {
		created.ParentID = c.ParentID
	}
	if created.PostID == "" {
		created.PostID = c.PostID
	}
	return created, nil
}
