package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
)

// feedService implements app.FeedService over the REST API.
type feedService struct {
	client        *Client
	currentUserID string // Set after init to mark own posts.
}

// NewFeedService creates a FeedService. Pass currentUserID to mark the user's own posts.
func NewFeedService(client *Client, currentUserID string) *feedService {
	return &feedService{client: client, currentUserID: currentUserID}
}

func (s *feedService) FetchPosts(ctx context.Context, q app.FeedQuery) (app.PostPage, error) {
	v := url.Values{}
	switch q.Source.Kind {
	case "page":
		v.Set("pageId", q.Source.ID)
	default:
		v.Set("groupId", q.Source.ID)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))

	data, err := s.client.Get(ctx, "/api/posts?"+v.Encode())
	if err != nil {
		return app.PostPage{}, fmt.Errorf("fetching feed: %w", err)
	}

	var resp struct {
		Content    []wirePost `json:"content"`
		TotalPages int        `json:"totalPages"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return app.PostPage{}, fmt.Errorf("parsing feed: %w", err)
	}

	page := app.PostPage{TotalPages: max(resp.TotalPages, 0)}
	for _, w := range resp.Content {
		p, err := w.toDomain(s.currentUserID)
		if err != nil {
			log.Warn().Msg("dropping post without id")
			continue
		}
		page.Posts = append(page.Posts, p)
	}
	return page, nil
}
