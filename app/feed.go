package app

import (
	"context"

	"github.com/CrestNiraj12/feedthread/domain"
)

// FeedSource names the group or page whose posts are listed.
type FeedSource struct {
	Kind string // "group" or "page"
	ID   string
}

// FeedQuery selects one page of posts.
type FeedQuery struct {
	Source FeedSource
	Page   int
	Size   int
}

// PostPage is one page of posts plus the server-reported page count.
type PostPage struct {
	Posts      []domain.Post
	TotalPages int
}

// FeedService fetches posts of a group or page.
type FeedService interface {
	FetchPosts(ctx context.Context, q FeedQuery) (PostPage, error)
}
