package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
)

func TestCommentService_FetchRoot_RequestShapeAndMapping(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		_, _ = io.WriteString(w, `{
			"content": [
				{"id": 11, "content": "<p>first &amp; best</p>", "totalChildren": 2, "reactionCount": 3,
				 "reacted": true, "reactionType": "love", "createdAt": "2024-03-01T10:00:00Z",
				 "author": {"id": "u1", "name": "ann", "fullName": "Ann Lee"}},
				{"commentId": "12", "content": "second", "userId": 7, "userName": "bob", "isEdited": true},
				{"content": "no id at all"}
			],
			"totalPages": 3
		}`)
	})

	svc := NewCommentService(newTestClient(h))
	page, err := svc.FetchComments(context.Background(), app.CommentQuery{
		Scope:        domain.RootScope("p1"),
		Page:         1,
		Size:         10,
		TopLevelOnly: true,
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotPath != "/api/comments" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery.Get("postId") != "p1" || gotQuery.Get("page") != "1" || gotQuery.Get("size") != "10" || gotQuery.Get("topLevelOnly") != "true" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if gotQuery.Has("parentId") {
		t.Fatalf("root fetch must not send parentId")
	}

	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Comments) != 2 {
		t.Fatalf("expected id-less record to be dropped, got %d comments", len(page.Comments))
	}

	first := page.Comments[0]
	if first.ID != "11" || first.Content != "first & best" || first.ReplyCount != 2 || first.ReactionCount != 3 {
		t.Fatalf("unexpected first comment: %+v", first)
	}
	if !first.Reacted || first.MyReaction != domain.ReactionLove {
		t.Fatalf("unexpected reaction state: %+v", first)
	}
	if first.Author.Name != "Ann Lee" || first.PostID != "p1" {
		t.Fatalf("unexpected author/post: %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("expected parsed timestamp")
	}

	second := page.Comments[1]
	if second.ID != "12" || second.Author.ID != "7" || second.Author.Name != "bob" || !second.Edited {
		t.Fatalf("unexpected second comment: %+v", second)
	}
}

func TestCommentService_FetchReplies_FillsParent(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, `{"content":[{"id":"r1","content":"hi"}],"totalPages":1}`)
	})

	svc := NewCommentService(newTestClient(h))
	page, err := svc.FetchComments(context.Background(), app.CommentQuery{
		Scope: domain.RepliesScope("c9"),
		Size:  5,
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotQuery.Get("parentId") != "c9" || gotQuery.Has("postId") {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if len(page.Comments) != 1 || page.Comments[0].ParentID != "c9" {
		t.Fatalf("expected reply parent to be filled from scope: %+v", page.Comments)
	}
}

func TestCommentService_FetchRequiresScopeID(t *testing.T) {
	svc := NewCommentService(newTestClient(http.NotFoundHandler()))
	_, err := svc.FetchComments(context.Background(), app.CommentQuery{Scope: domain.RootScope("")})
	if !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestCommentService_CreateReply(t *testing.T) {
	var body map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/comments" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"commentId": 99, "content": "thanks"}`)
	})

	svc := NewCommentService(newTestClient(h))
	got, err := svc.CreateComment(context.Background(), app.NewComment{
		PostID:   "p1",
		ParentID: "c1",
		Content:  "  thanks  ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if body["postId"] != "p1" || body["parentId"] != "c1" || body["content"] != "thanks" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["imageUrl"]; ok {
		t.Fatalf("imageUrl should be omitted when empty")
	}
	if got.ID != "99" || got.ParentID != "c1" || got.PostID != "p1" {
		t.Fatalf("unexpected created comment: %+v", got)
	}
}

func TestCommentService_CreateValidatesDraft(t *testing.T) {
	called := false
	svc := NewCommentService(newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	if _, err := svc.CreateComment(context.Background(), app.NewComment{PostID: "p1", Content: "   "}); !errors.Is(err, domain.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	long := make([]rune, domain.CommentCharLimit+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := svc.CreateComment(context.Background(), app.NewComment{PostID: "p1", Content: string(long)}); !errors.Is(err, domain.ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}
	if called {
		t.Fatalf("invalid drafts must not reach the server")
	}
}
