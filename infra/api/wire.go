package api

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/domain"
)

// flexID accepts identifiers sent either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type wireAuthor struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// wireComment is the comment shape the backend emits. Older endpoints name
// the identifier "commentId", newer ones "id"; both are accepted.
type wireComment struct {
	ID            flexID      `json:"id"`
	CommentID     flexID      `json:"commentId"`
	PostID        flexID      `json:"postId"`
	ParentID      flexID      `json:"parentId"`
	Content       string      `json:"content"`
	ImageURL      string      `json:"imageUrl"`
	Author        *wireAuthor `json:"author"`
	UserID        flexID      `json:"userId"`
	UserName      string      `json:"userName"`
	UserAvatar    string      `json:"userAvatar"`
	CreatedAt     string      `json:"createdAt"`
	Edited        bool        `json:"edited"`
	IsEdited      bool        `json:"isEdited"`
	TotalChildren int         `json:"totalChildren"`
	ReactionCount int         `json:"reactionCount"`
	Reacted       bool        `json:"reacted"`
	ReactionType  string      `json:"reactionType"`
}

func (w wireComment) canonicalID() string {
	if w.ID != "" {
		return string(w.ID)
	}
	return string(w.CommentID)
}

func (w wireComment) toDomain() (domain.Comment, error) {
	id := w.canonicalID()
	if id == "" {
		return domain.Comment{}, domain.ErrMissingID
	}
	author := domain.Author{
		ID:        string(w.UserID),
		Name:      w.UserName,
		AvatarURL: w.UserAvatar,
	}
	if w.Author != nil {
		author.ID = firstNonEmpty(string(w.Author.ID), author.ID)
		author.Name = firstNonEmpty(w.Author.FullName, w.Author.Name, author.Name)
		author.AvatarURL = firstNonEmpty(w.Author.AvatarURL, author.AvatarURL)
	}
	author.Name = sanitizeForTerminal(author.Name)

	c := domain.Comment{
		ID:            id,
		PostID:        string(w.PostID),
		ParentID:      string(w.ParentID),
		Content:       stripHTML(w.Content),
		ImageURL:      strings.TrimSpace(w.ImageURL),
		Author:        author,
		CreatedAt:     parseTime(w.CreatedAt),
		Edited:        w.Edited || w.IsEdited,
		ReplyCount:    max(w.TotalChildren, 0),
		ReactionCount: max(w.ReactionCount, 0),
		Reacted:       w.Reacted,
	}
	if kind, ok := domain.ParseReactionKind(w.ReactionType); ok && c.Reacted {
		c.MyReaction = kind
	} else if c.Reacted {
		c.MyReaction = domain.DefaultReaction
	}
	return c, nil
}

// mapComments converts a page of wire records, dropping records without an id.
func mapComments(in []wireComment) []domain.Comment {
	out := make([]domain.Comment, 0, len(in))
	for _, w := range in {
		c, err := w.toDomain()
		if err != nil {
			log.Warn().Str("content", truncate(w.Content, 40)).Msg("dropping comment without id")
			continue
		}
		out = append(out, c)
	}
	return out
}

type wirePost struct {
	ID            flexID      `json:"id"`
	PostID        flexID      `json:"postId"`
	GroupID       flexID      `json:"groupId"`
	PageID        flexID      `json:"pageId"`
	Content       string      `json:"content"`
	ImageURL      string      `json:"imageUrl"`
	Author        *wireAuthor `json:"author"`
	CreatedAt     string      `json:"createdAt"`
	CommentCount  int         `json:"commentCount"`
	ReactionCount int         `json:"reactionCount"`
	ReactionType  string      `json:"reactionType"`
}

func (w wirePost) toDomain(currentUserID string) (domain.Post, error) {
	id := firstNonEmpty(string(w.ID), string(w.PostID))
	if id == "" {
		return domain.Post{}, domain.ErrMissingID
	}
	p := domain.Post{
		ID:            id,
		GroupID:       string(w.GroupID),
		PageID:        string(w.PageID),
		Content:       stripHTML(w.Content),
		ImageURL:      strings.TrimSpace(w.ImageURL),
		CreatedAt:     parseTime(w.CreatedAt),
		CommentCount:  max(w.CommentCount, 0),
		ReactionCount: max(w.ReactionCount, 0),
	}
	if w.Author != nil {
		p.Author = domain.Author{
			ID:        string(w.Author.ID),
			Name:      sanitizeForTerminal(firstNonEmpty(w.Author.FullName, w.Author.Name)),
			AvatarURL: w.Author.AvatarURL,
		}
	}
	if kind, ok := domain.ParseReactionKind(w.ReactionType); ok {
		p.MyReaction = kind
	}
	p.IsOwn = currentUserID != "" && p.Author.ID == currentUserID
	return p, nil
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// stripHTML removes HTML tags and decodes common entities.
// Good enough for terminal display; not a security boundary.
var (
	htmlTagRe   = regexp.MustCompile(`(?is)<script.*?</script>|<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
)

func stripHTML(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return sanitizeForTerminal(strings.TrimSpace(html.UnescapeString(s)))
}

// sanitizeForTerminal drops escape sequences and control characters that
// could repaint the screen. Newlines and tabs survive.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
