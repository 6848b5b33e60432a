package thread

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/domain"
)

// Tree caches the ordered comment list of every fetched scope.
// It never de-duplicates across pages: page 0 replaces, later pages append.
type Tree struct {
	lists map[domain.Scope][]domain.Comment
	gens  map[domain.Scope]int
}

func newTree() Tree {
	return Tree{
		lists: make(map[domain.Scope][]domain.Comment),
		gens:  make(map[domain.Scope]int),
	}
}

// MergePage stores one fetched page. Records without an id are dropped here
// as well as at the API boundary.
func (t *Tree) MergePage(s domain.Scope, comments []domain.Comment, page int) {
	if t.lists == nil {
		t.lists = make(map[domain.Scope][]domain.Comment)
	}
	clean := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ID == "" {
			log.Warn().Str("scope", s.Key()).Int("page", page).Msg("dropping comment without id")
			continue
		}
		clean = append(clean, c)
	}
	if page == 0 {
		if t.gens == nil {
			t.gens = make(map[domain.Scope]int)
		}
		t.gens[s]++
		t.lists[s] = clean
		return
	}
	t.lists[s] = append(t.lists[s], clean...)
}

// Get returns a copy of the scope's list, or nil if it was never fetched.
func (t Tree) Get(s domain.Scope) []domain.Comment {
	return slices.Clone(t.lists[s])
}

// Fetched reports whether any page of s has been merged.
func (t Tree) Fetched(s domain.Scope) bool {
	_, ok := t.lists[s]
	return ok
}

// Gen counts how many times the list of s was replaced by a page 0.
func (t Tree) Gen(s domain.Scope) int {
	return t.gens[s]
}

// Len returns the number of cached comments in s.
func (t Tree) Len(s domain.Scope) int {
	return len(t.lists[s])
}

// Patch applies fn to the comment with id in s. It reports whether the
// comment was found.
func (t *Tree) Patch(s domain.Scope, id string, fn func(*domain.Comment)) bool {
	list := t.lists[s]
	for i := range list {
		if list[i].ID == id {
			fn(&list[i])
			return true
		}
	}
	return false
}

// Find locates a comment in any scope.
func (t Tree) Find(id string) (domain.Comment, domain.Scope, bool) {
	for s, list := range t.lists {
		for _, c := range list {
			if c.ID == id {
				return c, s, true
			}
		}
	}
	return domain.Comment{}, domain.Scope{}, false
}
