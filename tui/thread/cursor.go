package thread

import (
	"fmt"

	"github.com/CrestNiraj12/feedthread/domain"
)

// scopeCursor is the pagination state of one scope.
type scopeCursor struct {
	page       int  // Last page merged into the tree
	totalPages int  // As last reported by the server
	loaded     bool // At least one page has been merged
	loading    bool
	gen        int // Bumped by every page-0 request; older responses are stale
}

// Cursors tracks an independent pagination cursor per scope.
// Pages are requested strictly in order: page 0 (always allowed, resets the
// scope) or the page right after the last merged one.
type Cursors struct {
	byScope map[domain.Scope]*scopeCursor
}

func newCursors() Cursors {
	return Cursors{byScope: make(map[domain.Scope]*scopeCursor)}
}

func (c *Cursors) get(s domain.Scope) *scopeCursor {
	if c.byScope == nil {
		c.byScope = make(map[domain.Scope]*scopeCursor)
	}
	cur, ok := c.byScope[s]
	if !ok {
		cur = &scopeCursor{}
		c.byScope[s] = cur
	}
	return cur
}

func (c Cursors) peek(s domain.Scope) (scopeCursor, bool) {
	cur, ok := c.byScope[s]
	if !ok {
		return scopeCursor{}, false
	}
	return *cur, true
}

// Begin marks a fetch of page for s as in flight and returns the generation
// the response must carry. Page 0 may always be requested; it supersedes any
// fetch already in flight for the scope.
func (c *Cursors) Begin(s domain.Scope, page int) (int, error) {
	cur := c.get(s)
	if page == 0 {
		cur.gen++
		cur.loading = true
		return cur.gen, nil
	}
	if cur.loading {
		return 0, fmt.Errorf("%s page %d: %w", s, page, domain.ErrScopeBusy)
	}
	if !cur.loaded || page != cur.page+1 {
		return 0, fmt.Errorf("%s page %d after %d: %w", s, page, cur.page, domain.ErrPageOutOfOrder)
	}
	cur.loading = true
	return cur.gen, nil
}

// Complete records a successful fetch. It reports false when the response
// belongs to a superseded generation and must be discarded.
func (c *Cursors) Complete(s domain.Scope, page, gen, totalPages int) bool {
	cur, ok := c.byScope[s]
	if !ok || gen != cur.gen || !cur.loading {
		return false
	}
	if page != 0 && page != cur.page+1 {
		return false
	}
	cur.page = page
	cur.totalPages = max(totalPages, 0)
	cur.loaded = true
	cur.loading = false
	return true
}

// Fail clears the in-flight flag without moving the cursor. It reports false
// for superseded generations.
func (c *Cursors) Fail(s domain.Scope, gen int) bool {
	cur, ok := c.byScope[s]
	if !ok || gen != cur.gen || !cur.loading {
		return false
	}
	cur.loading = false
	return true
}

// HasMore reports whether a page after the last merged one exists.
func (c Cursors) HasMore(s domain.Scope) bool {
	cur, ok := c.peek(s)
	return ok && cur.loaded && cur.page < cur.totalPages-1
}

// Loading reports whether a fetch is in flight for s.
func (c Cursors) Loading(s domain.Scope) bool {
	cur, _ := c.peek(s)
	return cur.loading
}

// Loaded reports whether s has ever merged a page.
func (c Cursors) Loaded(s domain.Scope) bool {
	cur, _ := c.peek(s)
	return cur.loaded
}

// NextPage returns the page a "load more" would request.
func (c Cursors) NextPage(s domain.Scope) int {
	cur, ok := c.peek(s)
	if !ok || !cur.loaded {
		return 0
	}
	return cur.page + 1
}

// Page returns the last merged page and the reported total.
func (c Cursors) Page(s domain.Scope) (page, totalPages int) {
	cur, _ := c.peek(s)
	return cur.page, cur.totalPages
}
