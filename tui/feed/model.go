package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

const (
	defaultPageSize = 20
	// prefetchTrigger is how close to the end of the list the cursor gets
	// before the next page is requested.
	prefetchTrigger = 3
)

// --- Messages ---

// PostsLoadedMsg carries one page of posts.
type PostsLoadedMsg struct {
	ReqSeq     int
	Page       int
	Posts      []domain.Post
	TotalPages int
}

// PostsErrorMsg reports a failed page fetch.
type PostsErrorMsg struct {
	ReqSeq int
	Page   int
	Err    error
}

// OpenThreadMsg asks the root model to open the comment dialog for Post.
type OpenThreadMsg struct {
	Post domain.Post
}

// --- Model ---

// Model is the paged post list of one group or page.
type Model struct {
	service  app.FeedService
	source   app.FeedSource
	pageSize int

	posts       []domain.Post
	cursor      int
	startIndex  int
	page        int // Last merged page
	totalPages  int
	loading     bool
	loadingMore bool
	err         error
	reqSeq      int
	notice      string

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a feed model for source.
func New(service app.FeedService, source app.FeedSource, pageSize int) Model {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		service:  service,
		source:   source,
		pageSize: pageSize,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		width:    80,
		height:   24,
		loading:  true,
		reqSeq:   1,
	}
}

// Init starts the first page fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPosts(m.reqSeq, 0), m.spinner.Tick)
}

// Refresh restarts the list from page 0. Responses of earlier requests are
// dropped by sequence number.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.loadingMore = false
	m.err = nil
	m.reqSeq++
	return m.fetchPosts(m.reqSeq, 0)
}

// Posts returns the loaded posts.
func (m Model) Posts() []domain.Post { return m.posts }

// Cursor returns the selected index.
func (m Model) Cursor() int { return m.cursor }

// Loading reports whether the first page is being fetched.
func (m Model) Loading() bool { return m.loading }

// Err returns the last fetch error, if any.
func (m Model) Err() error { return m.err }

// Source returns the listed group or page.
func (m Model) Source() app.FeedSource { return m.source }

// HasMore reports whether further pages exist.
func (m Model) HasMore() bool { return m.page < m.totalPages-1 }

// SelectedPost returns the highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}
