package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// SourceStyle styles the group/page badge shown next to the title.
	SourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// AuthorStyle styles author names.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// MetadataStyle styles counters and secondary labels.
	MetadataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8087A2"))

	// ContentStyle styles post and comment text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// SelectedStyle highlights the currently selected post.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// UnselectedStyle gives unselected posts a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// OwnBadgeStyle highlights posts that belong to the user.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true).
			MarginLeft(1)

	// SelectionBarStyle marks the selected row inside the thread.
	SelectionBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6600")).
				Bold(true)

	// ReactedStyle colors a reaction the user holds.
	ReactedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// PendingStyle dims actions waiting for the server.
	PendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Italic(true)

	// ActionStyle styles inline action buttons.
	ActionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8AADF4"))

	// PickerStyle frames the reaction picker panel.
	PickerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A97F")).
			Background(lipgloss.Color("#363A4F"))

	// ComposerStyle frames the reply composer.
	ComposerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8AADF4")).
			Padding(0, 1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
