package main

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/feedthread/app"
	"github.com/CrestNiraj12/feedthread/domain"
	"github.com/CrestNiraj12/feedthread/infra/bus"
	"github.com/CrestNiraj12/feedthread/tui/common"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name     string
		v, c, d  string
		module   string
		settings map[string]string
		want     [3]string
	}{
		{
			name: "ldflags win",
			v:    "1.2.0", c: "abc", d: "2024-01-01",
			module:   "v9.9.9",
			settings: map[string]string{"vcs.revision": "zzz"},
			want:     [3]string{"1.2.0", "abc", "2024-01-01"},
		},
		{
			name: "module and vcs fill defaults",
			v:    "dev", c: "none", d: "unknown",
			module:   "v0.3.1",
			settings: map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2024-05-01T10:00:00Z"},
			want:     [3]string{"v0.3.1", "0123456789ab", "2024-05-01T10:00:00Z"},
		},
		{
			name: "devel module ignored",
			v:    "dev", c: "none", d: "unknown",
			module: "(devel)",
			want:   [3]string{"dev", "none", "unknown"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.v, tc.c, tc.d, tc.module, tc.settings)
			require.Equal(t, tc.want, [3]string{v, c, d})
		})
	}
}

func TestResolveSource(t *testing.T) {
	s, err := resolveSource("page:p9", "group:g1", "group:g2")
	require.NoError(t, err)
	require.Equal(t, app.FeedSource{Kind: "page", ID: "p9"}, s)

	s, err = resolveSource("", "", "group:g2")
	require.NoError(t, err)
	require.Equal(t, app.FeedSource{Kind: "group", ID: "g2"}, s)

	_, err = resolveSource("", "", "")
	require.Error(t, err)

	_, err = resolveSource("channel:x", "", "")
	require.Error(t, err)
}

func TestCLI_VersionFlag(t *testing.T) {
	cliApp := newCLIApp()
	var out bytes.Buffer
	cliApp.Writer = &out
	require.NoError(t, cliApp.Run([]string{"feedthread", "--version"}))
	require.Contains(t, out.String(), "feedthread ")
	require.Contains(t, out.String(), "commit:")
}

func TestSubscribe_ForwardsBusEvents(t *testing.T) {
	events := bus.New()
	var got []tea.Msg
	for _, unsubscribe := range subscribe(events, func(m tea.Msg) { got = append(got, m) }) {
		defer unsubscribe()
	}

	events.Publish(app.Event{Topic: app.TopicNotice, Payload: app.Notice{Text: "Comment posted"}})
	events.Publish(app.Event{Topic: app.TopicPostChanged, Payload: domain.Post{ID: "p1"}})
	events.Publish(app.Event{Topic: app.TopicPostChanged, Payload: "not a post"})

	require.Equal(t, []tea.Msg{
		common.NoticeMsg{Notice: app.Notice{Text: "Comment posted"}},
		common.PostChangedMsg{Post: domain.Post{ID: "p1"}},
	}, got)
}
