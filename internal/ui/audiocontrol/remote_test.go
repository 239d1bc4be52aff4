package audiocontrol

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/player"
	"github.com/llehouerou/wavenote/internal/ui/testutil"
)

func TestRemote_PlayAndPauseAreIdempotent(t *testing.T) {
	h, mock := newHarness(t, note, false)
	ready(h, mock, time.Minute)

	h.SendMsg(RemoteMsg{Command: RemotePlay})
	h.SendMsg(RemoteMsg{Command: RemotePlay})
	assert.Equal(t, 1, mock.Count(player.CmdPlay))

	h.SendMsg(RemoteMsg{Command: RemotePause})
	h.SendMsg(RemoteMsg{Command: RemotePause})
	assert.Equal(t, 1, mock.Count(player.CmdPause))
}

func TestRemote_Toggle(t *testing.T) {
	h, mock := newHarness(t, note, false)
	ready(h, mock, time.Minute)

	h.SendMsg(RemoteMsg{Command: RemoteToggle})
	assert.True(t, model(h).Controller().State().Playing)
	assert.Equal(t, 1, mock.Count(player.CmdPlay))
}

func TestRemote_Seek(t *testing.T) {
	h, mock := newHarness(t, note, false)
	ready(h, mock, time.Minute)

	h.SendMsg(RemoteMsg{Command: RemoteSeekTo, Offset: 20 * time.Second})
	h.SendMsg(RemoteMsg{Command: RemoteSeekBy, Offset: 15 * time.Second})
	h.SendMsg(RemoteMsg{Command: RemoteSeekBy, Offset: -time.Hour})

	assert.Equal(t, []time.Duration{20 * time.Second, 35 * time.Second, 0}, mock.SeekCalls())
}

func TestRemote_PlayRetriesFailedLoad(t *testing.T) {
	h, mock := newHarness(t, note, false)
	h.SendMsg(NotificationMsg{Notification: mock.LoadError(errors.New("404"))})
	require.Equal(t, playback.PhaseFailed, model(h).Controller().State().Phase)

	h.SendMsg(RemoteMsg{Command: RemotePlay})
	assert.Equal(t, playback.PhaseLoading, model(h).Controller().State().Phase)
	assert.True(t, model(h).Controller().State().Playing)
}

func TestRemote_Open(t *testing.T) {
	h, mock := newHarness(t, note, false)

	h.SendMsg(RemoteMsg{Command: RemoteOpen})
	require.Len(t, mock.Loads(), 1, "empty URL is ignored")

	h.SendMsg(RemoteMsg{Command: RemoteOpen, URL: "https://cdn.example/v/9.ogg"})
	require.Len(t, mock.Loads(), 2)
	assert.Equal(t, "https://cdn.example/v/9.ogg", mock.Loads()[1].URL)
}

func TestRemote_OpenUsesDescribe(t *testing.T) {
	mock := player.NewMock()
	ctrl := playback.New(mock)
	ctrl.Mount(note, false)
	t.Cleanup(func() { _ = ctrl.Unmount() })

	m := New(ctrl, Options{Describe: func(src player.Source) string { return "Voice note " + src.Name() }})
	next, _ := m.Update(RemoteMsg{Command: RemoteOpen, URL: "/notes/a.flac"})

	assert.Equal(t, "Voice note a.flac", next.(Model).Controller().Caption())
}

func TestOpen_BadgesUnheardNotes(t *testing.T) {
	mock := player.NewMock()
	ctrl := playback.New(mock, playback.WithCaption(note.Name()))
	ctrl.Mount(note, false)
	t.Cleanup(func() { _ = ctrl.Unmount() })

	m := New(ctrl, Options{Heard: func(src player.Source) bool { return src.URL == "/notes/old.flac" }})
	assert.True(t, m.Unheard())
	assert.Contains(t, testutil.FindLine(testutil.StripANSI(m.View()), note.Name()), newBadge)

	next, _ := m.Update(RemoteMsg{Command: RemoteOpen, URL: "/notes/old.flac"})
	assert.False(t, next.(Model).Unheard())

	next, _ = next.Update(RemoteMsg{Command: RemoteOpen, URL: "/notes/b.flac"})
	assert.True(t, next.(Model).Unheard())
}

func TestPlaying_ClearsUnheardBadge(t *testing.T) {
	mock := player.NewMock()
	ctrl := playback.New(mock, playback.WithCaption(note.Name()))
	ctrl.Mount(note, false)
	t.Cleanup(func() { _ = ctrl.Unmount() })

	m := New(ctrl, Options{Heard: func(player.Source) bool { return false }})
	require.True(t, m.Unheard())

	next, _ := m.Update(RemoteMsg{Command: RemoteToggle})
	assert.True(t, next.(Model).Unheard(), "play intent alone keeps the badge")

	next, _ = next.Update(NotificationMsg{Notification: mock.Ready(time.Minute)})
	assert.False(t, next.(Model).Unheard())
	assert.NotContains(t, testutil.StripANSI(next.View()), newBadge)
}

func TestAutoPlay_KeepsBadgeUntilPlaying(t *testing.T) {
	mock := player.NewMock()
	ctrl := playback.New(mock, playback.WithCaption(note.Name()))
	ctrl.Mount(note, true)
	t.Cleanup(func() { _ = ctrl.Unmount() })

	m := New(ctrl, Options{Heard: func(player.Source) bool { return false }})
	require.True(t, ctrl.State().Playing)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.True(t, next.(Model).Unheard(), "badge survives while loading")

	next, _ = next.Update(NotificationMsg{Notification: mock.LoadError(errors.New("404"))})
	assert.True(t, next.(Model).Unheard(), "a note that never played stays unheard")
}

func TestOpen_WithoutHistoryNeverBadges(t *testing.T) {
	h, _ := newHarness(t, note, false)
	assert.False(t, model(h).Unheard())
}
