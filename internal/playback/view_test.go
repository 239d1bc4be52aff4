package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65 * time.Second, "1:05"},
		{59*time.Second + 999*time.Millisecond, "0:59"},
		{3600 * time.Second, "60:00"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTime(tt.d); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestSeekControl_Ratio(t *testing.T) {
	tests := []struct {
		name string
		s    SeekControl
		want float64
	}{
		{"unknown duration", SeekControl{}, 0},
		{"half", SeekControl{Value: 30 * time.Second, Max: time.Minute}, 0.5},
		{"end", SeekControl{Value: time.Minute, Max: time.Minute}, 1},
		{"overflow clamps", SeekControl{Value: 2 * time.Minute, Max: time.Minute}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.s.Ratio(), 1e-9)
		})
	}
}

func TestRender(t *testing.T) {
	c, m := mounted(t, false)
	c.SetCaption("Voice note from Sam")

	v := c.Render()
	assert.Equal(t, "..", v.Icon, "loading glyph while loading without intent")
	assert.Equal(t, "0:00 / 0:00", v.Time)
	assert.Equal(t, "Voice note from Sam", v.Caption)

	c.Handle(m.Ready(65 * time.Second))
	c.Handle(m.TimeUpdate(5 * time.Second))
	v = c.Render()
	assert.Equal(t, ">", v.Icon)
	assert.Equal(t, "Play", v.ToggleLabel)
	assert.Equal(t, "0:05 / 1:05", v.Time)
	assert.Equal(t, SeekControl{Value: 5 * time.Second, Min: 0, Max: 65 * time.Second, Step: time.Second}, v.Seek)
	assert.False(t, v.Disabled)

	c.TogglePlayPause()
	v = c.Render()
	assert.Equal(t, "||", v.Icon)
	assert.Equal(t, "Pause", v.ToggleLabel)
	assert.True(t, v.Playing)
}

func TestRender_Errors(t *testing.T) {
	c, m := mounted(t, false)
	c.Handle(m.LoadError(errors.New("connection refused\nmore detail")))

	v := c.Render()
	assert.Equal(t, "!", v.Icon)
	assert.Equal(t, "Retry", v.ToggleLabel)
	assert.Equal(t, "Failed to load audio: connection refused", v.Error)

	c2, m2 := ready(t, false, time.Minute)
	c2.Handle(m2.PlaybackError(errors.New("no audio device")))
	assert.Equal(t, "Failed to start playback: no audio device", c2.Render().Error)
}
