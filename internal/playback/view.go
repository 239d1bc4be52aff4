package playback

import (
	"fmt"
	"time"

	"github.com/llehouerou/wavenote/internal/errmsg"
	"github.com/llehouerou/wavenote/internal/player"
)

// SeekStep is the granularity of the seek control.
const SeekStep = time.Second

// SeekControl describes the range input of a control.
type SeekControl struct {
	Value time.Duration
	Min   time.Duration
	Max   time.Duration
	Step  time.Duration
}

// Ratio returns the filled fraction of the control in [0, 1].
func (s SeekControl) Ratio() float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return min(max(float64(s.Value-s.Min)/float64(span), 0), 1)
}

// View is everything needed to draw one control.
type View struct {
	Icon        string // toggle glyph
	ToggleLabel string // "Play" or "Pause"
	Time        string // "M:SS / M:SS"
	Seek        SeekControl
	Disabled    bool
	Playing     bool
	Phase       Phase
	Caption     string
	Error       string
}

// FormatTime formats d as minutes and zero-padded seconds. Minutes are not
// wrapped into hours: an hour renders as "60:00".
func FormatTime(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// Render projects the current state into a View.
func (c *Controller) Render() View {
	s := c.state
	v := View{
		Time: FormatTime(s.Position) + " / " + FormatTime(s.Duration),
		Seek: SeekControl{
			Value: s.Position,
			Min:   0,
			Max:   s.Duration,
			Step:  SeekStep,
		},
		Disabled: s.Disabled(),
		Playing:  s.Playing,
		Phase:    s.Phase,
		Caption:  c.caption,
		Error:    errorText(s.Err),
	}

	switch {
	case s.Phase == PhaseFailed:
		v.Icon = c.icons.Failed()
		v.ToggleLabel = "Retry"
	case s.Phase == PhaseLoading && !s.Playing:
		v.Icon = c.icons.Loading()
		v.ToggleLabel = "Play"
	case s.Playing:
		v.Icon = c.icons.Pause()
		v.ToggleLabel = "Pause"
	default:
		v.Icon = c.icons.Play()
		v.ToggleLabel = "Play"
	}
	return v
}

func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case player.IsLoadError(err):
		return errmsg.FirstLine(errmsg.Format(errmsg.OpMediaLoad, err))
	default:
		return errmsg.FirstLine(errmsg.Format(errmsg.OpPlaybackStart, err))
	}
}
