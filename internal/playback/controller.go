package playback

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/icons"
	"github.com/llehouerou/wavenote/internal/player"
)

// ErrSeekOutOfRange is logged when a seek request is clamped.
var ErrSeekOutOfRange = errors.New("seek out of range")

// Controller owns the state of one player control and reconciles user
// intent with binding notifications.
//
// A Controller is not safe for concurrent use: commands and Handle must be
// called from a single event loop. Optimistic updates are overwritten by the
// next engine notification. Before Ready, play intent is recorded and
// replayed once the media is ready. After Unmount every call is ignored.
type Controller struct {
	binding player.Interface
	icons   icons.Provider
	caption string

	state     PlayerState
	autoPlay  bool
	unmounted bool

	observers map[int]func(PlayerState)
	nextObs   int
	onError   func(error)
	subs      []*Subscription
	done      chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithIcons sets the glyph provider used by Render.
func WithIcons(p icons.Provider) Option {
	return func(c *Controller) {
		if p != nil {
			c.icons = p
		}
	}
}

// WithCaption sets the caption rendered below the controls.
func WithCaption(caption string) Option {
	return func(c *Controller) { c.caption = caption }
}

// New creates a controller driving binding. The controller owns binding and
// disposes it on Unmount.
func New(binding player.Interface, opts ...Option) *Controller {
	c := &Controller{
		binding:   binding,
		icons:     icons.Current(),
		observers: make(map[int]func(PlayerState)),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notifications returns the binding's notification channel. Every value
// read from it should be passed to Handle.
func (c *Controller) Notifications() <-chan player.Notification {
	return c.binding.Notifications()
}

// Done is closed by Unmount.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns a snapshot of the player state.
func (c *Controller) State() PlayerState {
	return c.state
}

// Caption returns the caption.
func (c *Controller) Caption() string {
	return c.caption
}

// SetCaption replaces the caption.
func (c *Controller) SetCaption(caption string) {
	if !c.unmounted {
		c.caption = caption
	}
}

// Mount loads src and seeds the play intent with autoPlay. Play is issued
// once the media reports Ready, never before. An empty source leaves the
// control idle and disabled.
func (c *Controller) Mount(src player.Source, autoPlay bool) {
	if c.unmounted {
		return
	}
	prev := c.state
	c.autoPlay = autoPlay
	c.state = PlayerState{Source: src.Normalize(), Playing: autoPlay, Phase: PhaseUnloaded}
	c.load()
	c.emit(prev)
}

// SetSource switches to src. Position and duration reset until the new
// media reports Ready; the mount-time autoplay flag seeds the play intent.
func (c *Controller) SetSource(src player.Source) {
	if c.unmounted {
		return
	}
	src = src.Normalize()
	if src == c.state.Source {
		return
	}
	prev := c.state
	c.state = PlayerState{Source: src, Playing: c.autoPlay, Phase: PhaseUnloaded}
	if src.IsEmpty() && !prev.Source.IsEmpty() {
		c.binding.Load(src) // drops the previous media
	}
	c.load()
	c.emit(prev)
}

func (c *Controller) load() {
	if c.state.Source.IsEmpty() {
		c.state.Playing = false
		return
	}
	c.state.Phase = PhaseLoading
	c.binding.Load(c.state.Source)
}

// TogglePlayPause flips the play intent and issues the matching command.
// Before Ready the intent is only recorded. A failed control retries the
// load and plays once ready.
func (c *Controller) TogglePlayPause() {
	if c.unmounted || c.state.Source.IsEmpty() {
		return
	}
	prev := c.state

	switch c.state.Phase {
	case PhaseFailed:
		log.Debug().Str("source", c.state.Source.String()).Msg("retrying failed load")
		c.state.Playing = true
		c.state.Err = nil
		c.state.Position = 0
		c.state.Duration = 0
		c.state.Phase = PhaseLoading
		c.binding.Reload()
	case PhaseLoading, PhaseUnloaded:
		c.state.Playing = !c.state.Playing
	default:
		c.state.Playing = !c.state.Playing
		if c.state.Playing {
			c.state.Phase = PhasePlaying
			c.binding.Play()
		} else {
			c.state.Phase = PhasePaused
			c.binding.Pause()
		}
	}
	c.emit(prev)
}

// SeekRequest moves the playback position. Requests outside [0, duration]
// are clamped. Before Ready the binding defers the request and the visible
// position stays at 0.
func (c *Controller) SeekRequest(pos time.Duration) {
	if c.unmounted || c.state.Source.IsEmpty() || c.state.Phase == PhaseFailed {
		return
	}
	clamped := max(pos, 0)
	if c.state.Phase.IsLoaded() {
		clamped = min(clamped, c.state.Duration)
	}
	if clamped != pos {
		log.Debug().
			Err(ErrSeekOutOfRange).
			Dur("requested", pos).
			Dur("clamped", clamped).
			Dur("duration", c.state.Duration).
			Msg("seek clamped")
	}

	prev := c.state
	if c.state.Phase.IsLoaded() {
		c.state.Position = clamped
	}
	c.binding.Seek(clamped)
	c.emit(prev)
}

// Handle applies one binding notification. Notifications from an earlier
// load generation and anything after Unmount are dropped.
func (c *Controller) Handle(n player.Notification) {
	if c.unmounted || c.state.Source.IsEmpty() {
		return
	}
	if gen := c.binding.Generation(); n.Generation != gen {
		log.Debug().
			Stringer("kind", n.Kind).
			Uint64("generation", n.Generation).
			Uint64("current", gen).
			Msg("dropping stale notification")
		return
	}
	// A Play or Pause issued after the outcome was queued supersedes it.
	if n.Kind == player.Playing || n.Kind == player.PlaybackError {
		if seq := c.binding.Seq(); n.Seq != seq {
			log.Debug().
				Stringer("kind", n.Kind).
				Uint64("seq", n.Seq).
				Uint64("current", seq).
				Msg("dropping superseded play outcome")
			return
		}
	}

	prev := c.state
	switch n.Kind {
	case player.Ready:
		c.state.Duration = max(n.Duration, 0)
		c.state.Position = min(c.state.Position, c.state.Duration)
		c.state.Err = nil
		if c.state.Playing {
			c.state.Phase = PhasePlaying
			c.binding.Play()
		} else {
			c.state.Phase = PhaseReady
		}
	case player.TimeUpdate:
		if !c.state.Phase.IsLoaded() {
			return
		}
		c.state.Position = min(max(n.Position, 0), c.state.Duration)
	case player.Ended:
		c.state.Playing = false
		c.state.Position = c.state.Duration
		c.state.Phase = PhasePaused
	case player.Playing:
		c.state.Playing = true
		c.state.Err = nil
		if c.state.Phase.IsLoaded() {
			c.state.Phase = PhasePlaying
		}
	case player.PlaybackError:
		c.state.Playing = false
		c.state.Err = player.AsPlaybackError(n.Err)
		if c.state.Phase.IsLoaded() {
			c.state.Phase = PhasePaused
		}
		c.surface("play", c.state.Err)
	case player.LoadError:
		c.state.Playing = false
		c.state.Err = player.AsLoadError(n.Err)
		c.state.Position = 0
		c.state.Duration = 0
		c.state.Phase = PhaseFailed
		c.surface("load", c.state.Err)
	default:
		log.Debug().Stringer("kind", n.Kind).Msg("ignoring notification")
		return
	}
	c.emit(prev)
}

// Subscribe registers fn to be called with the new state after every change.
// The returned function cancels the registration.
func (c *Controller) Subscribe(fn func(PlayerState)) (cancel func()) {
	if c.unmounted {
		return func() {}
	}
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

// OnError sets the callback invoked when an error is surfaced.
func (c *Controller) OnError(fn func(error)) {
	c.onError = fn
}

// Watch returns a channel-based subscription to state changes and errors.
// Its Done channel is closed on Unmount.
func (c *Controller) Watch() *Subscription {
	sub := newSubscription()
	if c.unmounted {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Unmount disposes the binding. Every later command and notification is
// ignored. Safe to call more than once.
func (c *Controller) Unmount() error {
	if c.unmounted {
		return nil
	}
	prev := c.state
	c.state.Playing = false
	c.state.Phase = PhaseUnmounted
	c.emit(prev)

	c.unmounted = true
	close(c.done)
	c.observers = make(map[int]func(PlayerState))
	c.onError = nil
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil

	if err := c.binding.Dispose(); err != nil {
		return errors.Wrap(err, "dispose binding")
	}
	return nil
}

func (c *Controller) surface(op string, err error) {
	log.Warn().Err(err).Str("op", op).Str("source", c.state.Source.String()).Msg("playback error")
	if c.onError != nil {
		c.onError(err)
	}
	for _, sub := range c.subs {
		sub.sendError(ErrorEvent{Operation: op, Source: c.state.Source, Err: err})
	}
}

func (c *Controller) emit(prev PlayerState) {
	if sameState(prev, c.state) {
		return
	}
	for _, fn := range c.observers {
		fn(c.state)
	}
	change := StateChange{Previous: prev, Current: c.state}
	for _, sub := range c.subs {
		sub.sendState(change)
	}
}

func sameState(a, b PlayerState) bool {
	return a.Playing == b.Playing &&
		a.Position == b.Position &&
		a.Duration == b.Duration &&
		a.Source == b.Source &&
		a.Phase == b.Phase &&
		sameError(a.Err, b.Err)
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Error() == b.Error()
}
