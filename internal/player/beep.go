package player

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"
)

// DefaultTimeUpdateInterval is how often a playing BeepElement reports its position.
const DefaultTimeUpdateInterval = 250 * time.Millisecond

const speakerSampleRate = beep.SampleRate(44100)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

func initSpeaker() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speakerInitialized = true
	return nil
}

// media is one decoded source.
type media struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     io.Closer
	duration time.Duration

	ctrl   *beep.Ctrl
	volume *effects.Volume
	queued bool // attached to the speaker mixer

	ended chan struct{}
	stop  chan struct{}
}

// chain builds a fresh streamer chain for the speaker. A sequence that ran
// to its end cannot be restarted, so every attach gets a new one.
func (m *media) chain(volume float64, muted bool) beep.Streamer {
	var s beep.Streamer = m.streamer
	if m.format.SampleRate != speakerSampleRate {
		s = beep.Resample(4, m.format.SampleRate, speakerSampleRate, m.streamer)
	}
	m.ctrl = &beep.Ctrl{Streamer: s}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2, Volume: volume, Silent: muted}
	return beep.Seq(m.volume, beep.Callback(func() {
		// Runs with the speaker locked: signal only.
		select {
		case m.ended <- struct{}{}:
		default:
		}
	}))
}

func (m *media) position() time.Duration {
	speaker.Lock()
	p := m.streamer.Position()
	speaker.Unlock()
	return m.format.SampleRate.D(p)
}

func (m *media) close() error {
	close(m.stop)
	if m.queued {
		speaker.Lock()
		m.ctrl.Streamer = nil // drains the sequence out of the mixer
		speaker.Unlock()
	}
	return errors.CombineErrors(m.streamer.Close(), m.file.Close())
}

// BeepElement is an Element that decodes sources with beep decoders and
// plays them through the shared beep speaker.
type BeepElement struct {
	mu     sync.Mutex
	emitMu sync.RWMutex

	opener    Opener
	interval  time.Duration
	volume    float64
	listeners map[EventKind]map[int]Listener
	nextID    int

	source     Source
	token      uint64
	state      State
	media      *media
	cancelLoad context.CancelFunc
	released   bool
}

// BeepOption configures a BeepElement.
type BeepOption func(*BeepElement)

// WithOpener replaces the default source opener.
func WithOpener(o Opener) BeepOption {
	return func(e *BeepElement) { e.opener = o }
}

// WithTimeUpdateInterval sets the position reporting cadence.
func WithTimeUpdateInterval(d time.Duration) BeepOption {
	return func(e *BeepElement) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithVolume sets the initial volume level (0.0 to 1.0).
func WithVolume(level float64) BeepOption {
	return func(e *BeepElement) { e.volume = min(max(level, 0), 1) }
}

// NewBeepElement creates an element with no source.
func NewBeepElement(opts ...BeepOption) *BeepElement {
	e := &BeepElement{
		opener:    NewHTTPOpener(nil),
		interval:  DefaultTimeUpdateInterval,
		volume:    1,
		listeners: make(map[EventKind]map[int]Listener),
		state:     StateEmpty,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the engine state.
func (e *BeepElement) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// AddListener registers fn for events of kind.
func (e *BeepElement) AddListener(kind EventKind, fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	if e.listeners[kind] == nil {
		e.listeners[kind] = make(map[int]Listener)
	}
	e.listeners[kind][id] = fn
	return func() {
		e.mu.Lock()
		delete(e.listeners[kind], id)
		e.mu.Unlock()
	}
}

// SetSource drops the current media and starts loading src in the
// background. When it returns no event of the previous source is delivered.
func (e *BeepElement) SetSource(src Source) {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.token++
	token := e.token
	old := e.detachLocked()
	e.source = src
	var ctx context.Context
	if !src.IsEmpty() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		e.cancelLoad = cancel
	}
	opener := e.opener
	e.mu.Unlock()

	e.barrier()
	if err := closeMedia(old); err != nil {
		log.Debug().Err(err).Msg("close previous media")
	}

	if ctx != nil {
		go e.load(ctx, token, src, opener)
	}
}

func (e *BeepElement) load(ctx context.Context, token uint64, src Source, opener Opener) {
	f, err := DetectFormat(src)
	if err != nil {
		e.fail(token, err)
		return
	}
	r, err := opener(ctx, src)
	if err != nil {
		e.fail(token, err)
		return
	}
	streamer, format, err := decode(r, f)
	if err != nil {
		_ = r.Close()
		e.fail(token, loadError(err, "decode %s", src.Name()))
		return
	}

	m := &media{
		streamer: streamer,
		format:   format,
		file:     r,
		duration: format.SampleRate.D(streamer.Len()),
		ended:    make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}

	e.mu.Lock()
	if token != e.token || e.released {
		e.mu.Unlock()
		_ = m.close()
		return
	}
	e.media = m
	e.state = StatePaused
	e.mu.Unlock()

	log.Debug().
		Str("source", src.Name()).
		Stringer("format", f).
		Int("sample_rate", int(format.SampleRate)).
		Dur("duration", m.duration).
		Msg("media ready")

	go e.monitor(token, m)
	e.emitFor(token, Event{Kind: EventLoadedData, Duration: m.duration})
}

func (e *BeepElement) fail(token uint64, err error) {
	log.Warn().Err(err).Msg("media load failed")
	e.emitFor(token, Event{Kind: EventError, Err: err})
}

// Play starts or resumes playback. Media that played to its end restarts
// from the beginning.
func (e *BeepElement) Play(resolve func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.released:
		go resolve(ErrReleased)
		return
	case e.source.IsEmpty():
		go resolve(ErrNoSource)
		return
	case e.media == nil:
		go resolve(ErrNotReady)
		return
	case e.state == StatePlaying:
		go resolve(nil)
		return
	}

	if err := initSpeaker(); err != nil {
		go resolve(err)
		return
	}

	m := e.media
	if !m.queued {
		if m.streamer.Position() >= m.streamer.Len() {
			if err := m.streamer.Seek(0); err != nil {
				go resolve(errors.Wrap(err, "rewind"))
				return
			}
		}
		m.queued = true
		speaker.Play(m.chain(e.volumeValue(), e.volume <= 0))
	} else {
		speaker.Lock()
		m.ctrl.Paused = false
		speaker.Unlock()
	}
	e.state = StatePlaying
	go resolve(nil)
}

// Pause pauses playback. No-op unless playing.
func (e *BeepElement) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.CanPause() || e.media == nil {
		return
	}
	speaker.Lock()
	e.media.ctrl.Paused = true
	speaker.Unlock()
	e.state = StatePaused
}

// SetCurrentTime seeks to pos, clamped to the media length.
func (e *BeepElement) SetCurrentTime(pos time.Duration) {
	e.mu.Lock()
	m := e.media
	if m == nil {
		e.mu.Unlock()
		return
	}
	token := e.token
	n := min(max(m.format.SampleRate.N(pos), 0), m.streamer.Len())
	speaker.Lock()
	err := m.streamer.Seek(n)
	speaker.Unlock()
	e.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Dur("position", pos).Msg("seek failed")
		return
	}
	e.emitFor(token, Event{Kind: EventTimeUpdate, Position: m.format.SampleRate.D(n)})
}

// SetVolume sets the volume level (0.0 to 1.0).
func (e *BeepElement) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = min(max(level, 0), 1)
	if e.media != nil && e.media.queued {
		speaker.Lock()
		e.media.volume.Volume = e.volumeValue()
		e.media.volume.Silent = e.volume <= 0
		speaker.Unlock()
	}
}

// volumeValue maps the 0.0-1.0 level to beep's base-2 volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10.
func (e *BeepElement) volumeValue() float64 {
	switch {
	case e.volume <= 0:
		return -10
	case e.volume >= 1:
		return 0
	default:
		return math.Log2(e.volume)
	}
}

// Release stops playback and frees the media. Safe to call more than once.
func (e *BeepElement) Release() error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return nil
	}
	e.released = true
	e.token++
	old := e.detachLocked()
	e.listeners = make(map[EventKind]map[int]Listener)
	e.mu.Unlock()

	e.barrier()
	return closeMedia(old)
}

func (e *BeepElement) detachLocked() *media {
	if e.cancelLoad != nil {
		e.cancelLoad()
		e.cancelLoad = nil
	}
	m := e.media
	e.media = nil
	e.state = StateEmpty
	return m
}

func closeMedia(m *media) error {
	if m == nil {
		return nil
	}
	return m.close()
}

// monitor reports position while playing and turns the end-of-stream signal
// into time update and ended events.
func (e *BeepElement) monitor(token uint64, m *media) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-m.ended:
			e.mu.Lock()
			if e.media != m {
				e.mu.Unlock()
				return
			}
			m.queued = false
			e.state = StatePaused
			e.mu.Unlock()
			e.emitFor(token, Event{Kind: EventTimeUpdate, Position: m.duration})
			e.emitFor(token, Event{Kind: EventEnded})
		case <-ticker.C:
			e.mu.Lock()
			playing := e.media == m && e.state == StatePlaying
			e.mu.Unlock()
			if playing {
				e.emitFor(token, Event{Kind: EventTimeUpdate, Position: m.position()})
			}
		}
	}
}

// emitFor delivers ev to listeners if token is still the current source.
func (e *BeepElement) emitFor(token uint64, ev Event) {
	e.emitMu.RLock()
	defer e.emitMu.RUnlock()

	e.mu.Lock()
	if token != e.token || e.released {
		e.mu.Unlock()
		return
	}
	ev.Source = e.source
	ls := make([]Listener, 0, len(e.listeners[ev.Kind]))
	for _, l := range e.listeners[ev.Kind] {
		ls = append(ls, l)
	}
	e.mu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}

// barrier waits for in-flight emits to finish.
func (e *BeepElement) barrier() {
	e.emitMu.Lock()
	e.emitMu.Unlock() //nolint:staticcheck // barrier
}

// Verify BeepElement implements Element at compile time.
var _ Element = (*BeepElement)(nil)
