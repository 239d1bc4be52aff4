package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

const notificationBufferSize = 16

type command int

const (
	cmdNone command = iota
	cmdPlay
	cmdPause
)

// Binding adapts one Element to the command/notification contract.
//
// Commands may be issued from one goroutine; element listeners may run on
// any goroutine. Listeners never block: notifications are queued and a pump
// goroutine feeds them to the channel in order, coalescing consecutive time
// updates. Events whose source is not the loaded one are dropped.
//
// Every Play and Pause bumps a command sequence number. A play outcome that
// arrives after a newer command is stale: a stale success is undone with a
// fresh Pause when the newer command was a pause, a stale failure is dropped.
// Outcomes that were current when queued carry their sequence so the
// consumer can drop them if a command follows before they are read.
type Binding struct {
	mu sync.Mutex

	el       Element
	source   Source
	loaded   bool
	gen      uint64
	seq      uint64
	lastCmd  command
	ready    bool
	duration time.Duration

	pendingSeek    time.Duration
	hasPendingSeek bool

	removers []func()
	queue    []Notification
	wake     chan struct{}
	notes    chan Notification
	done     chan struct{}
	disposed bool
}

// NewBinding attaches to el. The binding owns el from now on and releases
// it on Dispose.
func NewBinding(el Element) *Binding {
	b := &Binding{
		el:    el,
		wake:  make(chan struct{}, 1),
		notes: make(chan Notification, notificationBufferSize),
		done:  make(chan struct{}),
	}
	go b.pump()
	b.removers = []func(){
		el.AddListener(EventLoadedData, b.onLoadedData),
		el.AddListener(EventTimeUpdate, b.onTimeUpdate),
		el.AddListener(EventEnded, b.onEnded),
		el.AddListener(EventError, b.onError),
	}
	return b
}

// Notifications returns the channel notifications are pushed to.
func (b *Binding) Notifications() <-chan Notification { return b.notes }

// Done is closed when the binding is disposed.
func (b *Binding) Done() <-chan struct{} { return b.done }

// Generation returns the current load generation.
func (b *Binding) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}

// Seq returns the sequence number of the latest command.
func (b *Binding) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Source returns the loaded source.
func (b *Binding) Source() Source {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.source
}

// Load points the element at src. Loading the current source again is a no-op.
func (b *Binding) Load(src Source) {
	b.load(src.Normalize(), false)
}

// Reload points the element at the current source again.
func (b *Binding) Reload() {
	b.mu.Lock()
	src, loaded := b.source, b.loaded
	b.mu.Unlock()
	if loaded {
		b.load(src, true)
	}
}

func (b *Binding) load(src Source, force bool) {
	b.mu.Lock()
	if b.disposed || (!force && b.loaded && b.source == src) {
		b.mu.Unlock()
		return
	}
	b.source = src
	b.loaded = true
	b.gen++
	b.seq++
	b.lastCmd = cmdNone
	b.ready = false
	b.duration = 0
	b.hasPendingSeek = false
	gen := b.gen
	el := b.el
	b.mu.Unlock()

	log.Debug().Str("source", src.String()).Uint64("generation", gen).Msg("load")
	el.SetSource(src)
}

// Play requests playback. The outcome arrives as a Playing or
// PlaybackError notification.
func (b *Binding) Play() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.seq++
	b.lastCmd = cmdPlay
	seq, gen := b.seq, b.gen
	el := b.el
	b.mu.Unlock()

	el.Play(func(err error) { b.resolvePlay(seq, gen, err) })
}

func (b *Binding) resolvePlay(seq, gen uint64, err error) {
	b.mu.Lock()
	if b.disposed || gen != b.gen {
		b.mu.Unlock()
		return
	}
	stale := seq != b.seq
	repause := stale && err == nil && b.lastCmd == cmdPause
	el := b.el
	b.mu.Unlock()

	switch {
	case repause:
		log.Debug().Uint64("seq", seq).Msg("play superseded by pause")
		el.Pause()
	case stale:
		log.Debug().Uint64("seq", seq).Err(err).Msg("dropping stale play outcome")
	case err != nil:
		b.send(Notification{Kind: PlaybackError, Generation: gen, Seq: seq, Err: playbackError(err)})
	default:
		b.send(Notification{Kind: Playing, Generation: gen, Seq: seq})
	}
}

// Pause stops playback immediately.
func (b *Binding) Pause() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.seq++
	b.lastCmd = cmdPause
	el := b.el
	b.mu.Unlock()

	el.Pause()
}

// Seek moves the playback position, clamped to [0, duration]. Before the
// media is ready the latest request is kept and applied on readiness.
func (b *Binding) Seek(pos time.Duration) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	pos = max(pos, 0)
	if !b.ready {
		b.pendingSeek = pos
		b.hasPendingSeek = true
		b.mu.Unlock()
		return
	}
	pos = min(pos, b.duration)
	el := b.el
	b.mu.Unlock()

	el.SetCurrentTime(pos)
}

// Dispose detaches every listener, then releases the element. Safe to call
// more than once.
func (b *Binding) Dispose() error {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return nil
	}
	b.disposed = true
	removers := b.removers
	b.removers = nil
	b.queue = nil
	close(b.done)
	el := b.el
	b.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	if err := el.Release(); err != nil {
		return errors.Wrap(err, "release element")
	}
	return nil
}

func (b *Binding) onLoadedData(e Event) {
	b.mu.Lock()
	if b.disposed || !e.Source.Equal(b.source) {
		b.mu.Unlock()
		return
	}
	b.ready = true
	b.duration = max(e.Duration, 0)
	gen := b.gen
	seek, hasSeek := min(b.pendingSeek, b.duration), b.hasPendingSeek
	b.hasPendingSeek = false
	el := b.el
	b.mu.Unlock()

	b.send(Notification{Kind: Ready, Generation: gen, Duration: e.Duration})
	if hasSeek {
		// Listeners run inside the element's emit; seeking from here would
		// re-enter it.
		go b.applySeek(el, gen, seek)
	}
}

func (b *Binding) applySeek(el Element, gen uint64, pos time.Duration) {
	b.mu.Lock()
	current := !b.disposed && gen == b.gen
	b.mu.Unlock()
	if current {
		el.SetCurrentTime(pos)
	}
}

func (b *Binding) onTimeUpdate(e Event) {
	if gen, ok := b.accept(e); ok {
		b.send(Notification{Kind: TimeUpdate, Generation: gen, Position: e.Position})
	}
}

func (b *Binding) onEnded(e Event) {
	if gen, ok := b.accept(e); ok {
		b.send(Notification{Kind: Ended, Generation: gen})
	}
}

func (b *Binding) onError(e Event) {
	gen, ok := b.accept(e)
	if !ok {
		return
	}
	b.send(Notification{Kind: LoadError, Generation: gen, Err: AsLoadError(e.Err)})
}

// accept reports whether e belongs to the loaded source and returns the
// generation to stamp on it.
func (b *Binding) accept(e Event) (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen, !b.disposed && e.Source.Equal(b.source)
}

// send queues n for delivery.
func (b *Binding) send(n Notification) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	if last := len(b.queue) - 1; n.Kind == TimeUpdate && last >= 0 && b.queue[last].Kind == TimeUpdate {
		b.queue[last] = n
	} else {
		b.queue = append(b.queue, n)
	}
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Binding) pump() {
	for {
		select {
		case <-b.wake:
		case <-b.done:
			return
		}
		for {
			b.mu.Lock()
			if len(b.queue) == 0 {
				b.mu.Unlock()
				break
			}
			n := b.queue[0]
			b.queue = b.queue[1:]
			b.mu.Unlock()

			select {
			case b.notes <- n:
			case <-b.done:
				return
			}
		}
	}
}
