// internal/player/mock.go
package player

import "time"

// Command names recorded by Mock.
const (
	CmdLoad  = "load"
	CmdPlay  = "play"
	CmdPause = "pause"
	CmdSeek  = "seek"
)

// Mock is a test double for Binding. It records commands and lets tests
// push notifications as if the engine had emitted them.
type Mock struct {
	commands  []string
	loads     []Source
	seekCalls []time.Duration
	gen       uint64
	seq       uint64
	disposed  int
	notes     chan Notification
}

// NewMock creates a new mock binding for testing.
func NewMock() *Mock {
	return &Mock{notes: make(chan Notification, notificationBufferSize)}
}

func (m *Mock) Load(src Source) {
	src = src.Normalize()
	if len(m.loads) > 0 && m.loads[len(m.loads)-1] == src {
		return
	}
	m.gen++
	m.seq++
	m.loads = append(m.loads, src)
	m.commands = append(m.commands, CmdLoad)
}

func (m *Mock) Reload() {
	if len(m.loads) == 0 {
		return
	}
	m.gen++
	m.seq++
	m.loads = append(m.loads, m.loads[len(m.loads)-1])
	m.commands = append(m.commands, CmdLoad)
}

func (m *Mock) Play() {
	m.seq++
	m.commands = append(m.commands, CmdPlay)
}

func (m *Mock) Pause() {
	m.seq++
	m.commands = append(m.commands, CmdPause)
}

func (m *Mock) Seek(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	m.commands = append(m.commands, CmdSeek)
}

func (m *Mock) Notifications() <-chan Notification { return m.notes }

func (m *Mock) Generation() uint64 { return m.gen }

func (m *Mock) Seq() uint64 { return m.seq }

func (m *Mock) Dispose() error {
	m.disposed++
	return nil
}

// Test helpers

// Commands returns every recorded command in order.
func (m *Mock) Commands() []string { return m.commands }

// CommandsExcept returns the recorded commands without the given kinds.
func (m *Mock) CommandsExcept(skip ...string) []string {
	var out []string
	for _, c := range m.commands {
		keep := true
		for _, s := range skip {
			if c == s {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times cmd was issued.
func (m *Mock) Count(cmd string) int {
	n := 0
	for _, c := range m.commands {
		if c == cmd {
			n++
		}
	}
	return n
}

func (m *Mock) Loads() []Source { return m.loads }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) DisposeCalls() int { return m.disposed }

// ResetCommands forgets recorded commands.
func (m *Mock) ResetCommands() {
	m.commands = nil
	m.seekCalls = nil
}

// Notification builders stamped with the current generation. Play outcomes
// answer the latest command.

func (m *Mock) Ready(d time.Duration) Notification {
	return Notification{Kind: Ready, Generation: m.gen, Duration: d}
}

func (m *Mock) TimeUpdate(pos time.Duration) Notification {
	return Notification{Kind: TimeUpdate, Generation: m.gen, Position: pos}
}

func (m *Mock) Ended() Notification {
	return Notification{Kind: Ended, Generation: m.gen}
}

func (m *Mock) PlaybackError(err error) Notification {
	return Notification{Kind: PlaybackError, Generation: m.gen, Seq: m.seq, Err: err}
}

func (m *Mock) LoadError(err error) Notification {
	return Notification{Kind: LoadError, Generation: m.gen, Err: err}
}

func (m *Mock) Playing() Notification {
	return Notification{Kind: Playing, Generation: m.gen, Seq: m.seq}
}

// Push queues n on the notification channel.
func (m *Mock) Push(n Notification) {
	select {
	case m.notes <- n:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
