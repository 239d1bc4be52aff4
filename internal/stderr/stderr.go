//go:build !windows

// Package stderr captures output that C audio libraries (ALSA through the
// beep speaker) write straight to file descriptor 2, so it lands in the log
// instead of on top of the player.
package stderr

import (
	"os"
	"syscall"

	"github.com/cockroachdb/errors"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe whose lines are sent to Messages. Call it
// before the speaker is initialized. On error stderr is left untouched.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, "create pipe")
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		_ = r.Close()
		_ = w.Close()
		return errors.Wrap(err, "dup stderr")
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(origStderr)
		_ = r.Close()
		_ = w.Close()
		return errors.Wrap(err, "redirect stderr")
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go scan(pipeRead, Messages)
	return nil
}

// WriteOriginal writes to the real stderr, bypassing the capture.
func WriteOriginal(msg string) {
	if started && origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores stderr and closes Messages once the pipe is drained.
func Stop() {
	if !started {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	_ = pipeWrite.Close()
	started = false
}
