//go:build windows

package stderr

import "os"

// Start does not redirect anything on Windows, where the speaker backend
// reports through return values only. Messages is closed so Forward returns.
func Start() error {
	close(Messages)
	return nil
}

// WriteOriginal writes msg to the process stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop has nothing to restore on Windows.
func Stop() {}
