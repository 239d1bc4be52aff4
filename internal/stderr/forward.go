package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Messages receives captured lines. It is closed when the capture ends.
var Messages = make(chan string, 100)

// scan sends the non-blank lines of r to out, dropping lines when out is
// full, and closes out at EOF.
func scan(r io.ReadCloser, out chan<- string) {
	defer close(out)
	defer r.Close()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}

// Forward logs every line from lines at warn level until lines is closed.
func Forward(lines <-chan string, logger zerolog.Logger) {
	for line := range lines {
		logger.Warn().Str("component", "stderr").Msg(line)
	}
}
