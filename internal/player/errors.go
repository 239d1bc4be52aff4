package player

import "github.com/cockroachdb/errors"

// Error markers. Concrete errors are marked with one of these so callers can
// classify them with errors.Is regardless of the wrapped cause.
var (
	// ErrLoad marks failures to reach, open or decode a source.
	ErrLoad = errors.New("load error")
	// ErrPlayback marks rejected play requests.
	ErrPlayback = errors.New("playback error")
)

// Errors returned to play callbacks by elements.
var (
	ErrNotReady = errors.New("media not ready")
	ErrReleased = errors.New("element released")
	ErrNoSource = errors.New("no source")
)

func loadError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrLoad)
}

func playbackError(err error) error {
	if errors.Is(err, ErrPlayback) {
		return err
	}
	return errors.Mark(errors.Wrap(err, "play"), ErrPlayback)
}

// IsLoadError reports whether err is a load failure.
func IsLoadError(err error) bool { return errors.Is(err, ErrLoad) }

// IsPlaybackError reports whether err is a rejected play request.
func IsPlaybackError(err error) bool { return errors.Is(err, ErrPlayback) }

// AsLoadError marks err as a load failure. A nil err becomes a generic one.
func AsLoadError(err error) error {
	if err == nil {
		err = errors.New("unknown media error")
	}
	if IsLoadError(err) {
		return err
	}
	return errors.Mark(err, ErrLoad)
}

// AsPlaybackError marks err as a rejected play request. A nil err becomes a
// generic one.
func AsPlaybackError(err error) error {
	if err == nil {
		err = errors.New("play rejected")
	}
	if IsPlaybackError(err) {
		return err
	}
	return errors.Mark(err, ErrPlayback)
}
