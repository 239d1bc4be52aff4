package player

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// MaxFetchSize bounds how much of a remote source is read into memory.
const MaxFetchSize = 64 << 20

// Opener opens the bytes behind a source.
type Opener func(ctx context.Context, src Source) (io.ReadSeekCloser, error)

// memFile is an in-memory io.ReadSeekCloser.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// NewHTTPOpener returns an Opener that reads local paths and file:// URLs
// from disk and fetches http(s) URLs whole with client.
func NewHTTPOpener(client *http.Client) Opener {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, src Source) (io.ReadSeekCloser, error) {
		return openSource(ctx, client, src)
	}
}

func openSource(ctx context.Context, client *http.Client, src Source) (io.ReadSeekCloser, error) {
	if src.IsEmpty() {
		return nil, loadError(ErrNoSource, "open source")
	}

	if path, ok := src.LocalPath(); ok {
		return openFile(path)
	}

	u, err := url.Parse(strings.TrimSpace(src.URL))
	if err != nil {
		return nil, loadError(err, "parse %s", src.URL)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return fetch(ctx, client, u.String())
	default:
		return nil, loadError(errors.Newf("unsupported scheme %q", u.Scheme), "open %s", src.URL)
	}
}

func openFile(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(err, "open %s", path)
	}
	return f, nil
}

func fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadSeekCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, loadError(err, "build request for %s", rawURL)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, loadError(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, loadError(errors.Newf("unexpected status: %s", resp.Status), "fetch %s", rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize+1))
	if err != nil {
		return nil, loadError(err, "read %s", rawURL)
	}
	if len(data) > MaxFetchSize {
		return nil, loadError(
			errors.Newf("larger than %s", humanize.IBytes(MaxFetchSize)),
			"fetch %s", rawURL,
		)
	}

	log.Debug().
		Str("url", rawURL).
		Str("size", humanize.IBytes(uint64(len(data)))).
		Msg("fetched source")
	return memFile{bytes.NewReader(data)}, nil
}
