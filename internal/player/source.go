package player

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used when a source carries no type hint.
const DefaultMIMEType = "audio/mpeg"

// Source identifies the media a control plays.
type Source struct {
	URL      string
	MIMEType string
}

// NewSource builds a Source, applying the default MIME type when mimeType is empty.
func NewSource(rawURL, mimeType string) Source {
	return Source{URL: rawURL, MIMEType: mimeType}.Normalize()
}

// Normalize trims the fields and fills in the default MIME type.
func (s Source) Normalize() Source {
	s.URL = strings.TrimSpace(s.URL)
	s.MIMEType = strings.ToLower(strings.TrimSpace(s.MIMEType))
	if s.MIMEType == "" {
		s.MIMEType = DefaultMIMEType
	}
	return s
}

// IsEmpty reports whether the source is the "no media" placeholder.
func (s Source) IsEmpty() bool {
	return strings.TrimSpace(s.URL) == ""
}

// Equal compares two sources after normalization.
func (s Source) Equal(o Source) bool {
	return s.Normalize() == o.Normalize()
}

// Name returns a short display name for the source (the last path element).
func (s Source) Name() string {
	if s.IsEmpty() {
		return ""
	}
	if u, err := url.Parse(s.URL); err == nil && u.Scheme != "" && u.Path != "" {
		return filepath.Base(u.Path)
	}
	return filepath.Base(s.URL)
}

// LocalPath returns the filesystem path behind a plain path or file:// URL.
func (s Source) LocalPath() (string, bool) {
	raw := strings.TrimSpace(s.URL)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 { // "C:\..." parses with a one-letter scheme
		return raw, true
	}
	if strings.EqualFold(u.Scheme, "file") {
		return u.Path, true
	}
	return "", false
}

func (s Source) String() string {
	if s.IsEmpty() {
		return "<none>"
	}
	return s.URL + " (" + s.MIMEType + ")"
}
