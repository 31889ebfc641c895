// Package handoff is the one-shot channel that carries a capture from the
// upstream camera page into the hub: a base64 image data URI parked under a
// well-known path, consumed at most once.
package handoff

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const payloadFile = "handoff.datauri"

// ErrEmpty means no payload is waiting; callers treat it as "nothing to do".
var ErrEmpty = errors.New("handoff: no payload")

// DecodeError wraps a malformed payload. The payload is already gone by the
// time this surfaces; the user just picks media manually.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("handoff: decode: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Channel is a depth-one queue backed by a file in the data dir. The flock
// keeps the upstream writer and the consuming hub from interleaving.
type Channel struct {
	path string
	lock *flock.Flock
}

func New(dataDir string) *Channel {
	p := filepath.Join(dataDir, payloadFile)
	return &Channel{
		path: p,
		lock: flock.New(p + ".lock"),
	}
}

// Publish parks a data URI for the next page entry, replacing any unread one.
func (c *Channel) Publish(dataURI string) error {
	if err := c.lock.Lock(); err != nil {
		return fmt.Errorf("handoff: lock: %w", err)
	}
	defer c.lock.Unlock()
	return os.WriteFile(c.path, []byte(dataURI), 0o644)
}

// Consume reads and deletes the payload. Deletion happens whether or not the
// data URI decodes; a payload is gone after the first read, period.
func (c *Channel) Consume() (mime string, data []byte, err error) {
	if err := c.lock.Lock(); err != nil {
		return "", nil, fmt.Errorf("handoff: lock: %w", err)
	}
	defer c.lock.Unlock()

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, ErrEmpty
		}
		return "", nil, fmt.Errorf("handoff: read: %w", err)
	}
	_ = os.Remove(c.path)

	mime, data, err = DecodeDataURI(string(raw))
	if err != nil {
		return "", nil, &DecodeError{Err: err}
	}
	return mime, data, nil
}

// DecodeDataURI splits a data:<mime>;base64,<payload> string into its media
// type and decoded bytes. Standard base64 first, URL-safe as a fallback.
func DecodeDataURI(s string) (mime string, data []byte, err error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		idx := strings.IndexByte(s, ',')
		if idx < 0 {
			return "", nil, errors.New("data uri has no payload separator")
		}
		meta := s[len("data:"):idx] // "<mime>;base64"
		if semi := strings.IndexByte(meta, ';'); semi >= 0 {
			mime = meta[:semi]
		} else {
			mime = meta
		}
		s = s[idx+1:]
	}

	if b, derr := base64.StdEncoding.DecodeString(s); derr == nil {
		return mime, b, nil
	}
	b, derr := base64.URLEncoding.DecodeString(s)
	if derr != nil {
		return "", nil, derr
	}
	return mime, b, nil
}
