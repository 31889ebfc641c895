package staging

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
)

var ErrNoMedia = errors.New("no staged media")

// StagedMedia is the one pending capture waiting to be submitted.
type StagedMedia struct {
	Filename string
	MIME     string
	Data     []byte
}

// PreviewKind tells the UI which element to render for the preview.
type PreviewKind string

const (
	PreviewImage PreviewKind = "image"
	PreviewVideo PreviewKind = "video" // rendered muted, inline-playable
)

// Preview is a revocable reference to the pending media's bytes. Selecting new
// media invalidates the previous handle; stale handles stop resolving.
type Preview struct {
	Handle string      `json:"handle"`
	Kind   PreviewKind `json:"kind"`
	MIME   string      `json:"mime"`
}

// Unit holds at most one pending StagedMedia. A new selection replaces the old
// one and releases its preview handle, whether the old media came from the
// picker or from a cross-page handoff.
type Unit struct {
	mu      sync.Mutex
	pending *StagedMedia
	preview Preview
}

func NewUnit() *Unit {
	return &Unit{}
}

// Select stages a capture. MIME resolution: declared type first, then content
// sniffing. Returns the fresh preview reference.
func (u *Unit) Select(filename, declaredMIME string, data []byte) Preview {
	mime := ResolveMIME(declaredMIME, data)

	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending = &StagedMedia{Filename: filename, MIME: mime, Data: data}
	u.preview = Preview{
		Handle: newHandle(),
		Kind:   kindFor(mime),
		MIME:   mime,
	}
	return u.preview
}

// Pending hands the coordinator a copy of the staged media for one submission
// attempt. The media stays staged so a failed submission can be retried.
func (u *Unit) Pending() (StagedMedia, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending == nil {
		return StagedMedia{}, ErrNoMedia
	}
	return *u.pending, nil
}

// Preview returns the current preview reference, if any.
func (u *Unit) Preview() (Preview, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.preview, u.pending != nil
}

// Resolve serves the preview bytes for a live handle. Released handles (after
// Clear or a newer Select) no longer resolve.
func (u *Unit) Resolve(handle string) (StagedMedia, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending == nil || handle == "" || handle != u.preview.Handle {
		return StagedMedia{}, false
	}
	return *u.pending, true
}

// Clear drops the pending media and releases its preview handle. Called after
// a successful submission.
func (u *Unit) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	u.preview = Preview{}
}

func kindFor(mime string) PreviewKind {
	if strings.HasPrefix(mime, "video/") {
		return PreviewVideo
	}
	return PreviewImage
}

func newHandle() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
