package httpapi

import (
	"io"
	"net/http"
	"strings"

	"workhub-engine/internal/events"
	"workhub-engine/internal/handoff"
	"workhub-engine/internal/staging"
)

// maxCaptureBytes caps a staged upload; walk-around clips stay short.
const maxCaptureBytes = 64 << 20

type CaptureHandler struct {
	Staging *staging.Unit
	Hub     *events.Hub
	Handoff *handoff.Channel
}

// Select stages the picked file and returns the fresh preview reference. Any
// previously staged media (picker or handoff) is replaced and its preview
// handle released.
func (h CaptureHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCaptureBytes); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_form", "invalid multipart form: "+err.Error())
		return
	}
	file, hdr, err := r.FormFile("media")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "missing_media", "form field \"media\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCaptureBytes))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "read_failed", "could not read media: "+err.Error())
		return
	}

	pv := h.Staging.Select(hdr.Filename, hdr.Header.Get("Content-Type"), data)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeCaptureStaged, 1, map[string]any{
		"handle": pv.Handle,
		"kind":   pv.Kind,
	}))
	writeJSON(w, pv)
}

// Clear drops the staged media and its preview handle.
func (h CaptureHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Staging.Clear()
	writeJSON(w, map[string]any{"ok": true})
}

// PreviewByPath streams the preview bytes for a live handle. Stale handles
// 404: a released preview is gone, same as a revoked object URL.
func (h CaptureHandler) PreviewByPath(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(r.URL.Path, "/capture/preview/")
	media, ok := h.Staging.Resolve(handle)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "stale_preview", "preview handle released")
		return
	}
	w.Header().Set("Content-Type", media.MIME)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(media.Data)
}

// PublishHandoff parks a capture from the upstream camera page for the next
// session entry.
func (h CaptureHandler) PublishHandoff(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCaptureBytes))
	if err != nil || len(body) == 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_payload", "data URI body required")
		return
	}
	if err := h.Handoff.Publish(string(body)); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "handoff_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
