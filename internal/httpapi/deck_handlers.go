package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"workhub-engine/internal/deck"
	"workhub-engine/internal/events"
	"workhub-engine/internal/render"
)

type DeckHandler struct {
	Deck *deck.Deck
	Hub  *events.Hub
}

// State returns the deck as data for UIs that render themselves.
func (h DeckHandler) State(w http.ResponseWriter, r *http.Request) {
	cards, active := h.Deck.Snapshot()
	writeJSON(w, map[string]any{
		"cards":        cards,
		"active_index": active,
		"count_label":  h.Deck.CountLabel(),
	})
}

// Render returns the three-lane card strip as an HTML fragment.
func (h DeckHandler) Render(w http.ResponseWriter, r *http.Request) {
	cards, active := h.Deck.Snapshot()
	frag, err := render.Deck(cards, active)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writeHTML(w, frag)
}

type setActiveRequest struct {
	Op    string `json:"op"` // "next", "prev", or "set"
	Index int    `json:"index"`
}

// SetActive moves the carousel focus. Moves past either end are no-ops.
func (h DeckHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	var moved bool
	switch req.Op {
	case "next":
		moved = h.Deck.Next()
	case "prev":
		moved = h.Deck.Prev()
	case "set":
		moved = h.Deck.SetActive(req.Index)
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_op", `op must be "next", "prev", or "set"`)
		return
	}

	_, active := h.Deck.Snapshot()
	if moved {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeActiveChanged, 1, map[string]any{
			"active_index": active,
		}))
	}
	writeJSON(w, map[string]any{"moved": moved, "active_index": active})
}

// CardByPath serves the overlay detail for /cards/{id} and the plain-text
// ticket for /cards/{id}/summary.
func (h DeckHandler) CardByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/cards/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_id", "card id required")
		return
	}

	c, ok := h.Deck.Card(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_card", "no card with id "+id)
		return
	}

	switch sub {
	case "":
		frag, err := render.Overlay(c)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		writeHTML(w, frag)
	case "summary":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(render.Summary(c)))
	default:
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown card resource")
	}
}
