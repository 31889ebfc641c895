package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"workhub-engine/internal/deck"
	"workhub-engine/internal/events"
	"workhub-engine/internal/handoff"
	"workhub-engine/internal/history"
	"workhub-engine/internal/staging"
)

// bootstrapSession starts the history load and handoff rehydration, in
// parallel and best-effort, then returns without waiting for either. A slow or
// hung backend suspends only the history lane, never the HTTP surface.
func bootstrapSession(src history.Lister, dk *deck.Deck, order deck.Order, ch *handoff.Channel, unit *staging.Unit, hub *events.Hub) {
	var g errgroup.Group
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := history.LoadOnce(ctx, src, dk, order, hub); err != nil {
			log.Printf("[history] could not load existing jobs err=%v", err)
		}
		return nil
	})
	g.Go(func() error {
		rehydrate(ch, unit, hub)
		return nil
	})
	go func() { _ = g.Wait() }()
}

// rehydrate drains the cross-page handoff channel into the staging unit. The
// payload is consumed either way; a bad payload just means the operator picks
// media by hand.
func rehydrate(ch *handoff.Channel, unit *staging.Unit, hub *events.Hub) {
	mime, data, err := ch.Consume()
	if err != nil {
		if errors.Is(err, handoff.ErrEmpty) {
			return
		}
		log.Printf("[handoff] dropped payload err=%v", err)
		return
	}

	mime = staging.ResolveMIME(mime, data)
	name := "handoff-capture" + staging.ExtensionFor(mime)
	pv := unit.Select(name, mime, data)

	hub.Publish(events.MakeEvent("", events.TypeCaptureStaged, 1, map[string]any{
		"handle": pv.Handle,
		"kind":   pv.Kind,
		"source": "handoff",
	}))
	log.Printf("[handoff] rehydrated capture mime=%s bytes=%d", mime, len(data))
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Token guard
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}
