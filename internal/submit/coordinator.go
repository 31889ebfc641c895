// Package submit coordinates one capture's trip to the pricing service:
// validate, package, upload, normalize, insert.
package submit

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"workhub-engine/internal/card"
	"workhub-engine/internal/deck"
	"workhub-engine/internal/domain"
	"workhub-engine/internal/events"
	"workhub-engine/internal/staging"
)

var (
	// ErrBusy: a submission is already in flight. The caller treats this as
	// a no-op, not a queued retry.
	ErrBusy = errors.New("submission already in flight")

	// ErrMissingMedia: nothing staged, nothing sent.
	ErrMissingMedia = errors.New("no media staged")

	// ErrMissingFields: strict mode requires price and description.
	ErrMissingFields = errors.New("price and description required")
)

// Status mirrors the submit button state for the UI.
type Status struct {
	Running    bool   `json:"running"`
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastCardID string `json:"last_card_id"`
}

// Uploader is the slice of the backend client the coordinator needs.
type Uploader interface {
	Upload(ctx context.Context, media staging.StagedMedia, price, description string, scope domain.ScopeType) (card.RawJob, error)
}

// Coordinator owns the busy/idle lifecycle of the submit action. At most one
// submission is in flight; the guard is the busy flag, not a queue.
type Coordinator struct {
	Backend Uploader
	Staging *staging.Unit
	Deck    *deck.Deck
	Hub     *events.Hub

	// RequireFields false turns on the single-tap quick-capture mode: a blank
	// description is replaced with DefaultDescription and price may be empty.
	RequireFields      bool
	DefaultDescription string

	mu     sync.Mutex
	busy   bool
	status Status
}

// Submit runs one submission attempt. On success the new card is in the deck
// as the active card and the staging unit is cleared. On any failure the deck
// is untouched and the staged media stays put for a retry. The busy flag is
// restored on every exit path.
func (co *Coordinator) Submit(ctx context.Context, price, description string, scope domain.ScopeType) (domain.JobCard, error) {
	co.mu.Lock()
	if co.busy {
		co.mu.Unlock()
		return domain.JobCard{}, ErrBusy
	}
	co.busy = true
	co.status.Running = true
	co.status.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	co.mu.Unlock()

	c, err := co.run(ctx, price, description, scope)

	co.mu.Lock()
	co.busy = false
	co.status.Running = false
	if err != nil {
		co.status.LastError = err.Error()
	} else {
		co.status.LastError = ""
		co.status.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		co.status.LastCardID = c.ID
	}
	co.mu.Unlock()

	return c, err
}

func (co *Coordinator) run(ctx context.Context, price, description string, scope domain.ScopeType) (domain.JobCard, error) {
	media, err := co.Staging.Pending()
	if err != nil {
		return domain.JobCard{}, ErrMissingMedia
	}

	price = strings.TrimSpace(price)
	description = strings.TrimSpace(description)
	if co.RequireFields {
		if price == "" || description == "" {
			return domain.JobCard{}, ErrMissingFields
		}
	} else if description == "" {
		description = co.DefaultDescription
	}

	raw, err := co.Backend.Upload(ctx, media, price, description, scope)
	if err != nil {
		log.Printf("[submit] upload failed file=%q err=%v", media.Filename, err)
		return domain.JobCard{}, err
	}

	c := card.Normalize(raw)
	idx := co.Deck.InsertAsActive(c)
	co.Staging.Clear()

	if co.Hub != nil {
		co.Hub.Publish(events.MakeEvent("", events.TypeCardCreated, 1, map[string]any{
			"id":    c.ID,
			"index": idx,
		}))
	}
	log.Printf("[submit] card created id=%s index=%d scope=%s", c.ID, idx, c.Scope)
	return c, nil
}

// Status returns a copy of the current submit state.
func (co *Coordinator) Status() Status {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.status
}
