// Package history loads previously logged jobs into the deck at session start.
package history

import (
	"context"
	"log"

	"workhub-engine/internal/card"
	"workhub-engine/internal/deck"
	"workhub-engine/internal/domain"
	"workhub-engine/internal/events"
)

// Lister is the slice of the backend client the bootstrap needs.
type Lister interface {
	List(ctx context.Context) ([]card.RawJob, error)
}

// LoadOnce fetches the job history, normalizes every record, and replaces the
// deck contents under the configured order policy. Best-effort: the caller
// logs the error and the session starts with an empty deck.
func LoadOnce(ctx context.Context, src Lister, d *deck.Deck, order deck.Order, hub *events.Hub) (int, error) {
	raws, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	cards := make([]domain.JobCard, 0, len(raws))
	for _, r := range raws {
		cards = append(cards, card.Normalize(r))
	}
	d.LoadHistory(cards, order)

	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeDeckLoaded, 1, map[string]any{
			"count": len(cards),
		}))
	}
	log.Printf("[history] loaded cards=%d order=%s", len(cards), order)
	return len(cards), nil
}
