package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workhub-engine/internal/card"
	"workhub-engine/internal/deck"
	"workhub-engine/internal/domain"
	"workhub-engine/internal/events"
)

type listerFunc func(ctx context.Context) ([]card.RawJob, error)

func (f listerFunc) List(ctx context.Context) ([]card.RawJob, error) { return f(ctx) }

func TestLoadOnceReplacesDeck(t *testing.T) {
	src := listerFunc(func(context.Context) ([]card.RawJob, error) {
		return []card.RawJob{{ID: "a"}, {AltID: "b-oid"}, {ID: "c"}}, nil
	})
	d := deck.New()
	d.InsertAsActive(domain.JobCard{ID: "stale"})

	n, err := LoadOnce(context.Background(), src, d, deck.OrderAppend, events.NewHub())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cards, active := d.Snapshot()
	require.Len(t, cards, 3)
	assert.Equal(t, "a", cards[0].ID)
	assert.Equal(t, "b-oid", cards[1].ID, "alias ids survive normalization")
	assert.Equal(t, 2, active)
}

func TestLoadOncePrepend(t *testing.T) {
	src := listerFunc(func(context.Context) ([]card.RawJob, error) {
		return []card.RawJob{{ID: "a"}, {ID: "b"}}, nil
	})
	d := deck.New()

	_, err := LoadOnce(context.Background(), src, d, deck.OrderPrepend, nil)
	require.NoError(t, err)

	cards, active := d.Snapshot()
	assert.Equal(t, "b", cards[0].ID)
	assert.Equal(t, 0, active)
}

func TestLoadOnceFailureLeavesDeckAlone(t *testing.T) {
	boom := errors.New("backend down")
	src := listerFunc(func(context.Context) ([]card.RawJob, error) {
		return nil, boom
	})
	d := deck.New()
	d.InsertAsActive(domain.JobCard{ID: "keep"})

	n, err := LoadOnce(context.Background(), src, d, deck.OrderAppend, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, d.Len(), "a failed fetch never wipes the deck")
}

func TestLoadOncePublishesDeckLoaded(t *testing.T) {
	src := listerFunc(func(context.Context) ([]card.RawJob, error) {
		return []card.RawJob{{ID: "a"}}, nil
	})
	hub := events.NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	_, err := LoadOnce(context.Background(), src, deck.New(), deck.OrderAppend, hub)
	require.NoError(t, err)

	select {
	case evt := <-sub:
		assert.Contains(t, evt, `"type":"deck_loaded"`)
		assert.Contains(t, evt, `"count":1`)
	default:
		t.Fatal("expected a deck_loaded event")
	}
}
