package deck

import (
	"fmt"
	"sync"

	"workhub-engine/internal/domain"
)

// Order is the history insertion policy. Append keeps the server's returned
// order with the newest card focused (carousel view); Prepend puts the most
// recent card first (plain list view).
type Order string

const (
	OrderAppend  Order = "append"
	OrderPrepend Order = "prepend"
)

// ParseOrder falls back to append for unrecognized input.
func ParseOrder(s string) Order {
	if s == string(OrderPrepend) {
		return OrderPrepend
	}
	return OrderAppend
}

// Deck owns the session's ordered cards and the active-index pointer. It is
// the sole mutator; everything else works from Snapshot copies. Invariant:
// active is -1 exactly when the deck is empty, otherwise within [0, len).
type Deck struct {
	mu     sync.Mutex
	cards  []domain.JobCard
	active int
}

func New() *Deck {
	return &Deck{active: -1}
}

// InsertAsActive appends a freshly submitted card and focuses it.
func (d *Deck) InsertAsActive(c domain.JobCard) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = append(d.cards, c)
	d.active = len(d.cards) - 1
	return d.active
}

// LoadHistory replaces the deck wholesale with previously logged jobs.
// With OrderAppend the server order is kept and the last card is focused;
// with OrderPrepend each card is pushed to the front and the first is focused.
func (d *Deck) LoadHistory(cards []domain.JobCard, order Order) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cards = d.cards[:0]
	for _, c := range cards {
		if order == OrderPrepend {
			d.cards = append([]domain.JobCard{c}, d.cards...)
		} else {
			d.cards = append(d.cards, c)
		}
	}

	switch {
	case len(d.cards) == 0:
		d.active = -1
	case order == OrderPrepend:
		d.active = 0
	default:
		d.active = len(d.cards) - 1
	}
}

// Next moves focus one card forward. Reports whether focus moved.
func (d *Deck) Next() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active < 0 || d.active >= len(d.cards)-1 {
		return false
	}
	d.active++
	return true
}

// Prev moves focus one card back. Reports whether focus moved.
func (d *Deck) Prev() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active <= 0 {
		return false
	}
	d.active--
	return true
}

// SetActive focuses a specific index. Out-of-range indexes are rejected.
func (d *Deck) SetActive(i int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.cards) {
		return false
	}
	d.active = i
	return true
}

// Card looks a card up by id for the overlay detail view.
func (d *Deck) Card(id string) (domain.JobCard, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.cards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.JobCard{}, false
}

// Snapshot returns a copy of the cards plus the active index, safe to render
// without holding the deck lock.
func (d *Deck) Snapshot() ([]domain.JobCard, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.JobCard, len(d.cards))
	copy(out, d.cards)
	return out, d.active
}

func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// CountLabel renders the deck size for the UI badge.
func (d *Deck) CountLabel() string {
	n := d.Len()
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}
