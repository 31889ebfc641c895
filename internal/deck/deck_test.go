package deck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workhub-engine/internal/domain"
)

func cardWithID(id string) domain.JobCard {
	return domain.JobCard{ID: id}
}

func TestNewDeckIsEmpty(t *testing.T) {
	d := New()
	cards, active := d.Snapshot()
	assert.Empty(t, cards)
	assert.Equal(t, -1, active)
	assert.Equal(t, "0 cards", d.CountLabel())
}

func TestInsertAsActiveFocusesNewest(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.InsertAsActive(cardWithID("a")))
	assert.Equal(t, 1, d.InsertAsActive(cardWithID("b")))

	cards, active := d.Snapshot()
	require.Len(t, cards, 2)
	assert.Equal(t, 1, active)
	assert.Equal(t, "b", cards[active].ID)
}

func TestLoadHistoryAppend(t *testing.T) {
	d := New()
	d.LoadHistory([]domain.JobCard{cardWithID("a"), cardWithID("b"), cardWithID("c")}, OrderAppend)

	cards, active := d.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, ids(cards))
	assert.Equal(t, 2, active, "server order kept, last card focused")
}

func TestLoadHistoryPrepend(t *testing.T) {
	d := New()
	d.LoadHistory([]domain.JobCard{cardWithID("a"), cardWithID("b"), cardWithID("c")}, OrderPrepend)

	cards, active := d.Snapshot()
	assert.Equal(t, []string{"c", "b", "a"}, ids(cards))
	assert.Equal(t, 0, active, "newest first, newest focused")
}

func TestLoadHistoryEmptyResetsActive(t *testing.T) {
	d := New()
	d.InsertAsActive(cardWithID("a"))
	d.LoadHistory(nil, OrderAppend)

	cards, active := d.Snapshot()
	assert.Empty(t, cards)
	assert.Equal(t, -1, active)
}

func TestCarouselNavigationClampsAtEnds(t *testing.T) {
	d := New()
	assert.False(t, d.Next(), "empty deck")
	assert.False(t, d.Prev(), "empty deck")

	d.LoadHistory([]domain.JobCard{cardWithID("a"), cardWithID("b")}, OrderAppend)

	// Focus starts on "b" (index 1).
	assert.False(t, d.Next())
	assert.True(t, d.Prev())
	assert.False(t, d.Prev())

	_, active := d.Snapshot()
	assert.Equal(t, 0, active)
}

func TestSetActiveRejectsOutOfRange(t *testing.T) {
	d := New()
	d.InsertAsActive(cardWithID("a"))

	assert.False(t, d.SetActive(-1))
	assert.False(t, d.SetActive(1))
	assert.True(t, d.SetActive(0))
}

func TestCardLookup(t *testing.T) {
	d := New()
	d.InsertAsActive(cardWithID("a"))
	d.InsertAsActive(cardWithID("b"))

	c, ok := d.Card("a")
	require.True(t, ok)
	assert.Equal(t, "a", c.ID)

	_, ok = d.Card("zzz")
	assert.False(t, ok)
}

func TestCountLabelPluralization(t *testing.T) {
	d := New()
	for n := 0; n < 4; n++ {
		want := fmt.Sprintf("%d cards", n)
		if n == 1 {
			want = "1 card"
		}
		assert.Equal(t, want, d.CountLabel())
		d.InsertAsActive(cardWithID(fmt.Sprint(n)))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := New()
	d.InsertAsActive(cardWithID("a"))

	cards, _ := d.Snapshot()
	cards[0].ID = "mutated"

	again, _ := d.Snapshot()
	assert.Equal(t, "a", again[0].ID)
}

func ids(cards []domain.JobCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
