package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck(3, rand.New(rand.NewSource(1)))
	assert.Equal(t, 15, d.Size())

	counts := map[CardType]int{}
	ids := map[int]bool{}
	for _, c := range d.Cards() {
		counts[c.Type()]++
		assert.False(t, ids[c.ID()], "card ids are unique")
		ids[c.ID()] = true
	}
	for _, kind := range AllCardTypes {
		assert.Equal(t, 3, counts[kind], kind.String())
	}
}

func TestDeck_DrawEmpty(t *testing.T) {
	d := NewDeck(0, rand.New(rand.NewSource(1)))
	h := NewHand()
	_, err := d.Draw(h)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 0, h.Size())
}

func TestDeck_DrawUsesSourceIndex(t *testing.T) {
	d := NewDeck(1, &fixedSource{values: []int{2}})
	h := NewHand()
	c, err := d.Draw(h)
	require.NoError(t, err)
	assert.Equal(t, CardBlockade, c.Type())
	assert.Equal(t, 4, d.Size())
	assert.Equal(t, 1, h.Size())
}

func TestHand_Play(t *testing.T) {
	h := NewHand()
	h.Add(&Card{id: 1, kind: CardBomb})
	h.Add(&Card{id: 2, kind: CardAirlift})
	h.Add(&Card{id: 3, kind: CardBomb})

	assert.Equal(t, 0, h.IndexOf(CardBomb))
	assert.Equal(t, 1, h.IndexOf(CardAirlift))
	assert.Equal(t, -1, h.IndexOf(CardDiplomacy))

	c, err := h.Play(CardBomb)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID(), "first matching card is played")
	assert.Equal(t, 1, h.IndexOf(CardBomb))

	_, err = h.Play(CardDiplomacy)
	assert.ErrorIs(t, err, ErrCardNotFound)

	_, err = h.RemoveAt(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeck_PartitionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		copies := rapid.IntRange(0, 6).Draw(t, "copies")
		hands := rapid.IntRange(1, 4).Draw(t, "hands")
		draws := rapid.IntRange(0, 40).Draw(t, "draws")
		seed := rapid.Int64().Draw(t, "seed")

		d := NewDeck(copies, rand.New(rand.NewSource(seed)))
		total := d.Size()
		hs := make([]*Hand, hands)
		for i := range hs {
			hs[i] = NewHand()
		}
		for i := 0; i < draws; i++ {
			_, err := d.Draw(hs[i%hands])
			if err != nil && err != ErrEmptyDeck {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		seen := map[*Card]int{}
		for _, c := range d.Cards() {
			seen[c]++
		}
		for _, h := range hs {
			for _, c := range h.Cards() {
				seen[c]++
			}
		}
		if len(seen) != total {
			t.Fatalf("card population changed: %d != %d", len(seen), total)
		}
		for c, n := range seen {
			if n != 1 {
				t.Fatalf("card %s appears in %d containers", c, n)
			}
		}
	})
}

type fixedSource struct {
	values []int
	calls  int
}

func (s *fixedSource) Intn(n int) int {
	v := 0
	if s.calls < len(s.values) {
		v = s.values[s.calls]
	}
	s.calls++
	return v % n
}
