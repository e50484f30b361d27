package core

import "fmt"

// CardType is the kind of action a card unlocks.
type CardType int

const (
	CardBomb CardType = iota
	CardReinforcement
	CardBlockade
	CardAirlift
	CardDiplomacy
)

// AllCardTypes lists every card type in deck-building order.
var AllCardTypes = []CardType{CardBomb, CardReinforcement, CardBlockade, CardAirlift, CardDiplomacy}

func (c CardType) String() string {
	switch c {
	case CardBomb:
		return "bomb"
	case CardReinforcement:
		return "reinforcement"
	case CardBlockade:
		return "blockade"
	case CardAirlift:
		return "airlift"
	case CardDiplomacy:
		return "diplomacy"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Card is a single card instance. Identity matters: a card lives in exactly
// one container (the deck or one hand) at a time.
type Card struct {
	id   int
	kind CardType
}

func (c *Card) ID() int        { return c.id }
func (c *Card) Type() CardType { return c.kind }

func (c *Card) String() string {
	return fmt.Sprintf("%s#%d", c.kind, c.id)
}

// Deck is the shared draw pile. Played cards are discarded, never returned.
type Deck struct {
	cards []*Card
	rng   Source
}

// NewDeck builds a deck with copiesPerType cards of every type.
func NewDeck(copiesPerType int, rng Source) *Deck {
	d := &Deck{rng: rng}
	id := 1
	for _, kind := range AllCardTypes {
		for i := 0; i < copiesPerType; i++ {
			d.cards = append(d.cards, &Card{id: id, kind: kind})
			id++
		}
	}
	return d
}

func (d *Deck) Size() int { return len(d.cards) }

// Cards returns a snapshot of the cards left in the deck.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw removes a uniformly random card and appends it to the hand.
func (d *Deck) Draw(h *Hand) (*Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrEmptyDeck
	}
	idx := d.rng.Intn(len(d.cards))
	card := d.cards[idx]
	d.cards = append(d.cards[:idx], d.cards[idx+1:]...)
	h.Add(card)
	return card, nil
}

// Hand is a player's ordered collection of cards.
type Hand struct {
	cards []*Card
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{}
}

func (h *Hand) Add(c *Card) { h.cards = append(h.cards, c) }
func (h *Hand) Size() int   { return len(h.cards) }

// Cards returns a snapshot of the hand.
func (h *Hand) Cards() []*Card {
	out := make([]*Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// IndexOf returns the index of the first card of the given type, or -1.
func (h *Hand) IndexOf(kind CardType) int {
	for i, c := range h.cards {
		if c.kind == kind {
			return i
		}
	}
	return -1
}

// RemoveAt removes and returns the card at index i.
func (h *Hand) RemoveAt(i int) (*Card, error) {
	if i < 0 || i >= len(h.cards) {
		return nil, fmt.Errorf("hand index %d: %w", i, ErrIndexOutOfRange)
	}
	c := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return c, nil
}

// Play removes the first card of the given type. The card is discarded.
func (h *Hand) Play(kind CardType) (*Card, error) {
	idx := h.IndexOf(kind)
	if idx < 0 {
		return nil, fmt.Errorf("%s card: %w", kind, ErrCardNotFound)
	}
	return h.RemoveAt(idx)
}
