package core

import "fmt"

// Player aggregates the territories, hand, order queue and reinforcement pool
// of one participant. The territory set is authoritative: a territory is in
// it iff its Owner field holds this player's ID.
type Player struct {
	ID       int
	Name     string
	Neutral  bool
	Strategy Strategy

	territories []*Territory
	hand        *Hand
	orders      *OrdersList
	pool        int
	friends     map[int]struct{}
	conquered   bool
}

// NewPlayer creates a player with an empty hand, queue and pool.
func NewPlayer(id int, name string, strategy Strategy) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Strategy: strategy,
		hand:     NewHand(),
		orders:   NewOrdersList(),
		friends:  make(map[int]struct{}),
	}
}

func (p *Player) Hand() *Hand             { return p.hand }
func (p *Player) Orders() *OrdersList     { return p.orders }
func (p *Player) Pool() int               { return p.pool }
func (p *Player) ConqueredThisTurn() bool { return p.conquered }

// Territories returns a snapshot of the owned territories.
func (p *Player) Territories() []*Territory {
	out := make([]*Territory, len(p.territories))
	copy(out, p.territories)
	return out
}

func (p *Player) TerritoryCount() int { return len(p.territories) }

// Owns reports whether t is in the player's territory set.
func (p *Player) Owns(t *Territory) bool {
	for _, own := range p.territories {
		if own == t {
			return true
		}
	}
	return false
}

// AcquireTerritory adds t to the owned set and stamps the owner.
// The previous owner, if any, must release it first (see World.Transfer).
func (p *Player) AcquireTerritory(t *Territory) {
	t.Owner = p.ID
	if !p.Owns(t) {
		p.territories = append(p.territories, t)
	}
}

// RemoveTerritory drops t from the owned set. Clearing t.Owner is the
// caller's job.
func (p *Player) RemoveTerritory(t *Territory) {
	for i, own := range p.territories {
		if own == t {
			p.territories = append(p.territories[:i], p.territories[i+1:]...)
			return
		}
	}
}

// IncreasePool adds n armies to the reinforcement pool.
func (p *Player) IncreasePool(n int) error {
	if n < 0 {
		return WrapPlayerError(p, "increase pool", ErrNegativeAmount)
	}
	p.pool += n
	return nil
}

// DecreasePool takes n armies from the pool. It fails rather than clamping.
func (p *Player) DecreasePool(n int) error {
	if n < 0 {
		return WrapPlayerError(p, "decrease pool", ErrNegativeAmount)
	}
	if n > p.pool {
		return WrapPlayerError(p, fmt.Sprintf("decrease pool by %d (have %d)", n, p.pool), ErrInsufficientPool)
	}
	p.pool -= n
	return nil
}

// HasCard returns the index of the first card of the given type, or -1.
func (p *Player) HasCard(kind CardType) int {
	return p.hand.IndexOf(kind)
}

// AddFriend records a truce with other for the rest of the turn.
func (p *Player) AddFriend(other *Player) {
	if other == nil || other == p {
		return
	}
	p.friends[other.ID] = struct{}{}
}

func (p *Player) ClearFriends() {
	p.friends = make(map[int]struct{})
}

// IsFriend reports whether a truce with the given player is active.
func (p *Player) IsFriend(other *Player) bool {
	if other == nil {
		return false
	}
	_, ok := p.friends[other.ID]
	return ok
}

func (p *Player) MarkConquered()  { p.conquered = true }
func (p *Player) ResetConquered() { p.conquered = false }

// IsEliminated reports whether the player has lost every territory.
func (p *Player) IsEliminated() bool { return len(p.territories) == 0 }

// TotalArmies sums the armies on every owned territory.
func (p *Player) TotalArmies() int {
	total := 0
	for _, t := range p.territories {
		total += t.armies
	}
	return total
}

func (p *Player) String() string {
	return p.Name
}
