package core

import "fmt"

// NeutralPlayerName is the name given to the lazily created neutral player.
const NeutralPlayerName = "Neutral"

// CombatRules holds the per-unit kill chances used by Advance.
type CombatRules struct {
	AttackKillPercent int
	DefendKillPercent int
}

// DefaultCombatRules returns the standard 60/70 split.
func DefaultCombatRules() CombatRules {
	return CombatRules{AttackKillPercent: 60, DefendKillPercent: 70}
}

// World is the mutable session context orders execute against: the map, the
// active roster, the deck, the shared RNG and the neutral player.
type World struct {
	Map    *Map
	Deck   *Deck
	Rng    Source
	Combat CombatRules

	// NeutralStrategy is attached to the neutral player when it is created.
	NeutralStrategy Strategy

	players []*Player
	byID    map[int]*Player
	nextID  int
	neutral *Player
}

// NewWorld creates a session context around a loaded map.
func NewWorld(m *Map, deck *Deck, rng Source) *World {
	return &World{
		Map:    m,
		Deck:   deck,
		Rng:    rng,
		Combat: DefaultCombatRules(),
		byID:   make(map[int]*Player),
		nextID: 1,
	}
}

// AddPlayer registers a new active player and returns it.
func (w *World) AddPlayer(name string, strategy Strategy) *Player {
	p := NewPlayer(w.nextID, name, strategy)
	w.nextID++
	w.players = append(w.players, p)
	w.byID[p.ID] = p
	return p
}

// Players returns the active roster in turn order. The neutral player is never part of it.
func (w *World) Players() []*Player {
	out := make([]*Player, len(w.players))
	copy(out, w.players)
	return out
}

func (w *World) PlayerCount() int { return len(w.players) }

// Player looks up any known player, including eliminated and neutral ones.
func (w *World) Player(id int) (*Player, bool) {
	p, ok := w.byID[id]
	return p, ok
}

// PlayerByName looks up an active player by name.
func (w *World) PlayerByName(name string) (*Player, bool) {
	for _, p := range w.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Owner returns the player who owns t, or nil when t is unowned.
func (w *World) Owner(t *Territory) *Player {
	if t == nil || t.Owner == NoOwner {
		return nil
	}
	return w.byID[t.Owner]
}

// Neutral returns the neutral player, creating it on first use.
func (w *World) Neutral() *Player {
	if w.neutral == nil {
		w.neutral = NewPlayer(w.nextID, NeutralPlayerName, w.NeutralStrategy)
		w.neutral.Neutral = true
		w.nextID++
		w.byID[w.neutral.ID] = w.neutral
	}
	return w.neutral
}

// HasNeutral reports whether the neutral player has been created.
func (w *World) HasNeutral() bool { return w.neutral != nil }

// Transfer moves ownership of t to the given player, keeping both players'
// territory sets consistent. A nil recipient leaves t unowned.
func (w *World) Transfer(t *Territory, to *Player) {
	if prev := w.Owner(t); prev != nil {
		prev.RemoveTerritory(t)
	}
	t.Owner = NoOwner
	if to != nil {
		to.AcquireTerritory(t)
	}
}

// RemovePlayer drops a player from the active roster. Its record stays
// resolvable through Player(id).
func (w *World) RemovePlayer(p *Player) {
	for i, cur := range w.players {
		if cur == p {
			w.players = append(w.players[:i], w.players[i+1:]...)
			return
		}
	}
}

// ShufflePlayers randomises turn order with the session RNG.
func (w *World) ShufflePlayers() {
	Shuffle(w.Rng, len(w.players), func(i, j int) {
		w.players[i], w.players[j] = w.players[j], w.players[i]
	})
}

// CheckOwnership verifies that every territory's Owner matches exactly one
// player's territory set.
func (w *World) CheckOwnership() error {
	for _, t := range w.Map.Territories() {
		for _, p := range w.byID {
			owns := p.Owns(t)
			if owns != (t.Owner == p.ID) {
				return fmt.Errorf("territory %s owner %d disagrees with player %s", t.Name, t.Owner, p.Name)
			}
		}
		if t.Owner != NoOwner {
			if _, ok := w.byID[t.Owner]; !ok {
				return fmt.Errorf("territory %s owned by unknown player %d: %w", t.Name, t.Owner, ErrInvalidPlayer)
			}
		}
	}
	return nil
}
