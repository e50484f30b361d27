package game

import (
	"sort"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// PlayerStats is the running tally for one player over a game.
type PlayerStats struct {
	PlayerID       int
	Name           string
	Strategy       string
	Territories    int
	Armies         int
	OrdersIssued   int
	OrdersExecuted int
	OrdersSkipped  int
	Conquests      int
	CardsDrawn     int
	EliminatedOn   int
}

// Stats accumulates per-player statistics for the current game.
type Stats struct {
	players map[int]*PlayerStats
}

// NewStats creates an empty statistics table
func NewStats() *Stats {
	return &Stats{players: make(map[int]*PlayerStats)}
}

func (s *Stats) entry(p *core.Player) *PlayerStats {
	ps, ok := s.players[p.ID]
	if !ok {
		ps = &PlayerStats{PlayerID: p.ID, Name: p.Name}
		if p.Strategy != nil {
			ps.Strategy = p.Strategy.Kind().String()
		}
		s.players[p.ID] = ps
	}
	return ps
}

func (s *Stats) recordIssued(p *core.Player)  { s.entry(p).OrdersIssued++ }
func (s *Stats) recordSkipped(p *core.Player) { s.entry(p).OrdersSkipped++ }
func (s *Stats) recordCard(p *core.Player)    { s.entry(p).CardsDrawn++ }

func (s *Stats) recordExecuted(p *core.Player, out core.Outcome) {
	ps := s.entry(p)
	if out.Executed {
		ps.OrdersExecuted++
	} else {
		ps.OrdersSkipped++
	}
	if out.Conquered != nil && out.Conquered.OwnedBy(p.ID) {
		ps.Conquests++
	}
}

func (s *Stats) recordElimination(p *core.Player, turn int) {
	ps := s.entry(p)
	ps.EliminatedOn = turn
	ps.Territories, ps.Armies = 0, 0
}

// refresh copies the current territory and army counts from the world.
func (s *Stats) refresh(w *core.World) {
	for _, p := range w.Players() {
		ps := s.entry(p)
		ps.Territories = p.TerritoryCount()
		ps.Armies = p.TotalArmies()
	}
}

// Player returns the tally for a player id.
func (s *Stats) Player(id int) (PlayerStats, bool) {
	ps, ok := s.players[id]
	if !ok {
		return PlayerStats{}, false
	}
	return *ps, true
}

// Standings returns every player ever seen, most territories first, then
// most armies, then the latest elimination.
func (s *Stats) Standings() []PlayerStats {
	out := make([]PlayerStats, 0, len(s.players))
	for _, ps := range s.players {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Territories != b.Territories {
			return a.Territories > b.Territories
		}
		if a.Armies != b.Armies {
			return a.Armies > b.Armies
		}
		if a.EliminatedOn != b.EliminatedOn {
			return a.EliminatedOn == 0 || (b.EliminatedOn != 0 && a.EliminatedOn > b.EliminatedOn)
		}
		return a.PlayerID < b.PlayerID
	})
	return out
}
