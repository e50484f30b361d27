package rules

import "github.com/mitchelldurbincs/warzone/internal/game/core"

// ReinforcementRules controls the per-turn army income.
type ReinforcementRules struct {
	Minimum            int
	TerritoriesPerArmy int
}

// DefaultReinforcementRules gives max(3, territories/3).
func DefaultReinforcementRules() ReinforcementRules {
	return ReinforcementRules{Minimum: 3, TerritoriesPerArmy: 3}
}

// Reinforcement is the breakdown of one player's income for a turn.
type Reinforcement struct {
	Base       int
	Bonus      int
	Continents []*core.Continent
}

func (r Reinforcement) Total() int { return r.Base + r.Bonus }

// Calculate returns max(Minimum, owned/TerritoriesPerArmy) plus the bonus of
// every continent the player fully owns.
func (rr ReinforcementRules) Calculate(m *core.Map, p *core.Player) Reinforcement {
	per := rr.TerritoriesPerArmy
	if per <= 0 {
		per = 1
	}
	base := p.TerritoryCount() / per
	if base < rr.Minimum {
		base = rr.Minimum
	}
	r := Reinforcement{Base: base}
	for _, c := range m.Continents() {
		if c.IsOwnedBy(p.ID) {
			r.Bonus += c.Bonus
			r.Continents = append(r.Continents, c)
		}
	}
	return r
}
