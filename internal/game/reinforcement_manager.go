package game

import (
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
	"github.com/rs/zerolog"
)

// ReinforcementManager hands out the per-turn army income
type ReinforcementManager struct {
	eventBus *events.EventBus
	gameID   string
	rules    rules.ReinforcementRules
	logger   zerolog.Logger
}

// NewReinforcementManager creates a new reinforcement manager
func NewReinforcementManager(eventBus *events.EventBus, gameID string, rr rules.ReinforcementRules, logger zerolog.Logger) *ReinforcementManager {
	return &ReinforcementManager{
		eventBus: eventBus,
		gameID:   gameID,
		rules:    rr,
		logger:   logger.With().Str("component", "ReinforcementManager").Logger(),
	}
}

// AssignReinforcements adds each player's income for the turn to its pool
// and returns the total handed out.
func (rm *ReinforcementManager) AssignReinforcements(w *core.World, turn int) int {
	rm.logger.Debug().
		Int("turn", turn).
		Int("players", w.PlayerCount()).
		Msg("Assigning reinforcements")

	total := 0
	for _, p := range w.Players() {
		r := rm.rules.Calculate(w.Map, p)
		if err := p.IncreasePool(r.Total()); err != nil {
			rm.logger.Error().Err(err).Str("player", p.Name).Msg("Could not credit reinforcements")
			continue
		}
		total += r.Total()
		rm.publishReinforcementEvent(p, turn, r)

		continents := make([]string, len(r.Continents))
		for i, c := range r.Continents {
			continents[i] = c.Name
		}
		rm.logger.Debug().
			Str("player", p.Name).
			Int("territories", p.TerritoryCount()).
			Int("base", r.Base).
			Int("bonus", r.Bonus).
			Strs("continents", continents).
			Int("pool", p.Pool()).
			Msg("Reinforcements assigned")
	}

	rm.logger.Debug().Int("total_reinforcements", total).Msg("Turn reinforcement complete")
	return total
}

func (rm *ReinforcementManager) publishReinforcementEvent(p *core.Player, turn int, r rules.Reinforcement) {
	if rm.eventBus == nil {
		return
	}
	rm.eventBus.Publish(events.NewReinforcementAssignedEvent(
		rm.gameID,
		p.ID,
		p.Name,
		turn,
		r.Base,
		r.Bonus,
		p.Pool(),
	))
}
