package game

import (
	"github.com/mitchelldurbincs/warzone/internal/config"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
)

// Rules gathers the tunable game constants.
type Rules struct {
	MaxTurns                int
	MaxPlayers              int
	InitialPool             int
	InitialTerritoryArmies  int
	InitialCards            int
	DeckCopiesPerType       int
	DefaultStrategy         string
	ReinforcementCardArmies int
	SafetyMargin            int
	Reinforcement           rules.ReinforcementRules
	Combat                  core.CombatRules
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		MaxTurns:                50,
		MaxPlayers:              6,
		InitialPool:             50,
		InitialTerritoryArmies:  1,
		InitialCards:            2,
		DeckCopiesPerType:       5,
		DefaultStrategy:         "human",
		ReinforcementCardArmies: 5,
		SafetyMargin:            5,
		Reinforcement:           rules.DefaultReinforcementRules(),
		Combat:                  core.DefaultCombatRules(),
	}
}

// RulesFromConfig reads the game constants from the application config.
func RulesFromConfig(c *config.Config) Rules {
	return Rules{
		MaxTurns:                c.Game.MaxTurns,
		MaxPlayers:              c.Game.MaxPlayers,
		InitialPool:             c.Game.InitialPool,
		InitialTerritoryArmies:  c.Game.InitialTerritoryArmies,
		InitialCards:            c.Game.InitialCards,
		DeckCopiesPerType:       c.Deck.CopiesPerType,
		DefaultStrategy:         c.Game.DefaultStrategy,
		ReinforcementCardArmies: c.Strategy.ReinforcementCardArmies,
		SafetyMargin:            c.Strategy.AggressiveSafetyMargin,
		Reinforcement: rules.ReinforcementRules{
			Minimum:            c.Game.MinReinforcement,
			TerritoriesPerArmy: c.Game.TerritoriesPerArmy,
		},
		Combat: core.CombatRules{
			AttackKillPercent: c.Combat.AttackKillPercent,
			DefendKillPercent: c.Combat.DefendKillPercent,
		},
	}
}
