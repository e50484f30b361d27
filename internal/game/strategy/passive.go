package strategy

import "github.com/mitchelldurbincs/warzone/internal/game/core"

// Benevolent never issues orders.
type Benevolent struct{}

func (Benevolent) Kind() core.StrategyKind                          { return core.StrategyBenevolent }
func (Benevolent) ToDefend(*core.World, *core.Player) []core.Intent { return nil }
func (Benevolent) ToAttack(*core.World, *core.Player) []core.Intent { return nil }

func (Benevolent) IssueOrder(*core.World, *core.Player, core.Intent, core.LogSink) (core.Order, error) {
	return nil, core.ErrNoOrdersAvailable
}

// Neutral never issues orders. Blockaded territories belong to a Neutral player.
type Neutral struct{}

func (Neutral) Kind() core.StrategyKind                          { return core.StrategyNeutral }
func (Neutral) ToDefend(*core.World, *core.Player) []core.Intent { return nil }
func (Neutral) ToAttack(*core.World, *core.Player) []core.Intent { return nil }

func (Neutral) IssueOrder(*core.World, *core.Player, core.Intent, core.LogSink) (core.Order, error) {
	return nil, core.ErrNoOrdersAvailable
}

// Cheater has no ordinary intents. The turn engine annexes territory on its
// behalf once per turn.
type Cheater struct{}

func (Cheater) Kind() core.StrategyKind                          { return core.StrategyCheater }
func (Cheater) ToDefend(*core.World, *core.Player) []core.Intent { return nil }
func (Cheater) ToAttack(*core.World, *core.Player) []core.Intent { return nil }

func (Cheater) IssueOrder(*core.World, *core.Player, core.Intent, core.LogSink) (core.Order, error) {
	return nil, core.ErrNoOrdersAvailable
}
