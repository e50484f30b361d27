package strategy

import (
	"fmt"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
)

// Aggressive puts everything on its strongest territory and attacks outward
// from it.
type Aggressive struct {
	SafetyMargin int
}

func (a *Aggressive) Kind() core.StrategyKind { return core.StrategyAggressive }

func (a *Aggressive) ToDefend(w *core.World, p *core.Player) []core.Intent {
	if p.Pool() == 0 {
		return nil
	}
	strongest := rules.Strongest(p.Territories())
	if strongest == nil {
		return nil
	}
	return []core.Intent{{Target: strongest, Kind: core.IntentDeploy}}
}

func (a *Aggressive) ToAttack(w *core.World, p *core.Player) []core.Intent {
	owned := p.Territories()
	strongest := rules.Strongest(owned)
	if strongest == nil {
		return nil
	}

	var intents []core.Intent
	enemies := rules.EnemyNeighbors(p, strongest)

	if p.HasCard(core.CardBomb) >= 0 {
		candidates := enemies
		if len(candidates) == 0 {
			candidates = rules.Attackable(p)
		}
		// Halving a single army leaves an empty territory that cannot be attacked.
		if target := rules.Strongest(candidates); target != nil && target.Armies() > 1 {
			intents = append(intents, core.Intent{Target: target, Kind: core.IntentBomb})
		}
	}

	if len(enemies) > 0 {
		for _, e := range enemies {
			intents = append(intents, core.Intent{Source: strongest, Target: e, Kind: core.IntentAdvance})
		}
		return intents
	}

	// Landlocked: march toward the nearest border.
	if step := rules.PathToward(p, strongest, rules.Frontier(p)); step != nil {
		intents = append(intents, core.Intent{Source: strongest, Target: step, Kind: core.IntentAdvance})
	}
	return intents
}

func (a *Aggressive) IssueOrder(w *core.World, p *core.Player, in core.Intent, sink core.LogSink) (core.Order, error) {
	armies := 0
	switch in.Kind {
	case core.IntentDeploy:
		armies = p.Pool()
	case core.IntentAdvance, core.IntentAirlift:
		armies = a.advanceCount(p, in)
		if armies == 0 {
			return nil, fmt.Errorf("advance from %s: nothing to spare above the safety margin: %w", in.Source.Name, core.ErrInsufficientArmy)
		}
	}
	o, err := build(w, p, in, armies)
	if err != nil {
		return nil, err
	}
	emit(sink, "%s (aggressive) issued %s", p.Name, o)
	return o, nil
}

// advanceCount splits one attack budget across the enemy borders of the
// source, so SafetyMargin armies stay home however many attacks are queued.
// A stack no larger than the margin attacks with everything. Moves between
// own territories take everything.
func (a *Aggressive) advanceCount(p *core.Player, in core.Intent) int {
	home := ProjectedArmies(p, in.Source)
	if in.Target != nil && in.Target.OwnedBy(p.ID) {
		return home
	}

	committed := 0
	targeted := make(map[*core.Territory]bool)
	for _, o := range p.Orders().Orders() {
		adv, ok := o.(*core.Advance)
		if !ok || adv.Source != in.Source || adv.Target.OwnedBy(p.ID) {
			continue
		}
		committed += adv.Armies
		targeted[adv.Target] = true
	}

	budget := home + committed
	if budget > a.SafetyMargin {
		budget -= a.SafetyMargin
	}
	remaining := budget - committed
	if remaining <= 0 {
		return 0
	}
	left := 0
	for _, e := range rules.EnemyNeighbors(p, in.Source) {
		if !targeted[e] {
			left++
		}
	}
	if left == 0 {
		left = 1
	}
	return (remaining + left - 1) / left
}
