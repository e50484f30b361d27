// Package strategy implements the player decision policies.
package strategy

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// DefaultSafetyMargin is the number of armies Aggressive keeps at home when
// it can afford to.
const DefaultSafetyMargin = 5

// ErrNoPrompter is returned when a human strategy is requested without a
// way to ask the user.
var ErrNoPrompter = errors.New("human strategy needs a prompter")

// Options configures the strategies built by New.
type Options struct {
	Prompter     Prompter
	SafetyMargin int
}

// New returns the strategy for the given kind.
func New(kind core.StrategyKind, opts Options) (core.Strategy, error) {
	switch kind {
	case core.StrategyHuman:
		if opts.Prompter == nil {
			return nil, ErrNoPrompter
		}
		return NewHuman(opts.Prompter), nil
	case core.StrategyAggressive:
		margin := opts.SafetyMargin
		if margin <= 0 {
			margin = DefaultSafetyMargin
		}
		return &Aggressive{SafetyMargin: margin}, nil
	case core.StrategyBenevolent:
		return Benevolent{}, nil
	case core.StrategyNeutral:
		return Neutral{}, nil
	case core.StrategyCheater:
		return Cheater{}, nil
	default:
		return nil, fmt.Errorf("strategy %s: %w", kind, core.ErrUnknownStrategy)
	}
}

// Parse resolves a strategy name and builds it.
func Parse(name string, opts Options) (core.Strategy, error) {
	kind, err := core.ParseStrategyKind(name)
	if err != nil {
		return nil, err
	}
	return New(kind, opts)
}

// ProjectedArmies is the army count t will hold once the player's queued
// deploys have landed and its queued outgoing moves have left.
func ProjectedArmies(p *core.Player, t *core.Territory) int {
	n := t.Armies()
	for _, o := range p.Orders().Orders() {
		switch ord := o.(type) {
		case *core.Deploy:
			if ord.Target == t {
				n += ord.Armies
			}
		case *core.Advance:
			if ord.Source == t {
				n -= ord.Armies
			}
		case *core.Airlift:
			if ord.Source == t {
				n -= ord.Armies
			}
		}
	}
	if n < 0 {
		n = 0
	}
	return n
}

// build turns an intent into an order, debits the pool for deploys and
// queues the order. armies is ignored by kinds that carry no count.
func build(w *core.World, p *core.Player, in core.Intent, armies int) (core.Order, error) {
	var o core.Order
	switch in.Kind {
	case core.IntentDeploy:
		if err := p.DecreasePool(armies); err != nil {
			return nil, err
		}
		o = core.NewDeploy(p, in.Target, armies)
	case core.IntentAdvance:
		o = core.NewAdvance(p, in.Source, in.Target, armies)
	case core.IntentAirlift:
		o = core.NewAirlift(p, in.Source, in.Target, armies)
	case core.IntentBomb:
		o = core.NewBomb(p, in.Target)
	case core.IntentBlockade:
		o = core.NewBlockade(p, in.Target)
	case core.IntentNegotiate:
		target := w.Owner(in.Target)
		if target == nil {
			return nil, fmt.Errorf("negotiate over %s: %w", in.Target.Name, core.ErrInvalidPlayer)
		}
		o = core.NewNegotiate(p, target)
	default:
		return nil, fmt.Errorf("intent %s cannot become an order: %w", in.Kind, core.ErrNoOrdersAvailable)
	}
	p.Orders().Add(o)
	return o, nil
}

func emit(sink core.LogSink, format string, args ...interface{}) {
	if sink != nil {
		sink(fmt.Sprintf(format, args...))
	}
}
