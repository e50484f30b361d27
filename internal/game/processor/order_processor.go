package processor

import (
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/rs/zerolog"
)

// Pass identifies which execution pass ran an order.
type Pass int

const (
	PassDeploy Pass = iota
	PassRoundRobin
)

func (p Pass) String() string {
	if p == PassDeploy {
		return "deploy"
	}
	return "round-robin"
}

// Step is one executed order in the order it ran.
type Step struct {
	Pass    Pass
	Round   int
	Player  *core.Player
	Order   core.Order
	Outcome core.Outcome
}

// OrderProcessor drains every player's order queue into a single
// deterministic execution sequence.
type OrderProcessor struct {
	logger zerolog.Logger
}

// NewOrderProcessor creates a new order processor
func NewOrderProcessor(logger zerolog.Logger) *OrderProcessor {
	return &OrderProcessor{
		logger: logger.With().Str("component", "OrderProcessor").Logger(),
	}
}

// ExecuteOrders runs every Deploy order first, player by player, then
// round-robins the remaining queues: each round executes the front order of
// every player that still has one. Queues are empty when it returns.
// onStep, if non-nil, is called after each order executes.
func (op *OrderProcessor) ExecuteOrders(w *core.World, players []*core.Player, onStep func(Step)) []Step {
	var trace []Step
	record := func(s Step) {
		trace = append(trace, s)
		if onStep != nil {
			onStep(s)
		}
	}

	op.logger.Debug().Int("players", len(players)).Msg("Executing deploy orders")
	for _, p := range players {
		for _, o := range p.Orders().TakeType(core.OrderDeploy) {
			out := o.Execute(w)
			op.logStep(p, o, out)
			record(Step{Pass: PassDeploy, Player: p, Order: o, Outcome: out})
		}
	}

	rounds := 0
	for _, p := range players {
		if n := p.Orders().Len(); n > rounds {
			rounds = n
		}
	}
	op.logger.Debug().Int("rounds", rounds).Msg("Executing remaining orders round-robin")
	for r := 0; r < rounds; r++ {
		for _, p := range players {
			o, ok := p.Orders().PopFront()
			if !ok {
				continue
			}
			out := o.Execute(w)
			op.logStep(p, o, out)
			record(Step{Pass: PassRoundRobin, Round: r + 1, Player: p, Order: o, Outcome: out})
		}
	}
	return trace
}

func (op *OrderProcessor) logStep(p *core.Player, o core.Order, out core.Outcome) {
	ev := op.logger.Debug()
	if !out.Executed {
		ev = op.logger.Info()
	}
	ev.Str("player", p.Name).
		Str("order", o.String()).
		Bool("executed", out.Executed).
		Str("effect", out.Effect).
		Msg("Order processed")
}
