package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/processor"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// RunGame plays turns until the game is won or drawn.
func (tp *TurnProcessor) RunGame(ctx context.Context) error {
	for {
		over, err := tp.PlayTurn(ctx)
		if err != nil {
			return err
		}
		if over {
			return nil
		}
	}
}

// PlayTurn runs reinforcement, issue, execution and housekeeping for the
// current turn. It must be called in the assignreinforcement phase and
// reports whether the game ended.
func (tp *TurnProcessor) PlayTurn(ctx context.Context) (bool, error) {
	e := tp.engine
	if phase := e.CurrentPhase(); phase != states.PhaseAssignReinforcement {
		return false, fmt.Errorf("cannot play a turn in phase %s", phase)
	}
	turn := e.Turn()
	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Msg("Starting turn")

	turnStartTime := time.Now()
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, turn))

	// Reinforcement phase
	if err := tp.checkContext(ctx, turn, "reinforcement"); err != nil {
		return false, err
	}
	e.reinforcements.AssignReinforcements(e.world, turn)
	tp.pause(states.PhaseAssignReinforcement)
	if err := tp.advance(states.ActionIssueOrder, turn, "reinforcements assigned"); err != nil {
		return false, err
	}

	// Issue orders phase
	if err := tp.checkContext(ctx, turn, "issue orders"); err != nil {
		return false, err
	}
	tp.issueOrders(turn, turnLogger)
	tp.pause(states.PhaseIssueOrders)
	if err := tp.advance(states.ActionEndIssueOrders, turn, "all orders issued"); err != nil {
		return false, err
	}

	// Execute orders phase
	if err := tp.checkContext(ctx, turn, "execute orders"); err != nil {
		return false, err
	}
	steps := tp.executeOrders(turn)
	tp.pause(states.PhaseExecuteOrders)

	over, err := tp.endOfTurn(turn, turnLogger)
	if err != nil {
		return false, err
	}

	e.eventBus.Publish(events.NewTurnEndedEvent(e.gameID, turn, len(steps), time.Since(turnStartTime)))
	turnLogger.Debug().Int("orders_executed", len(steps)).Bool("game_over", over).Msg("Turn finished")
	return over, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, turn int, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", turn).
			Str("phase", phase).
			Msg("Turn cancelled")
		return core.WrapTurnError(turn, phase, ctx.Err())
	default:
		return nil
	}
}

func (tp *TurnProcessor) advance(action states.Action, turn int, reason string) error {
	if _, err := tp.engine.stateMachine.Apply(action, reason); err != nil {
		return core.WrapTurnError(turn, string(action), err)
	}
	return nil
}

func (tp *TurnProcessor) pause(phase states.GamePhase) {
	if tp.engine.config.Pause != nil {
		tp.engine.config.Pause(phase)
	}
}

// issueOrders asks every player, in roster order, for its defend intents
// and then its attack intents, and turns each into a queued order.
func (tp *TurnProcessor) issueOrders(turn int, turnLogger zerolog.Logger) {
	w := tp.engine.world
	for _, p := range w.Players() {
		if p.Strategy == nil {
			continue
		}
		if p.Strategy.Kind() == core.StrategyCheater {
			tp.cheat(p, turn)
			continue
		}
		for _, in := range p.Strategy.ToDefend(w, p) {
			tp.dispatch(p, in, turn, turnLogger)
		}
		for _, in := range p.Strategy.ToAttack(w, p) {
			tp.dispatch(p, in, turn, turnLogger)
		}
		turnLogger.Debug().
			Str("player", p.Name).
			Int("queued", p.Orders().Len()).
			Int("pool_left", p.Pool()).
			Msg("Player finished issuing orders")
	}
}

// dispatch gates carded intents on the hand, then lets the strategy build
// the order. The card is spent only once the order exists.
func (tp *TurnProcessor) dispatch(p *core.Player, in core.Intent, turn int, turnLogger zerolog.Logger) {
	e := tp.engine
	card, needsCard := in.Kind.RequiredCard()
	if needsCard && p.HasCard(card) < 0 {
		tp.skip(p, in, turn, fmt.Sprintf("no %s card", card))
		return
	}

	switch in.Kind {
	case core.IntentCheat:
		tp.cheat(p, turn)
		return
	case core.IntentReinforcement:
		if _, err := p.Hand().Play(card); err != nil {
			tp.skip(p, in, turn, err.Error())
			return
		}
		armies := e.config.Rules.ReinforcementCardArmies
		_ = p.IncreasePool(armies)
		e.stats.recordIssued(p)
		e.eventBus.Publish(events.NewOrderIssuedEvent(e.gameID, p.ID, p.Name, turn,
			in.Kind.String(), fmt.Sprintf("reinforcement card: +%d to pool", armies)))
		return
	}

	sink := func(msg string) {
		turnLogger.Debug().Str("player", p.Name).Msg(msg)
	}
	o, err := p.Strategy.IssueOrder(e.world, p, in, sink)
	if err != nil {
		tp.skip(p, in, turn, err.Error())
		return
	}
	if needsCard {
		if _, err := p.Hand().Play(card); err != nil {
			turnLogger.Error().Err(err).Str("player", p.Name).Msg("Card vanished after order was issued")
		}
	}
	e.stats.recordIssued(p)
	e.eventBus.Publish(events.NewOrderIssuedEvent(e.gameID, p.ID, p.Name, turn, o.Type().String(), o.String()))
}

func (tp *TurnProcessor) skip(p *core.Player, in core.Intent, turn int, reason string) {
	e := tp.engine
	e.stats.recordSkipped(p)
	e.eventBus.Publish(events.NewOrderSkippedEvent(e.gameID, p.ID, p.Name, turn, in.String(), reason))
}

// cheat annexes one enemy territory bordering the player, picked with the
// session source, bypassing the order queue.
func (tp *TurnProcessor) cheat(p *core.Player, turn int) {
	e := tp.engine
	w := e.world
	seen := make(map[int]bool)
	var targets []*core.Territory
	for _, t := range p.Territories() {
		for _, n := range t.Neighbors() {
			if !n.OwnedBy(p.ID) && !seen[n.ID] {
				seen[n.ID] = true
				targets = append(targets, n)
			}
		}
	}
	if len(targets) == 0 {
		return
	}

	t := targets[w.Rng.Intn(len(targets))]
	former := "nobody"
	if prev := w.Owner(t); prev != nil {
		former = prev.Name
	}
	w.Transfer(t, p)
	p.MarkConquered()
	e.eventBus.Publish(events.NewTerritoryAnnexedEvent(e.gameID, p.ID, p.Name, turn, t.Name, former, t.Armies()))
	tp.logger.Debug().Str("player", p.Name).Str("territory", t.Name).Int("candidates", len(targets)).Msg("Cheater annexed a border")
}

// executeOrders drains every queue and publishes what happened.
func (tp *TurnProcessor) executeOrders(turn int) []processor.Step {
	e := tp.engine
	w := e.world
	return e.orderProcessor.ExecuteOrders(w, w.Players(), func(s processor.Step) {
		e.stats.recordExecuted(s.Player, s.Outcome)
		e.eventBus.Publish(events.NewOrderExecutedEvent(e.gameID, s.Player.ID, s.Player.Name, turn,
			s.Order.Type().String(), s.Order.String(), s.Outcome.Effect, s.Outcome.Executed, s.Pass.String()))

		if s.Outcome.Combat == nil {
			return
		}
		adv, ok := s.Order.(*core.Advance)
		if !ok {
			return
		}
		defender := "nobody"
		if s.Outcome.Loser != nil {
			defender = s.Outcome.Loser.Name
		} else if owner := w.Owner(adv.Target); owner != nil {
			defender = owner.Name
		}
		c := s.Outcome.Combat
		e.eventBus.Publish(events.NewCombatResolvedEvent(e.gameID, turn, s.Player.Name, defender, adv.Target.Name,
			c.Attackers, c.Defenders, c.Attackers-c.AttackersLeft, c.Defenders-c.DefendersLeft, c.Captured()))
	})
}

// endOfTurn removes eliminated players, then checks for a winner and the
// turn limit. If the game goes on, truces expire, conquerors draw a card and
// the machine moves on to the next turn.
func (tp *TurnProcessor) endOfTurn(turn int, turnLogger zerolog.Logger) (bool, error) {
	e := tp.engine
	w := e.world
	gctx := e.stateMachine.GetContext()

	for _, p := range e.winCondition.Eliminated(w.Players()) {
		w.RemovePlayer(p)
		gctx.PlayerCount--
		e.stats.recordElimination(p, turn)
		e.eventBus.Publish(events.NewPlayerEliminatedEvent(e.gameID, p.ID, p.Name, turn))
		turnLogger.Info().Str("player", p.Name).Msg("Player eliminated")
	}
	e.stats.refresh(w)

	if winner, ok := e.winCondition.CheckWin(e.gameMap, w.Players()); ok {
		return true, tp.finish(winner, turn)
	}
	if w.PlayerCount() == 0 || e.winCondition.IsDraw(turn, e.config.Rules.MaxTurns) {
		return true, tp.finish(nil, turn)
	}

	for _, p := range w.Players() {
		p.ClearFriends()
		if p.ConqueredThisTurn() {
			e.drawCard(p, turn)
		}
		p.ResetConquered()
	}
	if w.HasNeutral() {
		w.Neutral().ClearFriends()
	}

	return false, tp.advance(states.ActionEndExecOrders, turn, "next turn")
}

// finish records the result and enters the win state. A nil winner is a draw.
func (tp *TurnProcessor) finish(winner *core.Player, turn int) error {
	e := tp.engine
	gctx := e.stateMachine.GetContext()
	name := ""
	if winner != nil {
		gctx.Winner = winner.ID
		gctx.WinnerName = winner.Name
		name = winner.Name
	} else {
		gctx.Draw = true
	}
	e.winner = winner

	if err := tp.advance(states.ActionWin, turn, "game over"); err != nil {
		return err
	}
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, name, turn, time.Since(e.startedAt)))
	return nil
}
