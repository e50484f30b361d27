package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/processor"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/mitchelldurbincs/warzone/internal/game/strategy"
	"github.com/rs/zerolog"
)

var (
	// ErrInternalAction is returned when a caller tries to drive a phase
	// change that only the turn loop may make.
	ErrInternalAction = errors.New("action is issued by the game loop only")
	// ErrDuplicatePlayer is returned by addplayer for a name already taken.
	ErrDuplicatePlayer = errors.New("player name already taken")
	// ErrTooManyPlayers is returned by addplayer once the table is full.
	ErrTooManyPlayers = errors.New("too many players")
	// ErrNoTournament is returned when no tournament runner is configured.
	ErrNoTournament = errors.New("tournament mode is not available")
)

// Engine owns one game session: the state machine, the map and the players.
// It is driven by (action, args) pairs through Handle.
type Engine struct {
	config   GameConfig
	gameID   string
	rng      core.Source
	logger   zerolog.Logger
	eventBus *events.EventBus

	stateMachine   *states.StateMachine
	orderProcessor *processor.OrderProcessor
	winCondition   *rules.WinConditionChecker
	reinforcements *ReinforcementManager
	turnProcessor  *TurnProcessor
	stats          *Stats

	gameMap   *core.Map
	world     *core.World
	winner    *core.Player
	startedAt time.Time
}

// Handle executes one action. Errors leave the engine in the phase it was
// in, except for cancellation during play, which abandons the game and
// resets the engine.
func (e *Engine) Handle(ctx context.Context, action states.Action, args []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Argument counts are the command processor's concern; handlers read
	// missing arguments as empty strings.
	phase := e.CurrentPhase()
	spec, ok := phase.Lookup(action)
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", states.ErrActionNotAllowed, action, phase)
	}
	if spec.Internal {
		return "", fmt.Errorf("%w: %s", ErrInternalAction, action)
	}

	logger := e.logger.With().Str("action", string(action)).Strs("args", args).Logger()
	logger.Debug().Str("phase", phase.String()).Msg("Handling action")

	var effect string
	var err error
	switch action {
	case states.ActionLoadMap:
		effect, err = e.loadMap(argAt(args, 0))
	case states.ActionValidateMap:
		effect, err = e.validateMap()
	case states.ActionAddPlayer:
		effect, err = e.addPlayer(args)
	case states.ActionGameStart:
		effect, err = e.startGame(ctx)
	case states.ActionReplay:
		effect, err = e.replay()
	case states.ActionQuit:
		effect, err = e.apply(states.ActionQuit, "quit requested", "goodbye")
	case states.ActionTournament:
		effect, err = e.runTournament(ctx, args)
	default:
		err = fmt.Errorf("%w: %s", states.ErrActionNotAllowed, action)
	}

	if err != nil {
		logger.Warn().Err(err).Msg("Action failed")
		return "", err
	}
	e.eventBus.Publish(events.NewCommandExecutedEvent(e.gameID, strings.TrimSpace(string(action)+" "+strings.Join(args, " ")), effect))
	return effect, nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (e *Engine) apply(action states.Action, reason, effect string) (string, error) {
	if _, err := e.stateMachine.Apply(action, reason); err != nil {
		return "", err
	}
	return effect, nil
}

func (e *Engine) loadMap(name string) (string, error) {
	m, err := e.config.LoadMap(name)
	if err != nil {
		return "", err
	}
	ctx := e.stateMachine.GetContext()
	prevName := ctx.MapName
	ctx.MapName = m.Name
	if _, err := e.stateMachine.Apply(states.ActionLoadMap, "map "+name+" loaded"); err != nil {
		ctx.MapName = prevName
		return "", err
	}
	e.gameMap = m
	e.world = nil
	return fmt.Sprintf("loaded map %s (%d territories, %d continents)", m.Name, m.Size(), len(m.Continents())), nil
}

func (e *Engine) validateMap() (string, error) {
	if err := e.gameMap.Validate(); err != nil {
		return "", err
	}
	ctx := e.stateMachine.GetContext()
	ctx.MapValid = true
	if _, err := e.stateMachine.Apply(states.ActionValidateMap, "map validated"); err != nil {
		ctx.MapValid = false
		return "", err
	}

	deck := core.NewDeck(e.config.Rules.DeckCopiesPerType, e.rng)
	e.world = core.NewWorld(e.gameMap, deck, e.rng)
	e.world.Combat = e.config.Rules.Combat
	e.world.NeutralStrategy = strategy.Neutral{}
	return fmt.Sprintf("map %s is valid", e.gameMap.Name), nil
}

func (e *Engine) addPlayer(args []string) (string, error) {
	name := argAt(args, 0)
	kindName := e.config.Rules.DefaultStrategy
	if k := argAt(args, 1); k != "" {
		kindName = k
	}
	if name == core.NeutralPlayerName {
		return "", fmt.Errorf("%w: %s is reserved", ErrDuplicatePlayer, name)
	}
	if _, taken := e.world.PlayerByName(name); taken {
		return "", fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}
	if e.world.PlayerCount() >= e.config.Rules.MaxPlayers {
		return "", fmt.Errorf("%w: max %d", ErrTooManyPlayers, e.config.Rules.MaxPlayers)
	}
	strat, err := strategy.Parse(kindName, strategy.Options{
		Prompter:     e.config.Prompter,
		SafetyMargin: e.config.Rules.SafetyMargin,
	})
	if err != nil {
		return "", err
	}

	ctx := e.stateMachine.GetContext()
	ctx.PlayerCount++
	if _, err := e.stateMachine.Apply(states.ActionAddPlayer, "player "+name+" joined"); err != nil {
		ctx.PlayerCount--
		return "", err
	}
	p := e.world.AddPlayer(name, strat)
	e.eventBus.Publish(events.NewPlayerJoinedEvent(e.gameID, p.ID, p.Name, strat.Kind().String()))
	return fmt.Sprintf("added player %s (%s)", p.Name, strat.Kind()), nil
}

// startGame hands out territories, armies and cards, then plays turns until
// the game is won or drawn.
func (e *Engine) startGame(ctx context.Context) (string, error) {
	if _, err := e.stateMachine.Apply(states.ActionGameStart, "game started"); err != nil {
		return "", err
	}
	e.setupStartingPositions()

	if err := e.turnProcessor.RunGame(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("Game abandoned, resetting engine")
		e.resetSession()
		return "", err
	}
	return e.resultSummary(), nil
}

// setupStartingPositions shuffles the roster and deals territories round
// robin in that order, then fills pools and hands.
func (e *Engine) setupStartingPositions() {
	w := e.world
	w.ShufflePlayers()
	players := w.Players()
	r := e.config.Rules

	for i, t := range e.gameMap.Territories() {
		p := players[i%len(players)]
		w.Transfer(t, p)
		_ = t.AddArmies(r.InitialTerritoryArmies)
	}

	names := make([]string, len(players))
	turn := e.stateMachine.GetContext().Turn
	for i, p := range players {
		names[i] = p.Name
		_ = p.IncreasePool(r.InitialPool)
		for c := 0; c < r.InitialCards; c++ {
			e.drawCard(p, turn)
		}
	}

	e.startedAt = time.Now()
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, e.gameMap.Name, names, e.gameMap.Size()))
	e.logger.Info().
		Str("map", e.gameMap.Name).
		Strs("order", names).
		Msg("Starting positions dealt")
}

// drawCard gives p one card; an empty deck is a soft skip.
func (e *Engine) drawCard(p *core.Player, turn int) {
	card, err := e.world.Deck.Draw(p.Hand())
	if err != nil {
		e.logger.Debug().Str("player", p.Name).Err(err).Msg("No card drawn")
		return
	}
	e.stats.recordCard(p)
	e.eventBus.Publish(events.NewCardDrawnEvent(e.gameID, p.ID, p.Name, turn, card.Type().String(), e.world.Deck.Size()))
}

func (e *Engine) replay() (string, error) {
	if _, err := e.stateMachine.Apply(states.ActionReplay, "replay requested"); err != nil {
		return "", err
	}
	e.clearSession()
	return "ready for a new game", nil
}

func (e *Engine) runTournament(ctx context.Context, args []string) (string, error) {
	if e.config.Tournament == nil {
		return "", ErrNoTournament
	}
	summary, err := e.config.Tournament.RunTournament(ctx, args)
	if err != nil {
		return "", err
	}
	if _, err := e.stateMachine.Apply(states.ActionTournament, "tournament finished"); err != nil {
		return "", err
	}
	return summary, nil
}

// resetSession abandons the current game and returns to the start state.
func (e *Engine) resetSession() {
	e.stateMachine.Reset()
	e.clearSession()
}

func (e *Engine) clearSession() {
	e.gameMap = nil
	e.world = nil
	e.winner = nil
	e.startedAt = time.Time{}
	e.stats = NewStats()
}

func (e *Engine) resultSummary() string {
	ctx := e.stateMachine.GetContext()
	if ctx.Draw {
		return fmt.Sprintf("game ended in a draw after %d turns", ctx.Turn)
	}
	return fmt.Sprintf("%s won on turn %d", ctx.WinnerName, ctx.Turn)
}

// CurrentPhase returns the phase the state machine is in.
func (e *Engine) CurrentPhase() states.GamePhase { return e.stateMachine.CurrentPhase() }

// AllowedActions returns the user actions legal in the current phase.
func (e *Engine) AllowedActions() []states.Action {
	return e.stateMachine.CurrentPhase().AllowedActions(false)
}

// Usage returns the usage string for action in the current phase.
func (e *Engine) Usage(action states.Action) (string, bool) {
	spec, ok := e.stateMachine.CurrentPhase().Lookup(action)
	return spec.Usage, ok
}

func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) EventBus() *events.EventBus   { return e.eventBus }
func (e *Engine) Map() *core.Map               { return e.gameMap }
func (e *Engine) World() *core.World           { return e.world }
func (e *Engine) Stats() *Stats                { return e.stats }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }
func (e *Engine) Context() *states.GameContext { return e.stateMachine.GetContext() }
func (e *Engine) Turn() int                    { return e.stateMachine.GetContext().Turn }

// Winner returns the winning player once the game is over.
func (e *Engine) Winner() (*core.Player, bool) {
	return e.winner, e.winner != nil
}

// IsDraw reports whether the game ended on the turn limit.
func (e *Engine) IsDraw() bool { return e.stateMachine.GetContext().Draw }

// IsGameOver reports whether the engine is waiting in the win state.
func (e *Engine) IsGameOver() bool { return e.CurrentPhase() == states.PhaseWin }
