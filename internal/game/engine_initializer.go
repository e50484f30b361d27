package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/mapgen"
	"github.com/mitchelldurbincs/warzone/internal/game/processor"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/mitchelldurbincs/warzone/internal/game/strategy"
	"github.com/rs/zerolog"
)

// MapLoader turns a map argument into an unvalidated map.
type MapLoader func(name string) (*core.Map, error)

// TournamentRunner validates and runs a tournament from its raw command
// arguments. It must not touch the calling engine when the arguments are
// rejected.
type TournamentRunner interface {
	RunTournament(ctx context.Context, args []string) (string, error)
}

// GameConfig holds everything needed to build an Engine
type GameConfig struct {
	GameID string
	Logger zerolog.Logger
	Rng    core.Source
	Rules  Rules

	// EventBus is shared with the caller when set; a private bus is created otherwise.
	EventBus   *events.EventBus
	Prompter   strategy.Prompter
	LoadMap    MapLoader
	Tournament TournamentRunner
	// Pause, when set, is called between the phases of every turn.
	Pause func(phase states.GamePhase)
}

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates a new engine parked in the start state
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()
	engine := ei.createEngine()

	ei.logger.Debug().
		Str("game_id", engine.gameID).
		Int("max_turns", ei.config.Rules.MaxTurns).
		Int("max_players", ei.config.Rules.MaxPlayers).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new session RNG")
		ei.config.Rng = core.NewSessionSource()
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Rules == (Rules{}) {
		ei.config.Rules = DefaultRules()
	}
	if ei.config.LoadMap == nil {
		ei.config.LoadMap = mapgen.LoadFile
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus()
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	cfg := ei.config

	gameContext := states.NewGameContext(cfg.GameID, cfg.Rules.MaxPlayers, cfg.Rules.MaxTurns, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, cfg.EventBus)

	engine := &Engine{
		config:         cfg,
		gameID:         cfg.GameID,
		rng:            cfg.Rng,
		logger:         ei.logger,
		eventBus:       cfg.EventBus,
		stateMachine:   stateMachine,
		orderProcessor: processor.NewOrderProcessor(ei.logger),
		winCondition:   rules.NewWinConditionChecker(ei.logger),
		stats:          NewStats(),
	}

	engine.reinforcements = NewReinforcementManager(cfg.EventBus, cfg.GameID, cfg.Rules.Reinforcement, ei.logger)
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// NewEngine is a shorthand for NewEngineInitializer(cfg).Initialize(ctx).
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}
