package tournament

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/rs/zerolog"
)

// DrawResult is recorded for games that hit the turn limit.
const DrawResult = "draw"

// RunnerConfig holds everything needed to build a Runner
type RunnerConfig struct {
	Logger zerolog.Logger
	// Rng is shared by every game of the tournament.
	Rng     core.Source
	Rules   game.Rules
	LoadMap game.MapLoader
	// EventBus, when set, receives one event per finished game.
	EventBus   *events.EventBus
	LogFile    string
	ReportFile string
}

// Runner plays tournaments. Each game runs in a fresh engine, so a runner
// never touches the engine that asked for the tournament.
type Runner struct {
	config RunnerConfig
	logger zerolog.Logger
}

func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Rng == nil {
		cfg.Rng = core.NewSessionSource()
	}
	if cfg.Rules == (game.Rules{}) {
		cfg.Rules = game.DefaultRules()
	}
	return &Runner{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "TournamentRunner").Logger(),
	}
}

// RunTournament parses args, plays the tournament and writes the log and
// report files. Argument or map errors are returned before any game starts.
func (r *Runner) RunTournament(ctx context.Context, args []string) (string, error) {
	cfg, err := ParseArgs(args)
	if err != nil {
		return "", err
	}
	report, err := r.Run(ctx, cfg)
	if err != nil {
		return "", err
	}
	if err := r.writeFiles(report); err != nil {
		return "", err
	}
	return report.Summary(), nil
}

// Run plays cfg.Games games on every map and returns the results.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := r.checkMaps(cfg.Maps); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Config:    cfg,
	}
	logger := r.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().
		Strs("maps", cfg.Maps).
		Strs("strategies", cfg.Strategies).
		Int("games", cfg.Games).
		Int("max_turns", cfg.MaxTurns).
		Msg("Tournament started")

	for _, mapName := range cfg.Maps {
		for g := 1; g <= cfg.Games; g++ {
			res, err := r.playGame(ctx, cfg, mapName, g)
			if err != nil {
				return nil, fmt.Errorf("map %s game %d: %w", mapName, g, err)
			}
			report.Results = append(report.Results, res)
			if r.config.EventBus != nil {
				r.config.EventBus.Publish(events.NewTournamentGameFinishedEvent(res.GameID, mapName, g, res.Winner))
			}
			logger.Debug().Str("map", mapName).Int("game", g).Str("result", res.Winner).Int("turns", res.Turns).Msg("Game finished")
		}
	}
	report.Duration = time.Since(report.StartedAt)
	logger.Info().Dur("duration", report.Duration).Int("games", len(report.Results)).Msg("Tournament finished")
	return report, nil
}

// checkMaps loads and validates every map up front.
func (r *Runner) checkMaps(maps []string) error {
	for _, name := range maps {
		m, err := r.config.LoadMap(name)
		if err != nil {
			return err
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("map %s: %w", name, err)
		}
		if m.Size() < MinStrategies {
			return fmt.Errorf("%w: map %s has too few territories", ErrInvalidConfig, name)
		}
	}
	return nil
}

func (r *Runner) playGame(ctx context.Context, cfg Config, mapName string, index int) (Result, error) {
	rules := r.config.Rules
	rules.MaxTurns = cfg.MaxTurns
	if rules.MaxPlayers < len(cfg.Strategies) {
		rules.MaxPlayers = len(cfg.Strategies)
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Logger:  r.logger,
		Rng:     r.config.Rng,
		Rules:   rules,
		LoadMap: r.config.LoadMap,
	})
	if err != nil {
		return Result{}, err
	}

	steps := [][]string{
		{string(states.ActionLoadMap), mapName},
		{string(states.ActionValidateMap)},
	}
	for i, name := range PlayerNames(cfg.Strategies) {
		steps = append(steps, []string{string(states.ActionAddPlayer), name, cfg.Strategies[i]})
	}
	steps = append(steps, []string{string(states.ActionGameStart)})

	for _, step := range steps {
		if _, err := engine.Handle(ctx, states.Action(step[0]), step[1:]); err != nil {
			return Result{}, fmt.Errorf("%s: %w", strings.Join(step, " "), err)
		}
	}

	res := Result{Map: mapName, Game: index, Winner: DrawResult, Turns: engine.Turn(), GameID: engine.GameID()}
	if p, ok := engine.Winner(); ok {
		res.Winner = p.Name
	}
	return res, nil
}

// PlayerNames names each tournament player after its strategy. A strategy
// that appears more than once gets a -2, -3... suffix on its later players.
func PlayerNames(strategies []string) []string {
	counts := make(map[string]int, len(strategies))
	names := make([]string, len(strategies))
	for i, s := range strategies {
		counts[s]++
		names[i] = s
		if n := counts[s]; n > 1 {
			names[i] = fmt.Sprintf("%s-%d", s, n)
		}
	}
	return names
}

func (r *Runner) writeFiles(report *Report) error {
	if path := r.config.LogFile; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open tournament log: %w", err)
		}
		err = WriteLog(f, report)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write tournament log: %w", err)
		}
	}
	if path := r.config.ReportFile; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create tournament report: %w", err)
		}
		err = WriteReport(f, report)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write tournament report: %w", err)
		}
	}
	return nil
}
