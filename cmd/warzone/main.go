package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/warzone/internal/command"
	"github.com/mitchelldurbincs/warzone/internal/config"
	"github.com/mitchelldurbincs/warzone/internal/console"
	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/warzone/internal/game/mapgen"
	"github.com/mitchelldurbincs/warzone/internal/logging"
	"github.com/mitchelldurbincs/warzone/internal/tournament"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	commandsFile := flag.String("commands", "", "Read commands from this file instead of the console")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 seeds from the clock)")
	pause := flag.Bool("pause", false, "Pause between turn phases")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	closer, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer closer.Close()

	config.WatchConfig(func(c *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		zerolog.SetGlobalLevel(logging.ParseLevel(c.Log.Level))
		log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded, game rules apply from the next session")
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *commandsFile, *seed, *pause || cfg.Game.PauseBetweenPhases); err != nil {
		log.Error().Err(err).Msg("Session ended with an error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, commandsFile string, seed int64, pause bool) error {
	var rng core.Source = core.NewSessionSource()
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel))
	if path := cfg.Log.GameLogFile; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open game log: %w", err)
		}
		defer f.Close()
		bus.Subscribe(subscribers.NewGameLogSubscriber("gamelog", f))
	}

	con := console.NewInteractive(os.Stdout)
	renderer := console.NewRenderer(os.Stdout)
	rules := game.RulesFromConfig(cfg)

	runner := tournament.NewRunner(tournament.RunnerConfig{
		Logger:     log.Logger,
		Rng:        rng,
		Rules:      rules,
		LoadMap:    mapLoader,
		EventBus:   bus,
		LogFile:    cfg.Tournament.LogFile,
		ReportFile: cfg.Tournament.ReportFile,
	})

	gameCfg := game.GameConfig{
		Logger:     log.Logger,
		Rng:        rng,
		Rules:      rules,
		EventBus:   bus,
		Prompter:   con,
		LoadMap:    mapLoader,
		Tournament: runner,
	}
	if pause {
		gameCfg.Pause = con.Pause
	}
	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		return err
	}

	// Tournament games share the bus; only the session's own game is drawn.
	bus.SubscribeGame(engine.GameID(), events.TypeTurnStarted, func(ev events.Event) {
		renderer.Banner(fmt.Sprintf("Turn %d", ev.(*events.TurnStartedEvent).TurnNumber))
	})
	bus.SubscribeGame(engine.GameID(), events.TypeGameEnded, func(events.Event) {
		if err := renderer.Standings(engine.Stats().Standings()); err != nil {
			log.Warn().Err(err).Msg("Could not render standings")
		}
	})

	var src command.Source = con
	if commandsFile != "" {
		f, err := os.Open(commandsFile)
		if err != nil {
			return fmt.Errorf("open commands file: %w", err)
		}
		defer f.Close()
		src = command.NewReaderSource(f)
	} else {
		con.SetPrompt(func() string { return "warzone [" + engine.CurrentPhase().String() + "]" })
	}

	s := &session{engine: engine, processor: command.NewProcessor(engine, log.Logger), renderer: renderer}
	return s.loop(ctx, src)
}

// mapLoader accepts bare names as well as paths.
func mapLoader(name string) (*core.Map, error) {
	m, err := mapgen.LoadFile(name)
	if err != nil && !strings.HasSuffix(name, ".map") {
		if alt, altErr := mapgen.LoadFile(name + ".map"); altErr == nil {
			return alt, nil
		}
	}
	return m, err
}

type session struct {
	engine    *game.Engine
	processor *command.Processor
	renderer  *console.Renderer
}

func (s *session) loop(ctx context.Context, src command.Source) error {
	s.renderer.Banner("Warzone")
	s.renderer.Allowed(s.engine.CurrentPhase())
	for !s.engine.CurrentPhase().IsTerminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.meta(strings.TrimSpace(line)) {
			continue
		}

		cmd, err := s.processor.Execute(ctx, line)
		s.renderer.Result(cmd, err)
		if errors.Is(err, context.Canceled) {
			return err
		}
		if err == nil {
			s.renderer.Allowed(s.engine.CurrentPhase())
		}
	}
	return nil
}

// meta handles the read-only console commands that never touch the state
// machine.
func (s *session) meta(line string) bool {
	var err error
	switch strings.ToLower(line) {
	case "help":
		s.renderer.Allowed(s.engine.CurrentPhase())
	case "map":
		if s.engine.Map() == nil {
			fmt.Println("no map loaded")
			return true
		}
		err = s.renderer.Map(s.engine.Map(), s.engine.World())
		if err == nil {
			err = s.renderer.Continents(s.engine.Map(), s.engine.World())
		}
	case "players":
		if s.engine.World() == nil {
			fmt.Println("no players yet")
			return true
		}
		err = s.renderer.Roster(s.engine.World())
	case "history":
		err = s.renderer.History(s.engine.History())
	case "commands":
		for _, c := range s.processor.History() {
			fmt.Printf("%s %-40s %s\n", c.ExecutedAt.Format("15:04:05"), c.Raw, c.Effect)
		}
	default:
		return false
	}
	if err != nil {
		log.Warn().Err(err).Msg("Render failed")
	}
	return true
}
