package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/warzone/internal/command"
	"github.com/mitchelldurbincs/warzone/internal/config"
	"github.com/mitchelldurbincs/warzone/internal/console"
	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/mapgen"
	"github.com/mitchelldurbincs/warzone/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	players := flag.String("players", "aggressive,cheater,benevolent", "Comma separated computer strategies, one player each")
	maxTurns := flag.Int("max-turns", 0, "Turn limit (0 to use config default)")
	save := flag.String("save", "", "Write the generated map to this file")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	closer, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer closer.Close()

	rng := rand.New(rand.NewSource(*seed))
	log.Info().Int64("seed", *seed).Msg("Starting demo game")

	mc := mapgen.MapConfig{
		Name:                    "demo",
		Continents:              cfg.MapGen.Continents,
		TerritoriesPerContinent: cfg.MapGen.TerritoriesPerContinent,
		ExtraBorders:            cfg.MapGen.ExtraBorders,
		MinBonus:                cfg.MapGen.MinBonus,
		MaxBonus:                cfg.MapGen.MaxBonus,
	}
	gameMap, err := mapgen.NewGenerator(mc, rng).GenerateMap()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate map")
	}
	if *save != "" {
		if err := saveMap(*save, gameMap); err != nil {
			log.Fatal().Err(err).Msg("Failed to save map")
		}
		log.Info().Str("file", *save).Msg("Map saved")
	}

	rules := game.RulesFromConfig(cfg)
	if *maxTurns > 0 {
		rules.MaxTurns = *maxTurns
	}

	renderer := console.NewRenderer(os.Stdout)
	bus := events.NewEventBus()
	engine, err := game.NewEngine(context.Background(), game.GameConfig{
		Logger:   log.Logger,
		Rng:      rng,
		Rules:    rules,
		EventBus: bus,
		LoadMap:  func(name string) (*core.Map, error) {
			if name != gameMap.Name {
				return nil, fmt.Errorf("open %s: only the generated map is available", name)
			}
			return gameMap, nil
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game engine")
	}

	bus.SubscribeFunc(events.TypeTurnEnded, func(ev events.Event) {
		renderer.Banner(ev.Message())
		if err := renderer.Map(engine.Map(), engine.World()); err != nil {
			log.Warn().Err(err).Msg("Render failed")
		}
	})

	script := []string{"loadmap " + gameMap.Name, "validatemap"}
	for _, s := range strings.Split(*players, ",") {
		s = strings.TrimSpace(s)
		script = append(script, fmt.Sprintf("addplayer %s %s", s, s))
	}
	script = append(script, "gamestart")

	proc := command.NewProcessor(engine, log.Logger)
	src := command.NewReaderSource(strings.NewReader(strings.Join(script, "\n")))
	if err := proc.Run(context.Background(), src, renderer.Result); err != nil {
		log.Fatal().Err(err).Msg("Demo failed")
	}

	if err := renderer.Continents(engine.Map(), engine.World()); err != nil {
		log.Warn().Err(err).Msg("Render failed")
	}
	if err := renderer.Standings(engine.Stats().Standings()); err != nil {
		log.Warn().Err(err).Msg("Render failed")
	}
}

func saveMap(path string, m *core.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mapgen.Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
