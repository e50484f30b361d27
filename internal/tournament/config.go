// Package tournament plays every configured strategy against each other on
// a list of maps and records who won.
package tournament

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// ErrInvalidConfig is returned for tournament arguments out of range. No
// game is played when it is returned.
var ErrInvalidConfig = errors.New("invalid tournament configuration")

const (
	MinMaps       = 1
	MaxMaps       = 5
	MinStrategies = 2
	MaxStrategies = 4
	MinGames      = 1
	MaxGames      = 5
	MinTurns      = 10
	MaxTurns      = 50
)

// allowedStrategies are the computer strategies a tournament may field.
var allowedStrategies = map[core.StrategyKind]bool{
	core.StrategyAggressive: true,
	core.StrategyBenevolent: true,
	core.StrategyNeutral:    true,
	core.StrategyCheater:    true,
}

// Config is a parsed tournament command.
type Config struct {
	Maps       []string `yaml:"maps"`
	Strategies []string `yaml:"strategies"`
	Games      int      `yaml:"games_per_map"`
	MaxTurns   int      `yaml:"max_turns"`
}

// ParseArgs reads "-M maps... -P strategies... -G games -D turns" in any
// flag order and validates the result.
func ParseArgs(args []string) (Config, error) {
	var cfg Config
	values := make(map[string][]string)
	flag := ""
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			switch a {
			case "-M", "-P", "-G", "-D":
			default:
				return Config{}, fmt.Errorf("%w: unknown flag %s", ErrInvalidConfig, a)
			}
			if _, seen := values[a]; seen {
				return Config{}, fmt.Errorf("%w: %s given twice", ErrInvalidConfig, a)
			}
			flag = a
			values[flag] = nil
			continue
		}
		if flag == "" {
			return Config{}, fmt.Errorf("%w: %q before any flag", ErrInvalidConfig, a)
		}
		values[flag] = append(values[flag], a)
	}

	cfg.Maps = values["-M"]
	for _, s := range values["-P"] {
		cfg.Strategies = append(cfg.Strategies, strings.ToLower(s))
	}
	var err error
	if cfg.Games, err = single(values, "-G"); err != nil {
		return Config{}, err
	}
	if cfg.MaxTurns, err = single(values, "-D"); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func single(values map[string][]string, flag string) (int, error) {
	v, ok := values[flag]
	if !ok || len(v) != 1 {
		return 0, fmt.Errorf("%w: %s takes exactly one number", ErrInvalidConfig, flag)
	}
	n, err := strconv.Atoi(v[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidConfig, flag, v[0])
	}
	return n, nil
}

// Validate checks every limit and returns the first violation.
func (c Config) Validate() error {
	if n := len(c.Maps); n < MinMaps || n > MaxMaps {
		return fmt.Errorf("%w: %d maps, want %d-%d", ErrInvalidConfig, n, MinMaps, MaxMaps)
	}
	if n := len(c.Strategies); n < MinStrategies || n > MaxStrategies {
		return fmt.Errorf("%w: %d strategies, want %d-%d", ErrInvalidConfig, n, MinStrategies, MaxStrategies)
	}
	for _, s := range c.Strategies {
		kind, err := core.ParseStrategyKind(s)
		if err != nil || !allowedStrategies[kind] {
			return fmt.Errorf("%w: strategy %q is not allowed in tournaments", ErrInvalidConfig, s)
		}
	}
	if c.Games < MinGames || c.Games > MaxGames {
		return fmt.Errorf("%w: %d games per map, want %d-%d", ErrInvalidConfig, c.Games, MinGames, MaxGames)
	}
	if c.MaxTurns < MinTurns || c.MaxTurns > MaxTurns {
		return fmt.Errorf("%w: %d max turns, want %d-%d", ErrInvalidConfig, c.MaxTurns, MinTurns, MaxTurns)
	}
	return nil
}
