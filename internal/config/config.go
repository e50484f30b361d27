package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Deck       DeckConfig       `mapstructure:"deck"`
	Combat     CombatConfig     `mapstructure:"combat"`
	Strategy   StrategyConfig   `mapstructure:"strategy"`
	Log        LogConfig        `mapstructure:"log"`
	Tournament TournamentConfig `mapstructure:"tournament"`
	MapGen     MapGenConfig     `mapstructure:"mapgen"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	MaxTurns               int    `mapstructure:"max_turns"`
	MaxPlayers             int    `mapstructure:"max_players"`
	InitialPool            int    `mapstructure:"initial_pool"`
	InitialTerritoryArmies int    `mapstructure:"initial_territory_armies"`
	InitialCards           int    `mapstructure:"initial_cards"`
	MinReinforcement       int    `mapstructure:"min_reinforcement"`
	TerritoriesPerArmy     int    `mapstructure:"territories_per_army"`
	DefaultStrategy        string `mapstructure:"default_strategy"`
	PauseBetweenPhases     bool   `mapstructure:"pause_between_phases"`
}

// DeckConfig holds card deck settings
type DeckConfig struct {
	CopiesPerType int `mapstructure:"copies_per_type"`
}

// CombatConfig holds the per-unit kill chances, in percent
type CombatConfig struct {
	AttackKillPercent int `mapstructure:"attack_kill_percent"`
	DefendKillPercent int `mapstructure:"defend_kill_percent"`
}

// StrategyConfig holds tuning for the scripted strategies
type StrategyConfig struct {
	AggressiveSafetyMargin  int `mapstructure:"aggressive_safety_margin"`
	ReinforcementCardArmies int `mapstructure:"reinforcement_card_armies"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	File        string `mapstructure:"file"`
	GameLogFile string `mapstructure:"game_log_file"`
}

// TournamentConfig holds tournament output settings
type TournamentConfig struct {
	LogFile    string `mapstructure:"log_file"`
	ReportFile string `mapstructure:"report_file"`
}

// MapGenConfig holds random map generation settings
type MapGenConfig struct {
	Continents              int `mapstructure:"continents"`
	TerritoriesPerContinent int `mapstructure:"territories_per_continent"`
	ExtraBorders            int `mapstructure:"extra_borders"`
	MinBonus                int `mapstructure:"min_bonus"`
	MaxBonus                int `mapstructure:"max_bonus"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.max_turns", 50)
	v.SetDefault("game.max_players", 6)
	v.SetDefault("game.initial_pool", 50)
	v.SetDefault("game.initial_territory_armies", 1)
	v.SetDefault("game.initial_cards", 2)
	v.SetDefault("game.min_reinforcement", 3)
	v.SetDefault("game.territories_per_army", 3)
	v.SetDefault("game.default_strategy", "human")
	v.SetDefault("game.pause_between_phases", false)

	v.SetDefault("deck.copies_per_type", 5)

	v.SetDefault("combat.attack_kill_percent", 60)
	v.SetDefault("combat.defend_kill_percent", 70)

	v.SetDefault("strategy.aggressive_safety_margin", 5)
	v.SetDefault("strategy.reinforcement_card_armies", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.game_log_file", "gamelog.txt")

	v.SetDefault("tournament.log_file", "tournament.log")
	v.SetDefault("tournament.report_file", "tournament.yaml")

	v.SetDefault("mapgen.continents", 4)
	v.SetDefault("mapgen.territories_per_continent", 6)
	v.SetDefault("mapgen.extra_borders", 8)
	v.SetDefault("mapgen.min_bonus", 2)
	v.SetDefault("mapgen.max_bonus", 5)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/warzone")
	}

	// WZ_GAME_MAX_TURNS overrides game.max_turns
	v.SetEnvPrefix("WZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "":
			// Specific file requested but not found - use defaults
		case !errors.As(err, &notFound):
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = next

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	Get()
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. A reloaded file that
// fails validation is ignored and the previous values stay in effect.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be non-negative")
	}
	if c.Game.MaxPlayers < 2 {
		return fmt.Errorf("game.max_players must be at least 2")
	}
	if c.Game.InitialPool < 0 {
		return fmt.Errorf("game.initial_pool must be non-negative")
	}
	if c.Game.InitialTerritoryArmies < 0 {
		return fmt.Errorf("game.initial_territory_armies must be non-negative")
	}
	if c.Game.InitialCards < 0 {
		return fmt.Errorf("game.initial_cards must be non-negative")
	}
	if c.Game.MinReinforcement < 0 {
		return fmt.Errorf("game.min_reinforcement must be non-negative")
	}
	if c.Game.TerritoriesPerArmy <= 0 {
		return fmt.Errorf("game.territories_per_army must be positive")
	}
	if c.Deck.CopiesPerType < 0 {
		return fmt.Errorf("deck.copies_per_type must be non-negative")
	}

	validatePercent := func(p int, name string) error {
		if p < 0 || p > 100 {
			return fmt.Errorf("%s must be between 0 and 100", name)
		}
		return nil
	}
	if err := validatePercent(c.Combat.AttackKillPercent, "combat.attack_kill_percent"); err != nil {
		return err
	}
	if err := validatePercent(c.Combat.DefendKillPercent, "combat.defend_kill_percent"); err != nil {
		return err
	}

	if c.Strategy.AggressiveSafetyMargin < 0 {
		return fmt.Errorf("strategy.aggressive_safety_margin must be non-negative")
	}
	if c.Strategy.ReinforcementCardArmies < 0 {
		return fmt.Errorf("strategy.reinforcement_card_armies must be non-negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	if c.MapGen.Continents < 1 || c.MapGen.TerritoriesPerContinent < 1 {
		return fmt.Errorf("mapgen needs at least one continent with one territory")
	}
	if c.MapGen.MinBonus < 0 || c.MapGen.MaxBonus < c.MapGen.MinBonus {
		return fmt.Errorf("mapgen bonus range [%d,%d] is invalid", c.MapGen.MinBonus, c.MapGen.MaxBonus)
	}

	return nil
}
