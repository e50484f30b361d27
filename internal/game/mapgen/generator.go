package mapgen

import (
	"fmt"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

var continentColors = []string{"red", "blue", "green", "yellow", "purple", "orange", "cyan", "magenta"}

// MapConfig holds configuration for map generation
type MapConfig struct {
	Name                    string `mapstructure:"name"`
	Continents              int    `mapstructure:"continents"`
	TerritoriesPerContinent int    `mapstructure:"territories_per_continent"`
	ExtraBorders            int    `mapstructure:"extra_borders"`
	MinBonus                int    `mapstructure:"min_bonus"`
	MaxBonus                int    `mapstructure:"max_bonus"`
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(continents, perContinent int) MapConfig {
	return MapConfig{
		Name:                    "generated",
		Continents:              continents,
		TerritoriesPerContinent: perContinent,
		ExtraBorders:            continents * perContinent / 3,
		MinBonus:                2,
		MaxBonus:                5,
	}
}

// Validate checks the config can produce a playable map.
func (c MapConfig) Validate() error {
	if c.Continents < 1 {
		return fmt.Errorf("mapgen: need at least one continent, got %d", c.Continents)
	}
	if c.TerritoriesPerContinent < 1 {
		return fmt.Errorf("mapgen: need at least one territory per continent, got %d", c.TerritoriesPerContinent)
	}
	if c.Continents*c.TerritoriesPerContinent < 2 {
		return fmt.Errorf("mapgen: map needs at least two territories")
	}
	if c.ExtraBorders < 0 {
		return fmt.Errorf("mapgen: extra borders must be non-negative, got %d", c.ExtraBorders)
	}
	if c.MinBonus < 0 || c.MaxBonus < c.MinBonus {
		return fmt.Errorf("mapgen: bad bonus range [%d,%d]", c.MinBonus, c.MaxBonus)
	}
	return nil
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    core.Source
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng core.Source) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap builds a connected map: each continent is a chain, the last
// territory of each continent borders the first of the next, and a number
// of random extra borders are sprinkled on top.
func (g *Generator) GenerateMap() (*core.Map, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}
	m := core.NewMap(g.config.Name)

	g.placeContinents(m)
	if err := g.linkContinents(m); err != nil {
		return nil, err
	}
	g.placeExtraBorders(m)

	return m, nil
}

func (g *Generator) placeContinents(m *core.Map) {
	per := g.config.TerritoriesPerContinent
	spread := g.config.MaxBonus - g.config.MinBonus + 1

	for ci := 0; ci < g.config.Continents; ci++ {
		color := continentColors[ci%len(continentColors)]
		bonus := g.config.MinBonus + g.rng.Intn(spread)
		c, _ := m.AddContinent(fmt.Sprintf("C%d", ci+1), color, bonus)

		for ti := 0; ti < per; ti++ {
			pos := core.NewCoordinate(ci*100+ti*10, ti%2*20)
			_, _ = m.AddTerritory(fmt.Sprintf("C%d-T%d", ci+1, ti+1), c.ID, pos)
		}
	}
}

func (g *Generator) linkContinents(m *core.Map) error {
	n := m.Size()
	for id := 1; id < n; id++ {
		if err := m.AddEdge(id, id+1); err != nil {
			return err
		}
	}
	if n > 2 {
		return m.AddEdge(n, 1)
	}
	return nil
}

func (g *Generator) placeExtraBorders(m *core.Map) {
	n := m.Size()
	if n < 3 {
		return
	}
	// Use a maximum attempt counter to avoid infinite loops on dense maps
	maxAttempts := g.config.ExtraBorders * 10
	placed := 0

	for attempts := 0; placed < g.config.ExtraBorders && attempts < maxAttempts; attempts++ {
		a := g.rng.Intn(n) + 1
		b := g.rng.Intn(n) + 1
		if a == b {
			continue
		}
		ta, _ := m.TerritoryByID(a)
		tb, _ := m.TerritoryByID(b)
		if ta.IsAdjacent(tb) {
			continue
		}
		_ = m.AddEdge(a, b)
		placed++
	}
}
