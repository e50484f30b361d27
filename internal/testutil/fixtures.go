package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// CreateLineMap builds a single-continent map of n territories T1..Tn where
// each Ti borders Ti+1.
func CreateLineMap(n int) *core.Map {
	m := core.NewMap("line")
	c, _ := m.AddContinent("Main", "gray", 2)
	for i := 1; i <= n; i++ {
		_, _ = m.AddTerritory(fmt.Sprintf("T%d", i), c.ID, core.NewCoordinate(i*10, 10))
	}
	for i := 1; i < n; i++ {
		_ = m.AddEdge(i, i+1)
	}
	return m
}

// CreateTwoContinentMap builds a 6-territory map: North (N1-N3, bonus 3)
// and South (S1-S3, bonus 2), each a chain, joined by N3-S1.
func CreateTwoContinentMap() *core.Map {
	m := core.NewMap("two-continents")
	north, _ := m.AddContinent("North", "blue", 3)
	south, _ := m.AddContinent("South", "red", 2)
	for i := 1; i <= 3; i++ {
		_, _ = m.AddTerritory(fmt.Sprintf("N%d", i), north.ID, core.NewCoordinate(i*10, 10))
	}
	for i := 1; i <= 3; i++ {
		_, _ = m.AddTerritory(fmt.Sprintf("S%d", i), south.ID, core.NewCoordinate(i*10, 50))
	}
	for _, e := range [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}} {
		_ = m.AddEdge(e[0], e[1])
	}
	return m
}

// CreateTestWorld wraps a map in a world with a seeded RNG and a full deck.
func CreateTestWorld(m *core.Map, seed int64) *core.World {
	rng := NewTestRNG(seed)
	return core.NewWorld(m, core.NewDeck(5, rng), rng)
}

// Assign gives each listed territory (by ID) to p with the given armies.
func Assign(w *core.World, p *core.Player, armies int, ids ...int) {
	for _, id := range ids {
		t, ok := w.Map.TerritoryByID(id)
		if !ok {
			panic(fmt.Sprintf("testutil: unknown territory %d", id))
		}
		w.Transfer(t, p)
		_ = t.RemoveArmies(t.Armies())
		_ = t.AddArmies(armies)
	}
}

// CreateDisconnectedMap is CreateLineMap(n) plus an island territory with no
// borders. It loads but fails validation.
func CreateDisconnectedMap(n int) *core.Map {
	m := CreateLineMap(n)
	_, _ = m.AddTerritory("Island", 1, core.NewCoordinate(0, 90))
	return m
}

// MapLoader returns a loader that serves fresh copies of the named maps.
// Unknown names fail with an error mentioning the name.
func MapLoader(maps map[string]func() *core.Map) func(string) (*core.Map, error) {
	return func(name string) (*core.Map, error) {
		build, ok := maps[name]
		if !ok {
			return nil, fmt.Errorf("open %s: no such map", name)
		}
		return build(), nil
	}
}
