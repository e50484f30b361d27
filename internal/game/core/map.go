package core

import "fmt"

// NoOwner marks a territory that no player controls.
const NoOwner = -1

// Territory is the atomic ownable unit of the map graph.
// Owner holds a player ID (NoOwner when unowned); the Player keeps the
// authoritative set of territories it controls.
type Territory struct {
	ID          int
	Name        string
	ContinentID int
	Position    Coordinate
	Owner       int

	armies    int
	neighbors []*Territory
}

// NewTerritory creates an unowned territory with no armies.
func NewTerritory(id int, name string, continentID int, pos Coordinate) *Territory {
	return &Territory{
		ID:          id,
		Name:        name,
		ContinentID: continentID,
		Position:    pos,
		Owner:       NoOwner,
	}
}

func (t *Territory) Armies() int         { return t.armies }
func (t *Territory) IsOwned() bool       { return t.Owner != NoOwner }
func (t *Territory) OwnedBy(id int) bool { return t.Owner == id }

// AddArmies adds n armies to the territory.
func (t *Territory) AddArmies(n int) error {
	if n < 0 {
		return ErrNegativeAmount
	}
	t.armies += n
	return nil
}

// RemoveArmies removes n armies; the count never drops below zero.
func (t *Territory) RemoveArmies(n int) error {
	if n < 0 {
		return ErrNegativeAmount
	}
	if n > t.armies {
		return fmt.Errorf("territory %s has %d armies, cannot remove %d: %w", t.Name, t.armies, n, ErrInsufficientArmy)
	}
	t.armies -= n
	return nil
}

// setArmies replaces the army count after combat. Negative values clamp to 0.
func (t *Territory) setArmies(n int) {
	if n < 0 {
		n = 0
	}
	t.armies = n
}

// Neighbors returns the adjacent territories.
func (t *Territory) Neighbors() []*Territory {
	out := make([]*Territory, len(t.neighbors))
	copy(out, t.neighbors)
	return out
}

// IsAdjacent reports whether other borders t.
func (t *Territory) IsAdjacent(other *Territory) bool {
	for _, n := range t.neighbors {
		if n == other {
			return true
		}
	}
	return false
}

func (t *Territory) String() string {
	return fmt.Sprintf("%s(#%d, %d armies)", t.Name, t.ID, t.armies)
}

// Continent groups territories and grants a bonus when fully owned.
type Continent struct {
	ID    int
	Name  string
	Color string
	Bonus int

	territories []*Territory
}

// Territories returns the member territories.
func (c *Continent) Territories() []*Territory {
	out := make([]*Territory, len(c.territories))
	copy(out, c.territories)
	return out
}

// Controller returns the single owner of every member territory, if any.
func (c *Continent) Controller() (int, bool) {
	if len(c.territories) == 0 {
		return NoOwner, false
	}
	owner := c.territories[0].Owner
	if owner == NoOwner {
		return NoOwner, false
	}
	for _, t := range c.territories[1:] {
		if t.Owner != owner {
			return NoOwner, false
		}
	}
	return owner, true
}

// IsOwnedBy reports whether the given player controls every member territory.
func (c *Continent) IsOwnedBy(playerID int) bool {
	owner, ok := c.Controller()
	return ok && owner == playerID
}

// Map is the territory graph. IDs are 1-based and stable.
type Map struct {
	Name string

	territories []*Territory
	continents  []*Continent
}

// NewMap creates an empty map
func NewMap(name string) *Map {
	return &Map{Name: name}
}

// AddContinent appends a continent and returns it with its assigned ID.
func (m *Map) AddContinent(name, color string, bonus int) (*Continent, error) {
	if bonus < 0 {
		return nil, fmt.Errorf("continent %s bonus %d: %w", name, bonus, ErrNegativeAmount)
	}
	c := &Continent{
		ID:    len(m.continents) + 1,
		Name:  name,
		Color: color,
		Bonus: bonus,
	}
	m.continents = append(m.continents, c)
	return c, nil
}

// AddTerritory appends a territory to the given continent and returns it with its assigned ID.
func (m *Map) AddTerritory(name string, continentID int, pos Coordinate) (*Territory, error) {
	c, ok := m.ContinentByID(continentID)
	if !ok {
		return nil, fmt.Errorf("territory %s continent %d: %w", name, continentID, ErrUnknownContinent)
	}
	t := NewTerritory(len(m.territories)+1, name, continentID, pos)
	m.territories = append(m.territories, t)
	c.territories = append(c.territories, t)
	return t, nil
}

// AddEdge records a symmetric border between two territories. Duplicate edges are ignored.
func (m *Map) AddEdge(a, b int) error {
	ta, ok := m.TerritoryByID(a)
	if !ok {
		return fmt.Errorf("border %d-%d: territory %d: %w", a, b, a, ErrUnknownTerritory)
	}
	tb, ok := m.TerritoryByID(b)
	if !ok {
		return fmt.Errorf("border %d-%d: territory %d: %w", a, b, b, ErrUnknownTerritory)
	}
	if ta == tb {
		return fmt.Errorf("border %d-%d: %w", a, b, ErrSelfBorder)
	}
	if !ta.IsAdjacent(tb) {
		ta.neighbors = append(ta.neighbors, tb)
	}
	if !tb.IsAdjacent(ta) {
		tb.neighbors = append(tb.neighbors, ta)
	}
	return nil
}

// TerritoryByID looks up a territory by its 1-based ID.
func (m *Map) TerritoryByID(id int) (*Territory, bool) {
	if id < 1 || id > len(m.territories) {
		return nil, false
	}
	return m.territories[id-1], true
}

// ContinentByID looks up a continent by its 1-based ID.
func (m *Map) ContinentByID(id int) (*Continent, bool) {
	if id < 1 || id > len(m.continents) {
		return nil, false
	}
	return m.continents[id-1], true
}

// TerritoryByName returns the first territory with the given name.
func (m *Map) TerritoryByName(name string) (*Territory, bool) {
	for _, t := range m.territories {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Size returns the number of territories.
func (m *Map) Size() int { return len(m.territories) }

// Territories returns all territories in ID order.
func (m *Map) Territories() []*Territory {
	out := make([]*Territory, len(m.territories))
	copy(out, m.territories)
	return out
}

// Continents returns all continents in ID order.
func (m *Map) Continents() []*Continent {
	out := make([]*Continent, len(m.continents))
	copy(out, m.continents)
	return out
}

// TotalArmies sums the armies on every territory.
func (m *Map) TotalArmies() int {
	total := 0
	for _, t := range m.territories {
		total += t.armies
	}
	return total
}

// Validate checks that every continent has members and that the territory
// graph is a single connected component. It never mutates the map.
func (m *Map) Validate() error {
	if len(m.territories) == 0 {
		return &MapError{Map: m.Name, Reason: "map has no territories"}
	}
	for _, c := range m.continents {
		if len(c.territories) == 0 {
			return &MapError{Map: m.Name, Reason: fmt.Sprintf("continent %s has no territories", c.Name)}
		}
	}

	visited := make(map[int]struct{}, len(m.territories))
	stack := []*Territory{m.territories[0]}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[t.ID]; seen {
			continue
		}
		visited[t.ID] = struct{}{}
		for _, n := range t.neighbors {
			if _, seen := visited[n.ID]; !seen {
				stack = append(stack, n)
			}
		}
	}
	if len(visited) != len(m.territories) {
		return &MapError{
			Map:    m.Name,
			Reason: fmt.Sprintf("territory graph is not connected: %d of %d territories reachable", len(visited), len(m.territories)),
		}
	}
	return nil
}
