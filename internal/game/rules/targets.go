package rules

import (
	"sort"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// EnemyNeighbors returns the territories bordering t that p does not own,
// weakest first. Ties keep map order.
func EnemyNeighbors(p *core.Player, t *core.Territory) []*core.Territory {
	var out []*core.Territory
	for _, n := range t.Neighbors() {
		if !n.OwnedBy(p.ID) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Armies() < out[j].Armies() })
	return out
}

// FriendlyNeighbors returns the territories bordering t that p owns.
func FriendlyNeighbors(p *core.Player, t *core.Territory) []*core.Territory {
	var out []*core.Territory
	for _, n := range t.Neighbors() {
		if n.OwnedBy(p.ID) {
			out = append(out, n)
		}
	}
	return out
}

// Frontier returns p's territories that border at least one foreign territory.
func Frontier(p *core.Player) []*core.Territory {
	var out []*core.Territory
	for _, t := range p.Territories() {
		for _, n := range t.Neighbors() {
			if !n.OwnedBy(p.ID) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Attackable returns every foreign territory adjacent to p's holdings, in
// map order without duplicates.
func Attackable(p *core.Player) []*core.Territory {
	seen := make(map[int]bool)
	var out []*core.Territory
	for _, t := range p.Territories() {
		for _, n := range t.Neighbors() {
			if !n.OwnedBy(p.ID) && !seen[n.ID] {
				seen[n.ID] = true
				out = append(out, n)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Strongest returns the territory with the most armies; the first wins ties.
func Strongest(ts []*core.Territory) *core.Territory {
	var best *core.Territory
	for _, t := range ts {
		if best == nil || t.Armies() > best.Armies() {
			best = t
		}
	}
	return best
}

// Weakest returns the territory with the fewest armies; the first wins ties.
func Weakest(ts []*core.Territory) *core.Territory {
	var best *core.Territory
	for _, t := range ts {
		if best == nil || t.Armies() < best.Armies() {
			best = t
		}
	}
	return best
}

// PathToward returns the neighbour of from that is one step closer to any
// territory in goals, searching only through territories p owns. It returns
// nil when from is already a goal or no path exists.
func PathToward(p *core.Player, from *core.Territory, goals []*core.Territory) *core.Territory {
	isGoal := make(map[int]bool, len(goals))
	for _, g := range goals {
		isGoal[g.ID] = true
	}
	if isGoal[from.ID] {
		return nil
	}
	prev := map[int]*core.Territory{from.ID: nil}
	queue := []*core.Territory{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if _, seen := prev[n.ID]; seen || !n.OwnedBy(p.ID) {
				continue
			}
			prev[n.ID] = cur
			if isGoal[n.ID] {
				step := n
				for prev[step.ID] != from {
					step = prev[step.ID]
				}
				return step
			}
			queue = append(queue, n)
		}
	}
	return nil
}
