package processor

import (
	"testing"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setup struct {
	w       *core.World
	players []*core.Player
}

// newSetup gives each named player one territory with 5 armies on a line map
// of len(names) territories.
func newSetup(names ...string) setup {
	w := testutil.CreateTestWorld(testutil.CreateLineMap(len(names)), 1)
	s := setup{w: w}
	for i, n := range names {
		p := w.AddPlayer(n, nil)
		testutil.Assign(w, p, 5, i+1)
		s.players = append(s.players, p)
	}
	return s
}

func (s setup) home(p *core.Player) *core.Territory {
	return p.Territories()[0]
}

// queueNegotiations gives p n orders that always execute and touch no armies.
func (s setup) queueNegotiations(p *core.Player, n int) {
	other := s.players[0]
	if other == p {
		other = s.players[1]
	}
	for i := 0; i < n; i++ {
		p.Orders().Add(core.NewNegotiate(p, other))
	}
}

func sequence(trace []Step) []string {
	var out []string
	for _, s := range trace {
		out = append(out, s.Player.Name)
	}
	return out
}

func TestExecuteOrders_RoundRobin(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    []string
	}{
		{"equal queues", []int{2, 2, 2}, []string{"A", "B", "C", "A", "B", "C"}},
		{"lengths 3,1,3", []int{3, 1, 3}, []string{"A", "B", "C", "A", "C", "A", "C"}},
		{"lengths 2,1,3", []int{2, 1, 3}, []string{"A", "B", "C", "A", "C", "C"}},
		{"empty queue skipped", []int{0, 2, 1}, []string{"B", "C", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSetup("A", "B", "C")
			for i, p := range s.players {
				s.queueNegotiations(p, tt.lengths[i])
			}

			trace := NewOrderProcessor(testutil.NopLogger()).ExecuteOrders(s.w, s.players, nil)
			assert.Equal(t, tt.want, sequence(trace))
			for _, p := range s.players {
				assert.Equal(t, 0, p.Orders().Len())
			}
		})
	}
}

func TestExecuteOrders_DeploysFirst(t *testing.T) {
	s := newSetup("A", "B", "C")
	a, b, c := s.players[0], s.players[1], s.players[2]

	s.queueNegotiations(a, 1)
	a.Orders().Add(core.NewDeploy(a, s.home(a), 2))
	s.queueNegotiations(b, 1)
	c.Orders().Add(core.NewDeploy(c, s.home(c), 3))
	s.queueNegotiations(c, 1)
	c.Orders().Add(core.NewDeploy(c, s.home(c), 1))

	var seen []Step
	trace := NewOrderProcessor(testutil.NopLogger()).ExecuteOrders(s.w, s.players, func(st Step) {
		seen = append(seen, st)
	})
	require.Len(t, trace, 6)
	assert.Equal(t, trace, seen)

	for i, st := range trace[:3] {
		assert.Equal(t, PassDeploy, st.Pass, "step %d", i)
		assert.Equal(t, core.OrderDeploy, st.Order.Type())
	}
	assert.Equal(t, []string{"A", "C", "C", "A", "B", "C"}, sequence(trace))
	assert.Equal(t, 7, s.home(a).Armies())
	assert.Equal(t, 9, s.home(c).Armies())
}

func TestExecuteOrders_InvalidOrdersAreSkipped(t *testing.T) {
	s := newSetup("A", "B")
	a, b := s.players[0], s.players[1]
	a.Orders().Add(core.NewDeploy(a, s.home(b), 10))

	trace := NewOrderProcessor(testutil.NopLogger()).ExecuteOrders(s.w, s.players, nil)
	require.Len(t, trace, 1)
	assert.False(t, trace[0].Outcome.Executed)
	assert.Equal(t, 5, s.home(b).Armies())
}
