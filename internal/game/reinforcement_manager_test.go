package game

import (
	"testing"

	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
	"github.com/mitchelldurbincs/warzone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReinforcementManager_AssignReinforcements(t *testing.T) {
	w := testutil.CreateTestWorld(testutil.CreateTwoContinentMap(), 1)
	north := w.AddPlayer("north", nil)
	rest := w.AddPlayer("rest", nil)
	testutil.Assign(w, north, 1, 1, 2, 3)
	testutil.Assign(w, rest, 1, 4, 5)

	bus := events.NewEventBus()
	var got []*events.ReinforcementAssignedEvent
	bus.SubscribeFunc(events.TypeReinforcementAssigned, func(ev events.Event) {
		got = append(got, ev.(*events.ReinforcementAssignedEvent))
	})

	rm := NewReinforcementManager(bus, "g", rules.DefaultReinforcementRules(), testutil.NopLogger())
	total := rm.AssignReinforcements(w, 1)

	assert.Equal(t, 6+3, total)
	assert.Equal(t, 6, north.Pool(), "3 base plus the North bonus")
	assert.Equal(t, 3, rest.Pool(), "the minimum applies below 9 territories")

	require.Len(t, got, 2)
	assert.Equal(t, "north", got[0].Metadata.PlayerName)
	assert.Equal(t, 3, got[0].Base)
	assert.Equal(t, 3, got[0].Bonus)
	assert.Equal(t, 6, got[0].Pool)

	rm.AssignReinforcements(w, 2)
	assert.Equal(t, 12, north.Pool(), "unspent armies carry over")
}

func TestReinforcementManager_NilBus(t *testing.T) {
	w := testutil.CreateTestWorld(testutil.CreateLineMap(2), 1)
	p := w.AddPlayer("p", nil)
	testutil.Assign(w, p, 1, 1, 2)

	rm := NewReinforcementManager(nil, "g", rules.ReinforcementRules{Minimum: 1, TerritoriesPerArmy: 1}, testutil.NopLogger())
	assert.Equal(t, 2+2, rm.AssignReinforcements(w, 1))
}
