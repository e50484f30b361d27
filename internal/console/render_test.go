package console

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/command"
	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/mitchelldurbincs/warzone/internal/game/strategy"
	"github.com/mitchelldurbincs/warzone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_MapAndRoster(t *testing.T) {
	m := testutil.CreateTwoContinentMap()
	w := testutil.CreateTestWorld(m, 1)
	ann := w.AddPlayer("ann", &strategy.Aggressive{SafetyMargin: 5})
	bob := w.AddPlayer("bob", strategy.Benevolent{})
	testutil.Assign(w, ann, 4, 1, 2, 3)
	testutil.Assign(w, bob, 2, 4, 5, 6)

	var out bytes.Buffer
	r := NewRenderer(&out)

	require.NoError(t, r.Map(m, w))
	s := out.String()
	for _, want := range []string{"Territory", "N1", "S3", "North", "South", "ann", "bob", "2 4"} {
		assert.Contains(t, s, want)
	}

	out.Reset()
	require.NoError(t, r.Continents(m, w))
	assert.Contains(t, out.String(), "North")
	assert.Contains(t, out.String(), "ann")

	out.Reset()
	require.NoError(t, r.Roster(w))
	assert.Contains(t, out.String(), "aggressive")
	assert.Contains(t, out.String(), "12")
	assert.Contains(t, out.String(), "benevolent")
}

func TestRenderer_MapBeforePlayers(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Map(testutil.CreateLineMap(2), nil))
	assert.Contains(t, out.String(), "T2")
}

func TestRenderer_StandingsHistoryAndResults(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	require.NoError(t, r.Standings([]game.PlayerStats{
		{Name: "ann", Strategy: "cheater", Territories: 6},
		{Name: "bob", Strategy: "neutral", EliminatedOn: 4},
	}))
	assert.Contains(t, out.String(), "turn 4")

	out.Reset()
	require.NoError(t, r.History([]states.Transition{{
		From: states.PhaseStart, To: states.PhaseMapLoaded, Action: states.ActionLoadMap,
		Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), Reason: "map world loaded",
	}}))
	assert.Contains(t, out.String(), "09:30:00")
	assert.Contains(t, out.String(), "maploaded")

	out.Reset()
	r.Allowed(states.PhaseWin)
	assert.Contains(t, out.String(), "quit | replay")

	out.Reset()
	r.Allowed(states.PhaseIssueOrders)
	assert.Contains(t, out.String(), "turn in progress")
	assert.NotContains(t, out.String(), "commands:")

	out.Reset()
	r.Result(command.Command{Raw: "loadmap x", Effect: "loaded"}, nil)
	r.Result(command.Command{Raw: "loadmap y"}, errors.New("no such file"))
	assert.Contains(t, out.String(), "loaded")
	assert.Contains(t, out.String(), "loadmap y: no such file")

	out.Reset()
	r.Banner("Turn 3")
	assert.Contains(t, out.String(), "Turn 3")
}
