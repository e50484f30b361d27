package states

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPhases = []GamePhase{
	PhaseStart, PhaseTournamentSetup, PhaseMapLoaded, PhaseMapValidated, PhasePlayersAdded,
	PhaseAssignReinforcement, PhaseIssueOrders, PhaseExecuteOrders, PhaseWin, PhaseEnd,
}

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseStart, "start"},
		{PhaseTournamentSetup, "tournamentSetup"},
		{PhaseMapLoaded, "maploaded"},
		{PhaseMapValidated, "mapvalidated"},
		{PhasePlayersAdded, "playersadded"},
		{PhaseAssignReinforcement, "assignreinforcement"},
		{PhaseIssueOrders, "issueorders"},
		{PhaseExecuteOrders, "executeorders"},
		{PhaseWin, "win"},
		{PhaseEnd, "end"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnd.IsTerminal())
		assert.False(t, PhaseWin.IsTerminal())
	})

	t.Run("IsGameplay", func(t *testing.T) {
		assert.True(t, PhaseIssueOrders.IsGameplay())
		assert.False(t, PhasePlayersAdded.IsGameplay())
	})
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseStart, []GamePhase{PhaseTournamentSetup, PhaseMapLoaded, PhaseEnd}},
		{PhaseTournamentSetup, []GamePhase{PhaseStart, PhaseEnd}},
		{PhaseMapLoaded, []GamePhase{PhaseMapLoaded, PhaseMapValidated, PhaseEnd}},
		{PhaseMapValidated, []GamePhase{PhasePlayersAdded, PhaseEnd}},
		{PhasePlayersAdded, []GamePhase{PhasePlayersAdded, PhaseAssignReinforcement, PhaseEnd}},
		{PhaseAssignReinforcement, []GamePhase{PhaseIssueOrders}},
		{PhaseIssueOrders, []GamePhase{PhaseExecuteOrders}},
		{PhaseExecuteOrders, []GamePhase{PhaseAssignReinforcement, PhaseWin}},
		{PhaseWin, []GamePhase{PhaseStart, PhaseEnd}},
		{PhaseEnd, nil},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			seen := make(map[GamePhase]bool)
			var targets []GamePhase
			for _, a := range tt.from.AllowedActions(true) {
				spec, ok := tt.from.Lookup(a)
				require.True(t, ok, a)
				if !seen[spec.Next] {
					seen[spec.Next] = true
					targets = append(targets, spec.Next)
				}
			}
			assert.ElementsMatch(t, tt.allowed, targets)
		})
	}
}

func TestGamePhase_AllowedActions(t *testing.T) {
	assert.Equal(t, []Action{ActionLoadMap, ActionQuit, ActionTournament}, PhaseStart.AllowedActions(false))
	assert.Empty(t, PhaseExecuteOrders.AllowedActions(false))
	assert.Equal(t, []Action{ActionEndExecOrders, ActionWin}, PhaseExecuteOrders.AllowedActions(true))
}

func TestActionSpec_AcceptsArgs(t *testing.T) {
	add, ok := PhasePlayersAdded.Lookup(ActionAddPlayer)
	require.True(t, ok)
	assert.False(t, add.AcceptsArgs(0))
	assert.True(t, add.AcceptsArgs(1))
	assert.True(t, add.AcceptsArgs(2))
	assert.False(t, add.AcceptsArgs(3))

	tour, ok := PhaseStart.Lookup(ActionTournament)
	require.True(t, ok)
	assert.False(t, tour.AcceptsArgs(8))
	assert.True(t, tour.AcceptsArgs(9))
	assert.True(t, tour.AcceptsArgs(40))
}

func TestGameContext(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("NewGameContext", func(t *testing.T) {
		ctx := NewGameContext("test-game", 6, 20, logger)
		assert.Equal(t, "test-game", ctx.GameID)
		assert.Equal(t, 6, ctx.MaxPlayers)
		assert.Equal(t, 2, ctx.MinPlayers)
		assert.Equal(t, 20, ctx.MaxTurns)
		assert.Equal(t, NoWinner, ctx.Winner)
	})

	t.Run("IsReady", func(t *testing.T) {
		ctx := NewGameContext("test-game", 4, 0, logger)

		ctx.PlayerCount = 1
		assert.False(t, ctx.IsReady())
		ctx.PlayerCount = 2
		assert.True(t, ctx.IsReady())
		ctx.PlayerCount = 4
		assert.True(t, ctx.IsReady())
		ctx.PlayerCount = 5
		assert.False(t, ctx.IsReady())
	})

	t.Run("GetElapsedTime", func(t *testing.T) {
		ctx := NewGameContext("test-game", 4, 0, logger)
		assert.Equal(t, time.Duration(0), ctx.GetElapsedTime())

		ctx.StartTime = time.Now().Add(-10 * time.Second)
		elapsed := ctx.GetElapsedTime()
		assert.Greater(t, elapsed, 9*time.Second)
		assert.Less(t, elapsed, 11*time.Second)
	})

	t.Run("Reset", func(t *testing.T) {
		ctx := NewGameContext("test-game", 4, 10, logger)
		ctx.MapName = "world"
		ctx.MapValid = true
		ctx.PlayerCount = 3
		ctx.Turn = 7
		ctx.Draw = true

		ctx.Reset()
		assert.Empty(t, ctx.MapName)
		assert.False(t, ctx.MapValid)
		assert.Zero(t, ctx.PlayerCount)
		assert.Zero(t, ctx.Turn)
		assert.False(t, ctx.IsOver())
		assert.Equal(t, 10, ctx.MaxTurns)
	})
}

// playToLobby drives a fresh machine up to PhasePlayersAdded with n players.
func playToLobby(t *testing.T, sm *StateMachine, ctx *GameContext, n int) {
	t.Helper()
	ctx.MapName = "test.map"
	_, err := sm.Apply(ActionLoadMap, "load")
	require.NoError(t, err)
	ctx.MapValid = true
	_, err = sm.Apply(ActionValidateMap, "validate")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		ctx.PlayerCount++
		_, err = sm.Apply(ActionAddPlayer, "add")
		require.NoError(t, err)
	}
}

func TestStateMachine(t *testing.T) {
	setup := func() (*StateMachine, *GameContext, *events.EventBus) {
		ctx := NewGameContext("test-game", 6, 0, zerolog.Nop())
		eventBus := events.NewEventBus()
		return NewStateMachine(ctx, eventBus), ctx, eventBus
	}

	t.Run("NewStateMachine", func(t *testing.T) {
		sm, _, _ := setup()
		assert.Equal(t, PhaseStart, sm.CurrentPhase())
		assert.Len(t, sm.states, len(allPhases))
	})

	t.Run("Full game loop", func(t *testing.T) {
		sm, ctx, _ := setup()
		playToLobby(t, sm, ctx, 2)
		assert.Equal(t, PhasePlayersAdded, sm.CurrentPhase())

		_, err := sm.Apply(ActionGameStart, "start")
		require.NoError(t, err)
		assert.Equal(t, 1, ctx.Turn)
		assert.False(t, ctx.StartTime.IsZero())

		_, err = sm.Apply(ActionIssueOrder, "issue")
		require.NoError(t, err)
		_, err = sm.Apply(ActionEndIssueOrders, "execute")
		require.NoError(t, err)
		_, err = sm.Apply(ActionEndExecOrders, "next turn")
		require.NoError(t, err)
		assert.Equal(t, 2, ctx.Turn)

		_, err = sm.Apply(ActionIssueOrder, "issue")
		require.NoError(t, err)
		_, err = sm.Apply(ActionEndIssueOrders, "execute")
		require.NoError(t, err)

		_, err = sm.Apply(ActionWin, "no winner yet")
		require.Error(t, err)
		assert.Equal(t, PhaseExecuteOrders, sm.CurrentPhase())

		ctx.Winner = 1
		ctx.WinnerName = "alice"
		_, err = sm.Apply(ActionWin, "alice won")
		require.NoError(t, err)
		assert.Equal(t, PhaseWin, sm.CurrentPhase())

		_, err = sm.Apply(ActionReplay, "again")
		require.NoError(t, err)
		assert.Equal(t, PhaseStart, sm.CurrentPhase())
		assert.Zero(t, ctx.Turn, "replay resets the context")
		assert.Equal(t, NoWinner, ctx.Winner)
	})

	t.Run("Unknown action leaves phase unchanged", func(t *testing.T) {
		sm, _, _ := setup()
		_, err := sm.Apply(ActionGameStart, "too early")
		assert.ErrorIs(t, err, ErrActionNotAllowed)
		assert.Equal(t, PhaseStart, sm.CurrentPhase())
		assert.Empty(t, sm.GetHistory())
	})

	t.Run("Apply returns the spec it followed", func(t *testing.T) {
		sm, _, _ := setup()
		spec, err := sm.Apply(ActionLoadMap, "load")
		require.NoError(t, err)
		assert.Equal(t, PhaseMapLoaded, spec.Next)
		assert.Equal(t, "loadmap <filename>", spec.Usage)
	})

	t.Run("Game start needs two players", func(t *testing.T) {
		sm, ctx, _ := setup()
		playToLobby(t, sm, ctx, 1)
		_, err := sm.Apply(ActionGameStart, "alone")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough players")
		assert.Equal(t, PhasePlayersAdded, sm.CurrentPhase())
	})

	t.Run("Validate map requires validation result", func(t *testing.T) {
		sm, ctx, _ := setup()
		ctx.MapName = "bad.map"
		_, err := sm.Apply(ActionLoadMap, "load")
		require.NoError(t, err)
		_, err = sm.Apply(ActionValidateMap, "validate")
		require.Error(t, err)
		assert.Equal(t, PhaseMapLoaded, sm.CurrentPhase())
	})

	t.Run("Quit from setup states", func(t *testing.T) {
		sm, ctx, _ := setup()
		playToLobby(t, sm, ctx, 1)
		_, err := sm.Apply(ActionQuit, "bye")
		require.NoError(t, err)
		assert.True(t, sm.CurrentPhase().IsTerminal())
		assert.Empty(t, sm.CurrentPhase().AllowedActions(true))
	})

	t.Run("History and events", func(t *testing.T) {
		sm, ctx, bus := setup()
		var seen []string
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			st := e.(*events.StateTransitionEvent)
			seen = append(seen, st.FromPhase+">"+st.ToPhase)
		})

		playToLobby(t, sm, ctx, 1)

		history := sm.GetHistory()
		require.Len(t, history, 3)
		assert.Equal(t, PhaseStart, history[0].From)
		assert.Equal(t, PhaseMapLoaded, history[0].To)
		assert.Equal(t, ActionLoadMap, history[0].Action)
		assert.Equal(t, "load", history[0].Reason)
		assert.Equal(t, PhasePlayersAdded, history[2].To)

		assert.Equal(t, []string{
			"start>maploaded",
			"maploaded>mapvalidated",
			"mapvalidated>playersadded",
		}, seen)
	})

	t.Run("Reset from anywhere", func(t *testing.T) {
		sm, ctx, _ := setup()
		playToLobby(t, sm, ctx, 2)
		sm.Reset()
		assert.Equal(t, PhaseStart, sm.CurrentPhase())
		assert.Empty(t, sm.GetHistory())
		assert.Zero(t, ctx.PlayerCount)
	})
}

// MockState for testing custom state implementations
type MockState struct {
	phase       GamePhase
	enterCalled bool
	exitCalled  bool
	enterError  error
}

func (m *MockState) Phase() GamePhase            { return m.phase }
func (m *MockState) Enter(*GameContext) error    { m.enterCalled = true; return m.enterError }
func (m *MockState) Exit(*GameContext) error     { m.exitCalled = true; return nil }
func (m *MockState) Validate(*GameContext) error { return nil }

func TestStateMachine_CustomStates(t *testing.T) {
	ctx := NewGameContext("test-game", 4, 0, zerolog.Nop())
	sm := NewStateMachine(ctx, events.NewEventBus())

	startMock := &MockState{phase: PhaseStart}
	loadedMock := &MockState{phase: PhaseMapLoaded, enterError: assert.AnError}
	sm.RegisterState(startMock)
	sm.RegisterState(loadedMock)

	_, err := sm.Apply(ActionLoadMap, "load")
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, startMock.exitCalled)
	assert.True(t, loadedMock.enterCalled)
	assert.Equal(t, PhaseStart, sm.CurrentPhase(), "failed enter rolls back")
	assert.Empty(t, sm.GetHistory())
}
