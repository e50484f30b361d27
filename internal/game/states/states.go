package states

import (
	"fmt"
	"time"
)

// StartState is the idle state before a map is loaded. Entering it (on
// replay) wipes the previous game.
type StartState struct{}

func NewStartState() State { return &StartState{} }

func (s *StartState) Phase() GamePhase { return PhaseStart }

func (s *StartState) Enter(ctx *GameContext) error {
	ctx.Reset()
	ctx.Logger.Debug().Msg("Entering start state")
	return nil
}

func (s *StartState) Exit(ctx *GameContext) error { return nil }

func (s *StartState) Validate(ctx *GameContext) error { return nil }

// TournamentSetupState is entered after a tournament has been configured.
type TournamentSetupState struct{}

func NewTournamentSetupState() State { return &TournamentSetupState{} }

func (s *TournamentSetupState) Phase() GamePhase { return PhaseTournamentSetup }

func (s *TournamentSetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Tournament configured")
	return nil
}

func (s *TournamentSetupState) Exit(ctx *GameContext) error { return nil }

func (s *TournamentSetupState) Validate(ctx *GameContext) error { return nil }

// MapLoadedState holds a parsed but unvalidated map.
type MapLoadedState struct{}

func NewMapLoadedState() State { return &MapLoadedState{} }

func (s *MapLoadedState) Phase() GamePhase { return PhaseMapLoaded }

func (s *MapLoadedState) Enter(ctx *GameContext) error {
	ctx.MapValid = false
	ctx.Logger.Info().Str("map", ctx.MapName).Msg("Map loaded")
	return nil
}

func (s *MapLoadedState) Exit(ctx *GameContext) error { return nil }

func (s *MapLoadedState) Validate(ctx *GameContext) error {
	if ctx.MapName == "" {
		return fmt.Errorf("no map loaded")
	}
	return nil
}

// MapValidatedState is reached once the map passed validation.
type MapValidatedState struct{}

func NewMapValidatedState() State { return &MapValidatedState{} }

func (s *MapValidatedState) Phase() GamePhase { return PhaseMapValidated }

func (s *MapValidatedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Str("map", ctx.MapName).Msg("Map validated")
	return nil
}

func (s *MapValidatedState) Exit(ctx *GameContext) error { return nil }

func (s *MapValidatedState) Validate(ctx *GameContext) error {
	if !ctx.MapValid {
		return fmt.Errorf("map %q has not passed validation", ctx.MapName)
	}
	return nil
}

// PlayersAddedState is the lobby once at least one player has joined.
type PlayersAddedState struct{}

func NewPlayersAddedState() State { return &PlayersAddedState{} }

func (s *PlayersAddedState) Phase() GamePhase { return PhasePlayersAdded }

func (s *PlayersAddedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("player_count", ctx.PlayerCount).Msg("Player added")
	return nil
}

func (s *PlayersAddedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("player_count", ctx.PlayerCount).Msg("Closing lobby")
	return nil
}

func (s *PlayersAddedState) Validate(ctx *GameContext) error {
	if ctx.PlayerCount < 1 {
		return fmt.Errorf("no players have been added")
	}
	if ctx.PlayerCount > ctx.MaxPlayers {
		return fmt.Errorf("too many players: have %d, max %d", ctx.PlayerCount, ctx.MaxPlayers)
	}
	return nil
}

// AssignReinforcementState opens a new turn.
type AssignReinforcementState struct{}

func NewAssignReinforcementState() State { return &AssignReinforcementState{} }

func (s *AssignReinforcementState) Phase() GamePhase { return PhaseAssignReinforcement }

func (s *AssignReinforcementState) Enter(ctx *GameContext) error {
	if ctx.Turn == 0 {
		ctx.StartTime = time.Now()
	}
	ctx.Turn++
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Assigning reinforcements")
	return nil
}

func (s *AssignReinforcementState) Exit(ctx *GameContext) error { return nil }

func (s *AssignReinforcementState) Validate(ctx *GameContext) error {
	if ctx.Turn == 0 && !ctx.IsReady() {
		return fmt.Errorf("not enough players to play: have %d, need %d-%d", ctx.PlayerCount, ctx.MinPlayers, ctx.MaxPlayers)
	}
	// Eliminations may leave a lone survivor still short of full conquest.
	if ctx.PlayerCount < 1 {
		return fmt.Errorf("not enough players to play: none left")
	}
	if ctx.IsOver() {
		return fmt.Errorf("game is already over")
	}
	return nil
}

// IssueOrdersState is the order-queuing phase of a turn.
type IssueOrdersState struct{}

func NewIssueOrdersState() State { return &IssueOrdersState{} }

func (s *IssueOrdersState) Phase() GamePhase { return PhaseIssueOrders }

func (s *IssueOrdersState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Issuing orders")
	return nil
}

func (s *IssueOrdersState) Exit(ctx *GameContext) error { return nil }

func (s *IssueOrdersState) Validate(ctx *GameContext) error { return nil }

// ExecuteOrdersState is the resolution phase of a turn.
type ExecuteOrdersState struct{}

func NewExecuteOrdersState() State { return &ExecuteOrdersState{} }

func (s *ExecuteOrdersState) Phase() GamePhase { return PhaseExecuteOrders }

func (s *ExecuteOrdersState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Executing orders")
	return nil
}

func (s *ExecuteOrdersState) Exit(ctx *GameContext) error { return nil }

func (s *ExecuteOrdersState) Validate(ctx *GameContext) error { return nil }

// WinState is the end of a game, either by conquest or by draw.
type WinState struct{}

func NewWinState() State { return &WinState{} }

func (s *WinState) Phase() GamePhase { return PhaseWin }

func (s *WinState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Str("winner_name", ctx.WinnerName).
		Bool("draw", ctx.Draw).
		Int("final_turn", ctx.Turn).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *WinState) Exit(ctx *GameContext) error { return nil }

func (s *WinState) Validate(ctx *GameContext) error {
	if !ctx.IsOver() {
		return fmt.Errorf("win state requires either a winner or a draw")
	}
	return nil
}

// EndState is terminal.
type EndState struct{}

func NewEndState() State { return &EndState{} }

func (s *EndState) Phase() GamePhase { return PhaseEnd }

func (s *EndState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Session ended")
	return nil
}

func (s *EndState) Exit(ctx *GameContext) error { return nil }

func (s *EndState) Validate(ctx *GameContext) error { return nil }
