package states

import (
	"time"

	"github.com/rs/zerolog"
)

// NoWinner marks a context without a winner.
const NoWinner = -1

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// MapName is the name of the loaded map, empty when none is loaded
	MapName string

	// MapValid is set once the loaded map passed validation
	MapValid bool

	// PlayerCount is the number of active players
	PlayerCount int

	// MinPlayers is the number of players needed to start
	MinPlayers int

	// MaxPlayers is the maximum number of players allowed
	MaxPlayers int

	// Turn is the current turn number, 0 before the first turn
	Turn int

	// MaxTurns ends the game in a draw once reached; 0 disables the limit
	MaxTurns int

	// StartTime is when the first turn began
	StartTime time.Time

	// Winner is the player ID of the winner, NoWinner otherwise
	Winner int

	// WinnerName is the display name of the winner
	WinnerName string

	// Draw is set when the turn limit ended the game
	Draw bool
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, maxPlayers, maxTurns int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:     gameID,
		MinPlayers: 2,
		MaxPlayers: maxPlayers,
		MaxTurns:   maxTurns,
		Logger:     logger.With().Str("game_id", gameID).Logger(),
		Winner:     NoWinner,
	}
}

// IsReady returns true if the game has enough players to start
func (gc *GameContext) IsReady() bool {
	return gc.PlayerCount >= gc.MinPlayers && gc.PlayerCount <= gc.MaxPlayers
}

// IsOver returns true once a winner or a draw has been recorded
func (gc *GameContext) IsOver() bool {
	return gc.Winner != NoWinner || gc.Draw
}

// GetElapsedTime returns the time elapsed since the first turn
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

// Reset clears everything except identity, limits and logger.
func (gc *GameContext) Reset() {
	gc.MapName = ""
	gc.MapValid = false
	gc.PlayerCount = 0
	gc.Turn = 0
	gc.StartTime = time.Time{}
	gc.Winner = NoWinner
	gc.WinnerName = ""
	gc.Draw = false
}
