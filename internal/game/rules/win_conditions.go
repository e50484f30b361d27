package rules

import (
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckWin returns the player who owns every territory on the map, if any.
// It is only meaningful between turns; mid-phase ownership is not checked.
func (wc *WinConditionChecker) CheckWin(m *core.Map, players []*core.Player) (*core.Player, bool) {
	wc.logger.Debug().Int("players", len(players)).Msg("Checking win condition")
	total := m.Size()
	if total == 0 {
		return nil, false
	}
	for _, p := range players {
		if p.TerritoryCount() == total {
			wc.logger.Info().Str("winner", p.Name).Int("territories", total).Msg("Winner determined")
			return p, true
		}
	}
	return nil, false
}

// Eliminated returns the players that own no territory, in roster order.
func (wc *WinConditionChecker) Eliminated(players []*core.Player) []*core.Player {
	var out []*core.Player
	for _, p := range players {
		if p.IsEliminated() {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		wc.logger.Debug().Int("eliminated", len(out)).Msg("Players eliminated")
	}
	return out
}

// IsDraw reports whether the turn limit has been reached without a winner.
func (wc *WinConditionChecker) IsDraw(turn, maxTurns int) bool {
	return maxTurns > 0 && turn >= maxTurns
}
