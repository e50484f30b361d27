package states

import (
	"fmt"
	"sort"
)

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseStart - nothing loaded yet
	PhaseStart GamePhase = iota

	// PhaseTournamentSetup - a tournament has been configured and run
	PhaseTournamentSetup

	// PhaseMapLoaded - a map file has been read but not validated
	PhaseMapLoaded

	// PhaseMapValidated - the map is connected and every continent is populated
	PhaseMapValidated

	// PhasePlayersAdded - at least one player has joined
	PhasePlayersAdded

	// PhaseAssignReinforcement - start of a turn, income is handed out
	PhaseAssignReinforcement

	// PhaseIssueOrders - players queue orders
	PhaseIssueOrders

	// PhaseExecuteOrders - queued orders are resolved
	PhaseExecuteOrders

	// PhaseWin - the game is over, by victory or draw
	PhaseWin

	// PhaseEnd - the session is finished
	PhaseEnd
)

var phaseNames = map[GamePhase]string{
	PhaseStart:               "start",
	PhaseTournamentSetup:     "tournamentSetup",
	PhaseMapLoaded:           "maploaded",
	PhaseMapValidated:        "mapvalidated",
	PhasePlayersAdded:        "playersadded",
	PhaseAssignReinforcement: "assignreinforcement",
	PhaseIssueOrders:         "issueorders",
	PhaseExecuteOrders:       "executeorders",
	PhaseWin:                 "win",
	PhaseEnd:                 "end",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnd
}

// IsGameplay returns true while the turn loop owns the state machine
func (p GamePhase) IsGameplay() bool {
	return p == PhaseAssignReinforcement || p == PhaseIssueOrders || p == PhaseExecuteOrders
}

// Action is a command keyword that drives the state machine.
type Action string

const (
	ActionLoadMap        Action = "loadmap"
	ActionValidateMap    Action = "validatemap"
	ActionAddPlayer      Action = "addplayer"
	ActionGameStart      Action = "gamestart"
	ActionIssueOrder     Action = "issueorder"
	ActionEndIssueOrders Action = "endissueorders"
	ActionEndExecOrders  Action = "endexecorders"
	ActionWin            Action = "win"
	ActionReplay         Action = "replay"
	ActionQuit           Action = "quit"
	ActionTournament     Action = "tournament"
)

// Unbounded marks an ActionSpec without an upper argument limit.
const Unbounded = -1

// ActionSpec describes one legal action from a phase.
type ActionSpec struct {
	Next    GamePhase
	MinArgs int
	MaxArgs int
	Usage   string
	// Internal actions are issued by the turn loop, never typed by a user.
	Internal bool
}

// AcceptsArgs reports whether n arguments satisfy the spec.
func (s ActionSpec) AcceptsArgs(n int) bool {
	return n >= s.MinArgs && (s.MaxArgs == Unbounded || n <= s.MaxArgs)
}

var (
	loadMapSpec    = ActionSpec{Next: PhaseMapLoaded, MinArgs: 1, MaxArgs: 1, Usage: "loadmap <filename>"}
	addPlayerSpec  = ActionSpec{Next: PhasePlayersAdded, MinArgs: 1, MaxArgs: 2, Usage: "addplayer <name> [strategy]"}
	replaySpec     = ActionSpec{Next: PhaseStart, Usage: "replay"}
	quitSpec       = ActionSpec{Next: PhaseEnd, Usage: "quit"}
	tournamentSpec = ActionSpec{
		Next:    PhaseTournamentSetup,
		MinArgs: 9,
		MaxArgs: Unbounded,
		Usage:   "tournament -M <maps...> -P <strategies...> -G <games> -D <max turns>",
	}
)

// actionTable is the fixed state -> action -> spec table.
var actionTable = map[GamePhase]map[Action]ActionSpec{
	PhaseStart: {
		ActionLoadMap:    loadMapSpec,
		ActionTournament: tournamentSpec,
		ActionQuit:       quitSpec,
	},
	PhaseTournamentSetup: {
		ActionReplay: replaySpec,
		ActionQuit:   quitSpec,
	},
	PhaseMapLoaded: {
		ActionLoadMap:     loadMapSpec,
		ActionValidateMap: {Next: PhaseMapValidated, Usage: "validatemap"},
		ActionQuit:        quitSpec,
	},
	PhaseMapValidated: {
		ActionAddPlayer: addPlayerSpec,
		ActionQuit:      quitSpec,
	},
	PhasePlayersAdded: {
		ActionAddPlayer: addPlayerSpec,
		ActionGameStart: {Next: PhaseAssignReinforcement, Usage: "gamestart"},
		ActionQuit:      quitSpec,
	},
	PhaseAssignReinforcement: {
		ActionIssueOrder: {Next: PhaseIssueOrders, Usage: "issueorder", Internal: true},
	},
	PhaseIssueOrders: {
		ActionEndIssueOrders: {Next: PhaseExecuteOrders, Usage: "endissueorders", Internal: true},
	},
	PhaseExecuteOrders: {
		ActionEndExecOrders: {Next: PhaseAssignReinforcement, Usage: "endexecorders", Internal: true},
		ActionWin:           {Next: PhaseWin, Usage: "win", Internal: true},
	},
	PhaseWin: {
		ActionReplay: replaySpec,
		ActionQuit:   quitSpec,
	},
}

// Lookup returns the spec for action in phase p.
func (p GamePhase) Lookup(action Action) (ActionSpec, bool) {
	spec, ok := actionTable[p][action]
	return spec, ok
}

// AllowedActions returns the actions legal in this phase, sorted by name.
// Internal actions are included only when internal is true.
func (p GamePhase) AllowedActions(internal bool) []Action {
	var out []Action
	for a, spec := range actionTable[p] {
		if spec.Internal && !internal {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
