package events

import (
	"fmt"
	"strings"
	"time"
)

// Event type constants
const (
	TypeGameStarted            = "game.started"
	TypeGameEnded              = "game.ended"
	TypeTurnStarted            = "turn.started"
	TypeTurnEnded              = "turn.ended"
	TypeReinforcementAssigned  = "reinforcement.assigned"
	TypeOrderIssued            = "order.issued"
	TypeOrderSkipped           = "order.skipped"
	TypeOrderExecuted          = "order.executed"
	TypeCombatResolved         = "combat.resolved"
	TypeTerritoryAnnexed       = "territory.annexed"
	TypePlayerJoined           = "player.joined"
	TypePlayerEliminated       = "player.eliminated"
	TypeCardDrawn              = "card.drawn"
	TypeStateTransition        = "state.transition"
	TypeCommandExecuted        = "command.executed"
	TypeTournamentGameFinished = "tournament.game_finished"
)

// GameStartedEvent is published when the gameplay loop begins
type GameStartedEvent struct {
	BaseEvent
	MapName     string
	Players     []string
	Territories int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID, mapName string, players []string, territories int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		MapName:     mapName,
		Players:     players,
		Territories: territories,
	}
}

func (e *GameStartedEvent) Message() string {
	return fmt.Sprintf("game started on %s (%d territories) with %s", e.MapName, e.Territories, strings.Join(e.Players, ", "))
}

// GameEndedEvent is published when a game is won or drawn
type GameEndedEvent struct {
	BaseEvent
	Winner    string
	Draw      bool
	FinalTurn int
	Duration  time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent. An empty winner means a draw.
func NewGameEndedEvent(gameID, winner string, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Draw:      winner == "",
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

func (e *GameEndedEvent) Message() string {
	if e.Draw {
		return fmt.Sprintf("game ended in a draw after turn %d", e.FinalTurn)
	}
	return fmt.Sprintf("%s won the game on turn %d", e.Winner, e.FinalTurn)
}

// TurnStartedEvent is published at the beginning of each turn
type TurnStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	TurnNumber int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		Metadata:   EventMetadata{Turn: turn},
		TurnNumber: turn,
	}
}

func (e *TurnStartedEvent) Message() string {
	return fmt.Sprintf("turn %d started", e.TurnNumber)
}

// TurnEndedEvent is published at the end of each turn
type TurnEndedEvent struct {
	BaseEvent
	Metadata       EventMetadata
	TurnNumber     int
	OrdersExecuted int
	ProcessedTime  time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, ordersExecuted int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:      newBase(TypeTurnEnded, gameID),
		Metadata:       EventMetadata{Turn: turn},
		TurnNumber:     turn,
		OrdersExecuted: ordersExecuted,
		ProcessedTime:  processedTime,
	}
}

func (e *TurnEndedEvent) Message() string {
	return fmt.Sprintf("turn %d ended after %d orders", e.TurnNumber, e.OrdersExecuted)
}

// ReinforcementAssignedEvent is published when a player receives its income
type ReinforcementAssignedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Base     int
	Bonus    int
	Pool     int
}

// NewReinforcementAssignedEvent creates a new ReinforcementAssignedEvent
func NewReinforcementAssignedEvent(gameID string, playerID int, player string, turn, base, bonus, pool int) *ReinforcementAssignedEvent {
	return &ReinforcementAssignedEvent{
		BaseEvent: newBase(TypeReinforcementAssigned, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		Base:      base,
		Bonus:     bonus,
		Pool:      pool,
	}
}

func (e *ReinforcementAssignedEvent) Message() string {
	return fmt.Sprintf("%s receives %d armies (%d base + %d continent bonus), pool %d",
		e.Metadata.PlayerName, e.Base+e.Bonus, e.Base, e.Bonus, e.Pool)
}

// OrderIssuedEvent is published when an order joins a player's queue
type OrderIssuedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	OrderType string
	Order     string
}

// NewOrderIssuedEvent creates a new OrderIssuedEvent
func NewOrderIssuedEvent(gameID string, playerID int, player string, turn int, orderType, order string) *OrderIssuedEvent {
	return &OrderIssuedEvent{
		BaseEvent: newBase(TypeOrderIssued, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		OrderType: orderType,
		Order:     order,
	}
}

func (e *OrderIssuedEvent) Message() string {
	return fmt.Sprintf("%s issued %s", e.Metadata.PlayerName, e.Order)
}

// OrderSkippedEvent is published when an intent could not become an order
type OrderSkippedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Intent   string
	Reason   string
}

// NewOrderSkippedEvent creates a new OrderSkippedEvent
func NewOrderSkippedEvent(gameID string, playerID int, player string, turn int, intent, reason string) *OrderSkippedEvent {
	return &OrderSkippedEvent{
		BaseEvent: newBase(TypeOrderSkipped, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		Intent:    intent,
		Reason:    reason,
	}
}

func (e *OrderSkippedEvent) Message() string {
	return fmt.Sprintf("%s skipped %s: %s", e.Metadata.PlayerName, e.Intent, e.Reason)
}

// OrderExecutedEvent is published after every queued order runs
type OrderExecutedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	OrderType string
	Order     string
	Effect    string
	Executed  bool
	Pass      string
}

// NewOrderExecutedEvent creates a new OrderExecutedEvent
func NewOrderExecutedEvent(gameID string, playerID int, player string, turn int, orderType, order, effect string, executed bool, pass string) *OrderExecutedEvent {
	return &OrderExecutedEvent{
		BaseEvent: newBase(TypeOrderExecuted, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		OrderType: orderType,
		Order:     order,
		Effect:    effect,
		Executed:  executed,
		Pass:      pass,
	}
}

func (e *OrderExecutedEvent) Message() string {
	return e.Effect
}

// CombatResolvedEvent is published when an advance turns into a battle
type CombatResolvedEvent struct {
	BaseEvent
	Metadata       EventMetadata
	Attacker       string
	Defender       string
	Territory      string
	AttackerArmies int
	DefenderArmies int
	AttackerLosses int
	DefenderLosses int
	Captured       bool
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(gameID string, turn int, attacker, defender, territory string,
	attackerArmies, defenderArmies, attackerLosses, defenderLosses int, captured bool) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:      newBase(TypeCombatResolved, gameID),
		Metadata:       EventMetadata{PlayerName: attacker, Turn: turn},
		Attacker:       attacker,
		Defender:       defender,
		Territory:      territory,
		AttackerArmies: attackerArmies,
		DefenderArmies: defenderArmies,
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
		Captured:       captured,
	}
}

func (e *CombatResolvedEvent) Message() string {
	outcome := "held"
	if e.Captured {
		outcome = "fell"
	}
	return fmt.Sprintf("battle for %s: %s (%d, lost %d) vs %s (%d, lost %d), territory %s",
		e.Territory, e.Attacker, e.AttackerArmies, e.AttackerLosses,
		e.Defender, e.DefenderArmies, e.DefenderLosses, outcome)
}

// TerritoryAnnexedEvent is published when a territory changes hands outside
// of combat
type TerritoryAnnexedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	Territory    string
	FormerOwner  string
	ArmiesOnSite int
}

// NewTerritoryAnnexedEvent creates a new TerritoryAnnexedEvent
func NewTerritoryAnnexedEvent(gameID string, playerID int, player string, turn int, territory, formerOwner string, armies int) *TerritoryAnnexedEvent {
	return &TerritoryAnnexedEvent{
		BaseEvent:    newBase(TypeTerritoryAnnexed, gameID),
		Metadata:     EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		Territory:    territory,
		FormerOwner:  formerOwner,
		ArmiesOnSite: armies,
	}
}

func (e *TerritoryAnnexedEvent) Message() string {
	return fmt.Sprintf("%s annexed %s from %s", e.Metadata.PlayerName, e.Territory, e.FormerOwner)
}

// PlayerJoinedEvent is published when a player is added during setup
type PlayerJoinedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Strategy string
}

// NewPlayerJoinedEvent creates a new PlayerJoinedEvent
func NewPlayerJoinedEvent(gameID string, playerID int, player, strategy string) *PlayerJoinedEvent {
	return &PlayerJoinedEvent{
		BaseEvent: newBase(TypePlayerJoined, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player},
		Strategy:  strategy,
	}
}

func (e *PlayerJoinedEvent) Message() string {
	return fmt.Sprintf("%s joined as %s", e.Metadata.PlayerName, e.Strategy)
}

// PlayerEliminatedEvent is published when a player loses its last territory
type PlayerEliminatedEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewPlayerEliminatedEvent creates a new PlayerEliminatedEvent
func NewPlayerEliminatedEvent(gameID string, playerID int, player string, turn int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent: newBase(TypePlayerEliminated, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
	}
}

func (e *PlayerEliminatedEvent) Message() string {
	return fmt.Sprintf("%s has been eliminated", e.Metadata.PlayerName)
}

// CardDrawnEvent is published when a player draws from the deck
type CardDrawnEvent struct {
	BaseEvent
	Metadata EventMetadata
	Card     string
	DeckLeft int
}

// NewCardDrawnEvent creates a new CardDrawnEvent
func NewCardDrawnEvent(gameID string, playerID int, player string, turn int, card string, deckLeft int) *CardDrawnEvent {
	return &CardDrawnEvent{
		BaseEvent: newBase(TypeCardDrawn, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, PlayerName: player, Turn: turn},
		Card:      card,
		DeckLeft:  deckLeft,
	}
}

func (e *CardDrawnEvent) Message() string {
	return fmt.Sprintf("%s drew a %s card (%d left in deck)", e.Metadata.PlayerName, e.Card, e.DeckLeft)
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

func (e *StateTransitionEvent) Message() string {
	return fmt.Sprintf("state %s -> %s (%s)", e.FromPhase, e.ToPhase, e.Reason)
}

// CommandExecutedEvent is published for every command the engine handles
type CommandExecutedEvent struct {
	BaseEvent
	Command string
	Effect  string
}

// NewCommandExecutedEvent creates a new CommandExecutedEvent
func NewCommandExecutedEvent(gameID, command, effect string) *CommandExecutedEvent {
	return &CommandExecutedEvent{
		BaseEvent: newBase(TypeCommandExecuted, gameID),
		Command:   command,
		Effect:    effect,
	}
}

func (e *CommandExecutedEvent) Message() string {
	return fmt.Sprintf("command %q: %s", e.Command, e.Effect)
}

// TournamentGameFinishedEvent is published after each tournament game
type TournamentGameFinishedEvent struct {
	BaseEvent
	MapName   string
	GameIndex int
	Result    string
}

// NewTournamentGameFinishedEvent creates a new TournamentGameFinishedEvent
func NewTournamentGameFinishedEvent(gameID, mapName string, gameIndex int, result string) *TournamentGameFinishedEvent {
	return &TournamentGameFinishedEvent{
		BaseEvent: newBase(TypeTournamentGameFinished, gameID),
		MapName:   mapName,
		GameIndex: gameIndex,
		Result:    result,
	}
}

func (e *TournamentGameFinishedEvent) Message() string {
	return fmt.Sprintf("tournament %s game %d: %s", e.MapName, e.GameIndex, e.Result)
}
