package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("map", e.MapName).
			Strs("players", e.Players).
			Int("territories", e.Territories)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner).
			Bool("draw", e.Draw).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.TurnNumber)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("orders_executed", e.OrdersExecuted).
			Dur("process_time", e.ProcessedTime)

	case *events.ReinforcementAssignedEvent:
		withMetadata(logEvent, e.Metadata).
			Int("base", e.Base).
			Int("bonus", e.Bonus).
			Int("pool", e.Pool)

	case *events.OrderIssuedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("order_type", e.OrderType).
			Str("order", e.Order)

	case *events.OrderSkippedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("intent", e.Intent).
			Str("reason", e.Reason)

	case *events.OrderExecutedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("order_type", e.OrderType).
			Str("pass", e.Pass).
			Bool("executed", e.Executed).
			Str("effect", e.Effect)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("attacker", e.Attacker).
			Str("defender", e.Defender).
			Str("territory", e.Territory).
			Int("attacker_armies", e.AttackerArmies).
			Int("defender_armies", e.DefenderArmies).
			Int("attacker_losses", e.AttackerLosses).
			Int("defender_losses", e.DefenderLosses).
			Bool("captured", e.Captured)

	case *events.TerritoryAnnexedEvent:
		withMetadata(logEvent, e.Metadata).
			Str("territory", e.Territory).
			Str("former_owner", e.FormerOwner)

	case *events.PlayerJoinedEvent:
		withMetadata(logEvent, e.Metadata).Str("strategy", e.Strategy)

	case *events.PlayerEliminatedEvent:
		withMetadata(logEvent, e.Metadata)

	case *events.CardDrawnEvent:
		withMetadata(logEvent, e.Metadata).
			Str("card", e.Card).
			Int("deck_left", e.DeckLeft)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)

	case *events.CommandExecutedEvent:
		logEvent.
			Str("command", e.Command).
			Str("effect", e.Effect)

	case *events.TournamentGameFinishedEvent:
		logEvent.
			Str("map", e.MapName).
			Int("game", e.GameIndex).
			Str("result", e.Result)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg(event.Message())
}

func withMetadata(ev *zerolog.Event, md events.EventMetadata) *zerolog.Event {
	return ev.
		Int("player_id", md.PlayerID).
		Str("player", md.PlayerName).
		Int("turn", md.Turn)
}
