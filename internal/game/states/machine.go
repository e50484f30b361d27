package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/events"
)

var (
	// ErrActionNotAllowed is returned when an action is not legal in the current phase.
	ErrActionNotAllowed = errors.New("action not allowed in current phase")
)

// State represents a game state with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Action    Action
	Timestamp time.Time
	Reason    string
}

// StateMachine manages game state transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	eventBus       *events.EventBus
}

// NewStateMachine creates a new state machine
func NewStateMachine(ctx *GameContext, eventBus *events.EventBus) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseStart,
		states:         make(map[GamePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 100),
		maxHistorySize: 1000,
		eventBus:       eventBus,
	}

	sm.registerDefaultStates()

	return sm
}

func (sm *StateMachine) registerDefaultStates() {
	sm.RegisterState(NewStartState())
	sm.RegisterState(NewTournamentSetupState())
	sm.RegisterState(NewMapLoadedState())
	sm.RegisterState(NewMapValidatedState())
	sm.RegisterState(NewPlayersAddedState())
	sm.RegisterState(NewAssignReinforcementState())
	sm.RegisterState(NewIssueOrdersState())
	sm.RegisterState(NewExecuteOrdersState())
	sm.RegisterState(NewWinState())
	sm.RegisterState(NewEndState())
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// Apply looks action up in the transition table and moves to its target
// phase. Arguments are checked by the command layer before they get here.
// On any error the machine stays where it was.
func (sm *StateMachine) Apply(action Action, reason string) (ActionSpec, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	spec, ok := sm.currentPhase.Lookup(action)
	if !ok {
		return ActionSpec{}, fmt.Errorf("%w: %q in %s", ErrActionNotAllowed, action, sm.currentPhase)
	}
	return spec, sm.transitionLocked(spec.Next, action, reason)
}

func (sm *StateMachine) transitionLocked(targetPhase GamePhase, action Action, reason string) error {
	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Action:    action,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("action", string(action)).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// Reset clears the history and context and puts the machine back in PhaseStart
// regardless of the current phase.
func (sm *StateMachine) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.history = sm.history[:0]
	sm.context.Reset()
	sm.currentPhase = PhaseStart
}
