package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/states"
)

// ErrInvalidCommand is returned for lines that are not a legal action in the
// current phase. The engine is not touched when it is returned.
var ErrInvalidCommand = errors.New("invalid command")

// Command is one parsed input line and, once executed, its effect.
type Command struct {
	Action     states.Action
	Args       []string
	Raw        string
	Effect     string
	Err        error
	ExecutedAt time.Time
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Action)
	}
	return string(c.Action) + " " + strings.Join(c.Args, " ")
}

// Parse splits a line into a lower-cased keyword and its arguments.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Raw: line}, fmt.Errorf("%w: empty line", ErrInvalidCommand)
	}
	return Command{
		Action: states.Action(strings.ToLower(fields[0])),
		Args:   fields[1:],
		Raw:    line,
	}, nil
}

// ValidationResult contains the outcome of a validation check
type ValidationResult struct {
	Valid  bool
	Spec   states.ActionSpec
	Reason string
}

// Err turns a failed result into an error wrapping ErrInvalidCommand.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidCommand, r.Reason)
}

// Validate checks c against the action table of phase.
func Validate(phase states.GamePhase, c Command) ValidationResult {
	spec, ok := phase.Lookup(c.Action)
	if !ok || spec.Internal {
		allowed := phase.AllowedActions(false)
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return ValidationResult{
			Reason: fmt.Sprintf("%q is not allowed in state %s (allowed: %s)", c.Action, phase, strings.Join(names, ", ")),
		}
	}
	if !spec.AcceptsArgs(len(c.Args)) {
		return ValidationResult{Spec: spec, Reason: "usage: " + spec.Usage}
	}
	return ValidationResult{Valid: true, Spec: spec}
}
